// Package fingerprint derives CIP-14 asset fingerprints and the explorer URLs
// built from them.
package fingerprint

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

// hrp is the bech32 human-readable part mandated by CIP-14.
const hrp = "asset"

// ErrInvalidPolicyID is returned when the policy id is not a hex string.
var ErrInvalidPolicyID = errors.New("invalid policy id: not a hex string")

// New derives the CIP-14 fingerprint for (policy id, asset name): blake2b-160
// over the policy-id bytes followed by the UTF-8 asset-name bytes, bech32
// encoded with the "asset" prefix. Pure function of its inputs; the result is
// cross-verifiable against any standard Cardano explorer.
func New(policyIDHex, assetName string) (string, error) {
	policyID, err := hex.DecodeString(policyIDHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPolicyID, err)
	}

	h, err := blake2b.New(20, nil)
	if err != nil {
		return "", fmt.Errorf("failed to init blake2b: %w", err)
	}
	h.Write(policyID)
	h.Write([]byte(assetName))

	grouped, err := bech32.ConvertBits(h.Sum(nil), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to regroup digest bits: %w", err)
	}
	encoded, err := bech32.Encode(hrp, grouped)
	if err != nil {
		return "", fmt.Errorf("failed to bech32-encode fingerprint: %w", err)
	}
	return encoded, nil
}

// URLs are the explorer endpoints derived from one fingerprint.
type URLs struct {
	Fingerprint        string `json:"fingerprint"`
	Cardanoscan        string `json:"cardanoscan"`
	CardanoscanPreprod string `json:"cardanoscanPreprod"`
	PoolPM             string `json:"poolPm"`
	CNFT               string `json:"cnft"`
	CardanoAssets      string `json:"cardanoAssets"`
}

// ExplorerURLs templates the known explorer endpoints for fp. Most embed the
// fingerprint as-is; cardanoassets.com wants the value with the literal
// "asset" human-readable part stripped before it is substituted into the path
// segment.
func ExplorerURLs(fp string) URLs {
	return URLs{
		Fingerprint:        fp,
		Cardanoscan:        "https://cardanoscan.io/token/" + fp,
		CardanoscanPreprod: "https://preprod.cardanoscan.io/token/" + fp,
		PoolPM:             "https://pool.pm/" + fp,
		CNFT:               "https://cnft.io/token/" + fp,
		CardanoAssets:      "https://cardanoassets.com/asset" + strings.TrimPrefix(fp, hrp),
	}
}
