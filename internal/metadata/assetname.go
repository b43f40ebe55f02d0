package metadata

import (
	"fmt"
	"time"
)

// assetNamePrefix is the fixed literal prepended to every token name.
const assetNamePrefix = "chronica"

// UniqueAssetName builds a token name of the form
// chronica_<title>_<YYYY-MM-DD_HH-MM-SS>. Names for the same title are
// distinct whenever the timestamps differ by at least one second; same-title
// creations within the same second may collide, which is accepted. The title
// is used as given, without filtering for the on-chain token-name charset.
func UniqueAssetName(baseTitle string, t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return fmt.Sprintf("%s_%s_%s", assetNamePrefix, baseTitle, MintingTimestamp(t))
}

// MintingTimestamp formats t as the second-precision UTC timestamp used in
// both token names and the minting_timestamp metadata field.
func MintingTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02_15-04-05")
}
