package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/pkg/apperrors"
)

// BlockfrostClient reads minted assets back from the chain for the browsing
// UI. It is not part of the creation pipeline.
type BlockfrostClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewBlockfrostClient(cfg *config.Config) *BlockfrostClient {
	return &BlockfrostClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Asset is one on-chain asset under the configured policy.
type Asset struct {
	Asset             string          `json:"asset"`
	PolicyID          string          `json:"policy_id,omitempty"`
	AssetName         string          `json:"asset_name,omitempty"`
	Fingerprint       string          `json:"fingerprint,omitempty"`
	Quantity          string          `json:"quantity,omitempty"`
	InitialMintTxHash string          `json:"initial_mint_tx_hash,omitempty"`
	OnchainMetadata   json.RawMessage `json:"onchain_metadata,omitempty"`
}

// ListPolicyAssets returns every asset minted under the configured policy,
// hydrated with its on-chain metadata. A 404 from the listing endpoint means
// no assets exist yet and yields an empty slice. Hydration failures degrade
// to the bare listing entry for that asset.
func (c *BlockfrostClient) ListPolicyAssets(ctx context.Context) ([]Asset, error) {
	url := fmt.Sprintf("%s/assets/policy/%s", c.cfg.BlockfrostBaseURL, c.cfg.NMKRPolicyID)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []Asset{}, nil
	}
	if status < 200 || status > 299 {
		return nil, &apperrors.RemoteAPIError{StatusCode: status, Body: string(body)}
	}

	var assets []Asset
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode policy assets: %w", err)
	}

	for i := range assets {
		detailed, err := c.GetAsset(ctx, assets[i].Asset)
		if err != nil {
			log.Printf("Failed to hydrate asset %s: %v", assets[i].Asset, err)
			continue
		}
		assets[i] = *detailed
	}
	return assets, nil
}

// GetAsset fetches the full on-chain record for one asset id.
func (c *BlockfrostClient) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	url := fmt.Sprintf("%s/assets/%s", c.cfg.BlockfrostBaseURL, assetID)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &apperrors.RemoteAPIError{StatusCode: status, Body: string(body)}
	}

	var asset Asset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", assetID, err)
	}
	return &asset, nil
}

func (c *BlockfrostClient) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("project_id", c.cfg.BlockfrostProjectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to Blockfrost failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read Blockfrost response: %w", err)
	}
	return body, resp.StatusCode, nil
}
