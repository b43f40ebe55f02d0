package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/pkg/apperrors"
)

// NMKRClient talks to the NMKR Studio API: IPFS upload, NFT upload,
// mint-and-send and payout wallet listing. No retries or throttling are done
// here; the account's rate limits are the caller's problem.
type NMKRClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewNMKRClient(cfg *config.Config) *NMKRClient {
	return &NMKRClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// UploadNftRequest is the payload for creating one NFT in the NMKR project.
type UploadNftRequest struct {
	TokenName        string
	DisplayName      string
	Description      string
	MimeType         string
	PreviewImageURL  string
	MetadataOverride string
}

// UploadNftResult is the subset of the NMKR upload response the pipeline uses.
type UploadNftResult struct {
	NFTID           int    `json:"nftId"`
	NFTUID          string `json:"nftUid"`
	IpfsHashMainnft string `json:"ipfsHashMainnft"`
	AssetID         string `json:"assetId"`
	Metadata        string `json:"metadata"`
}

// MintResult is the mint-and-send response.
type MintResult struct {
	MintAndSendID int             `json:"mintAndSendId"`
	SendedNft     json.RawMessage `json:"sendedNft,omitempty"`
}

// PayoutWallet is one payout address registered with the NMKR account.
type PayoutWallet struct {
	WalletAddress string `json:"walletAddress"`
	Created       string `json:"created"`
	State         string `json:"state"`
	Comment       string `json:"comment,omitempty"`
}

// UploadToIPFS sends base64-encoded content to the IPFS upload endpoint and
// returns the hash. The response may be a bare or ipfs://-prefixed hash;
// normalization is left to the caller. An empty result is an UploadError.
func (c *NMKRClient) UploadToIPFS(ctx context.Context, base64Content, mimeType string) (string, error) {
	payload := map[string]string{
		"fileFromBase64": base64Content,
		"mimetype":       mimeType,
	}
	url := fmt.Sprintf("%s/v2/UploadToIpfs/%d", c.cfg.NMKRBaseURL, c.cfg.NMKRCustomerID)

	body, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", err
	}

	// The endpoint answers with the hash as a (possibly JSON-quoted) string.
	hash := strings.TrimSpace(string(body))
	hash = strings.Trim(hash, `"`)
	if hash == "" {
		return "", &apperrors.UploadError{Message: "failed to upload to IPFS - no hash returned"}
	}
	return hash, nil
}

// CreateNFT uploads token name, display fields and the serialized CIP-25
// document to the project.
func (c *NMKRClient) CreateNFT(ctx context.Context, req UploadNftRequest) (*UploadNftResult, error) {
	payload := map[string]interface{}{
		"projectuid":  c.cfg.NMKRProjectUID,
		"tokenname":   req.TokenName,
		"displayname": req.DisplayName,
		"description": req.Description,
		"previewImageNft": map[string]interface{}{
			"mimetype":     req.MimeType,
			"fileFromsUrl": req.PreviewImageURL,
		},
		"metadataOverride": req.MetadataOverride,
		"isBlocked":        false,
	}
	url := fmt.Sprintf("%s/v2/UploadNft/%s", c.cfg.NMKRBaseURL, c.cfg.NMKRProjectUID)

	body, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	var result UploadNftResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode NFT upload response: %w", err)
	}
	return &result, nil
}

// MintAndSend reserves and mints the given NFT to the configured receiver
// address.
func (c *NMKRClient) MintAndSend(ctx context.Context, nftUID string, tokenCount int) (*MintResult, error) {
	payload := map[string]interface{}{
		"reserveNfts": []map[string]interface{}{
			{"nftUid": nftUID, "tokencount": tokenCount},
		},
	}
	url := fmt.Sprintf("%s/v2/MintAndSendSpecific/%s/%s",
		c.cfg.NMKRBaseURL, c.cfg.NMKRProjectUID, c.cfg.NMKRReceiverAddress)

	body, err := c.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	var result MintResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode mint response: %w", err)
	}
	return &result, nil
}

// GetPayoutWallets lists the payout wallets registered with the account.
func (c *NMKRClient) GetPayoutWallets(ctx context.Context) ([]PayoutWallet, error) {
	url := c.cfg.NMKRBaseURL + "/v2/GetPayoutWallets"

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var wallets []PayoutWallet
	if err := json.Unmarshal(body, &wallets); err != nil {
		return nil, fmt.Errorf("failed to decode payout wallets response: %w", err)
	}
	return wallets, nil
}

// do sends one authenticated request. Non-2xx responses become a
// RemoteAPIError carrying the response body verbatim.
func (c *NMKRClient) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.NMKRAPIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to NMKR failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read NMKR response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.RemoteAPIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
