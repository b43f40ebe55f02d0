package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/internal/metadata"
	"github.com/chronica/backend/internal/pkg/overlay"
	"github.com/chronica/backend/pkg/apperrors"
	"github.com/chronica/backend/pkg/fingerprint"
)

// IPFSUploader uploads base64-encoded content and returns the IPFS hash.
type IPFSUploader interface {
	UploadToIPFS(ctx context.Context, base64Content, mimeType string) (string, error)
}

// NFTUploader creates the NFT record in the minting service.
type NFTUploader interface {
	CreateNFT(ctx context.Context, req UploadNftRequest) (*UploadNftResult, error)
}

// Minter triggers mint-and-send for an already-created NFT.
type Minter interface {
	MintAndSend(ctx context.Context, nftUID string, tokenCount int) (*MintResult, error)
}

// NFTService runs the creation pipeline: validate, compute fingerprint,
// composite the QR overlay, upload to IPFS, build CIP-25 metadata, submit to
// the minting service and optionally mint. Each request is independent; no
// state survives a call.
type NFTService struct {
	cfg      *config.Config
	ipfs     IPFSUploader
	uploader NFTUploader
	minter   Minter
}

func NewNFTService(cfg *config.Config, ipfs IPFSUploader, uploader NFTUploader, minter Minter) *NFTService {
	return &NFTService{
		cfg:      cfg,
		ipfs:     ipfs,
		uploader: uploader,
		minter:   minter,
	}
}

// CreateNFTRequest is one creation submission. Media holds the raw file bytes.
type CreateNFTRequest struct {
	Title          string
	Description    string
	Media          []byte
	MimeType       string
	EventTimestamp string
	GeoLocation    string
	Tags           []string
	Culture        string
}

// CreateNFTResult reports the outcome of a creation. MintError is set when
// the NFT was created but the follow-up mint-and-send failed; that partial
// success is surfaced, not treated as total failure.
type CreateNFTResult struct {
	NFTID           int    `json:"nftId"`
	NFTUID          string `json:"nftUid"`
	IpfsHashMainnft string `json:"ipfsHashMainnft,omitempty"`
	AssetID         string `json:"assetId,omitempty"`
	Metadata        string `json:"metadata,omitempty"`
	IpfsHash        string `json:"ipfsHash"`
	Fingerprint     string `json:"fingerprint"`
	MintError       string `json:"mintError,omitempty"`
}

// CreateNFT runs the pipeline for one submission. Stages run strictly in
// order because each depends on the previous stage's output; errors abort
// before any further remote call is made.
func (s *NFTService) CreateNFT(ctx context.Context, req CreateNFTRequest) (*CreateNFTResult, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &apperrors.ValidationError{Message: "Title is required"}
	}
	if len(req.Media) == 0 {
		return nil, &apperrors.ValidationError{Message: "Media file is required"}
	}

	now := time.Now()
	assetName := metadata.UniqueAssetName(req.Title, now)
	fp, err := fingerprint.New(s.cfg.NMKRPolicyID, assetName)
	if err != nil {
		return nil, fmt.Errorf("failed to derive asset fingerprint: %w", err)
	}
	verificationURL := s.verificationURL(fp)

	// Stamp the verification QR onto the image before it goes anywhere.
	spec := overlay.DefaultSpec(verificationURL)
	spec.SizeFraction = s.cfg.QRSizeFraction
	spec.BackgroundOpacity = s.cfg.QRBackgroundOpacity
	spec.Margin = s.cfg.QRMargin
	spec.Position = overlay.ParsePosition(s.cfg.QRPosition)

	processed, err := overlay.Apply(req.Media, spec)
	if err != nil {
		return nil, err
	}

	uploadMime := req.MimeType
	if uploadMime == "" {
		uploadMime = "application/octet-stream"
	}
	rawHash, err := s.ipfs.UploadToIPFS(ctx, base64.StdEncoding.EncodeToString(processed), uploadMime)
	if err != nil {
		return nil, err
	}
	ipfsHash := strings.TrimPrefix(strings.TrimSpace(rawHash), "ipfs://")
	if ipfsHash == "" {
		return nil, &apperrors.UploadError{Message: "failed to upload to IPFS - no hash returned"}
	}

	doc, err := metadata.BuildCip25(metadata.Submission{
		Title:          req.Title,
		Description:    req.Description,
		MimeType:       req.MimeType,
		EventTimestamp: req.EventTimestamp,
		GeoLocation:    req.GeoLocation,
		Tags:           req.Tags,
		Culture:        req.Culture,
	}, ipfsHash, s.cfg.NMKRPolicyID, now)
	if err != nil {
		return nil, err
	}
	metadataJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metadata: %w", err)
	}

	uploaded, err := s.uploader.CreateNFT(ctx, UploadNftRequest{
		TokenName:        assetName,
		DisplayName:      req.Title,
		Description:      req.Description,
		MimeType:         uploadMime,
		PreviewImageURL:  s.cfg.IPFSMediaBaseURL + ipfsHash,
		MetadataOverride: string(metadataJSON),
	})
	if err != nil {
		return nil, err
	}

	result := &CreateNFTResult{
		NFTID:           uploaded.NFTID,
		NFTUID:          uploaded.NFTUID,
		IpfsHashMainnft: uploaded.IpfsHashMainnft,
		AssetID:         uploaded.AssetID,
		Metadata:        uploaded.Metadata,
		IpfsHash:        ipfsHash,
		Fingerprint:     fp,
	}

	// Mint failures never roll back the created NFT record.
	if s.cfg.MintOnCreate && uploaded.NFTUID != "" {
		if _, err := s.minter.MintAndSend(ctx, uploaded.NFTUID, 1); err != nil {
			log.Printf("Mint-and-send failed for NFT %s: %v", uploaded.NFTUID, err)
			result.MintError = err.Error()
		}
	}
	return result, nil
}

// verificationURL picks the explorer URL embedded in the QR code for the
// configured network.
func (s *NFTService) verificationURL(fp string) string {
	urls := fingerprint.ExplorerURLs(fp)
	if s.cfg.CardanoNetwork == "mainnet" {
		return urls.Cardanoscan
	}
	return urls.CardanoscanPreprod
}
