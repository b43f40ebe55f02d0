package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/internal/services"
)

type NFTHandler struct {
	nftService *services.NFTService
	nmkrClient *services.NMKRClient
	cfg        *config.Config
}

func NewNFTHandler(nftService *services.NFTService, nmkrClient *services.NMKRClient, cfg *config.Config) *NFTHandler {
	return &NFTHandler{
		nftService: nftService,
		nmkrClient: nmkrClient,
		cfg:        cfg,
	}
}

// CreateNFT handles one creation request
// POST /api/v1/nft
// Multipart form: media (required file), title (required), description, tags
// (JSON array string), culture, eventTimestamp, geoLocation
func (h *NFTHandler) CreateNFT(c *gin.Context) {
	file, header, err := c.Request.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Media file is required"})
		return
	}
	file.Close()

	if header.Size > h.cfg.UploadMaxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("media file too large: %d bytes (max: %d)", header.Size, h.cfg.UploadMaxSize),
		})
		return
	}

	// Stage the upload under a per-request name so concurrent requests never
	// alias, and make sure it is gone on every exit path.
	stagedPath := filepath.Join(os.TempDir(), "chronica-upload-"+uuid.New().String()+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, stagedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to stage uploaded file"})
		return
	}
	defer os.Remove(stagedPath)

	data, err := os.ReadFile(stagedPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read staged file"})
		return
	}

	var tags []string
	if tagsStr := c.PostForm("tags"); tagsStr != "" {
		if err := json.Unmarshal([]byte(tagsStr), &tags); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "tags must be a JSON array of strings"})
			return
		}
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	result, err := h.nftService.CreateNFT(c.Request.Context(), services.CreateNFTRequest{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Media:          data,
		MimeType:       mimeType,
		EventTimestamp: c.PostForm("eventTimestamp"),
		GeoLocation:    c.PostForm("geoLocation"),
		Tags:           tags,
		Culture:        c.PostForm("culture"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GetPayoutWallets lists the payout wallets registered with the NMKR account
// GET /api/v1/nft/payout-wallets
func (h *NFTHandler) GetPayoutWallets(c *gin.Context) {
	wallets, err := h.nmkrClient.GetPayoutWallets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": wallets})
}
