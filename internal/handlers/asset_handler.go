package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chronica/backend/internal/services"
)

type AssetHandler struct {
	blockfrost *services.BlockfrostClient
	qrService  *services.QRService
}

func NewAssetHandler(blockfrost *services.BlockfrostClient, qrService *services.QRService) *AssetHandler {
	return &AssetHandler{
		blockfrost: blockfrost,
		qrService:  qrService,
	}
}

// ListAssets returns every asset minted under the configured policy, hydrated
// with its on-chain metadata
// GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.blockfrost.ListPolicyAssets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": assets})
}

// GetVerificationPDF serves a printable verification sheet for one asset
// GET /api/v1/assets/:fingerprint/qr.pdf
func (h *AssetHandler) GetVerificationPDF(c *gin.Context) {
	fp := c.Param("fingerprint")
	if !strings.HasPrefix(fp, "asset1") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid asset fingerprint"})
		return
	}

	pdf, err := h.qrService.GenerateVerificationPDF(fp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate verification sheet"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+fp+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
