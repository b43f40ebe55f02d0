package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chronica/backend/internal/config"
	"github.com/chronica/backend/pkg/fingerprint"
)

type QRService struct {
	cfg *config.Config
}

func NewQRService(cfg *config.Config) *QRService { return &QRService{cfg: cfg} }

// GenerateVerificationPDF generates a simple A4 PDF with a QR code linking to
// the asset's explorer page, plus the full list of known explorer URLs.
func (s *QRService) GenerateVerificationPDF(fp string) ([]byte, error) {
	urls := fingerprint.ExplorerURLs(fp)
	verificationURL := urls.CardanoscanPreprod
	if s.cfg.CardanoNetwork == "mainnet" {
		verificationURL = urls.Cardanoscan
	}

	// Create QR PNG in memory
	var qrBuf bytes.Buffer
	png, err := qrcode.Encode(verificationURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}
	qrBuf.Write(png)

	// Create PDF
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Chronica Asset Verification")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Fingerprint: %s\nCardanoscan: %s\nCardanoscan (preprod): %s\nPool.pm: %s\nCNFT: %s\nCardano Assets: %s",
		urls.Fingerprint, urls.Cardanoscan, urls.CardanoscanPreprod, urls.PoolPM, urls.CNFT, urls.CardanoAssets,
	), "", "L", false)

	// Register image from reader
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(qrBuf.Bytes()))

	// Center QR on the page
	x := (210.0 - 100.0) / 2.0 // A4 width 210mm, QR size 100mm
	y := pdf.GetY() + 10
	pdf.ImageOptions("qr", x, y, 100, 100, false, opt, 0, "")

	// Output to buffer
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
