// Package export turns rendered slip documents into downloadable files.
package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"slipgen/internal/domain/render"
)

// A4 portrait, in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Paginate returns the vertical offset at which the full slip image is
// placed on each page. The same image is re-placed shifted up by one page
// height per page until no unpositioned height remains. This is positional
// cropping of one raster capture, not re-layout pagination: a page break can
// bisect a line of text, which is an accepted limitation of the format.
func Paginate(imgHeightMM float64) []float64 {
	offsets := []float64{0}
	heightLeft := imgHeightMM - PageHeightMM
	position := 0.0
	for heightLeft > 0 {
		position -= PageHeightMM
		offsets = append(offsets, position)
		heightLeft -= PageHeightMM
	}
	return offsets
}

// Filename names the download for a persisted slip.
func Filename(employeeName, monthYear string) string {
	return fmt.Sprintf("Salary_Slip_%s_%s.pdf", employeeName, monthYear)
}

// DraftFilename names the download for an unsaved draft, falling back to a
// fixed token when the pay period is not filled in yet.
func DraftFilename(monthYear string) string {
	if monthYear == "" {
		monthYear = "Draft"
	}
	return fmt.Sprintf("Salary_Slip_%s.pdf", monthYear)
}

// Exporter captures rendered documents and assembles them into PDFs.
type Exporter struct {
	Capture render.CaptureOptions
}

// PDF captures the document as a single raster image and slices it across
// A4 pages. For persisted slips qrContent carries the record id, stamped as
// a QR code on page one; drafts pass an empty string. Any failure during
// capture or assembly comes back as an error, never a panic.
func (e *Exporter) PDF(doc render.Document, qrContent string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf export failed: %v", r)
		}
	}()

	img := render.Rasterize(doc, e.Capture)

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}

	widthPx := img.Bounds().Dx()
	heightPx := img.Bounds().Dy()
	if widthPx == 0 {
		return nil, fmt.Errorf("capture has zero width")
	}
	imgHeightMM := float64(heightPx) * PageWidthMM / float64(widthPx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("slip", opts, &encoded)
	for _, offset := range Paginate(imgHeightMM) {
		pdf.AddPage()
		pdf.ImageOptions("slip", 0, offset, PageWidthMM, imgHeightMM, false, opts, 0, "")
	}

	if qrContent != "" {
		if qr, qrErr := qrcode.Encode(qrContent, qrcode.Medium, 256); qrErr == nil {
			pdf.SetPage(1)
			pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(qr))
			pdf.ImageOptions("verify-qr", PageWidthMM-26, PageHeightMM-26, 18, 18, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return buf.Bytes(), nil
}
