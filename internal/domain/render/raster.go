package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CaptureOptions control how a document is captured as a raster image.
type CaptureOptions struct {
	// Scale is the fixed upscaling factor applied for output sharpness.
	Scale int
	// Width is the base layout width in pixels (A4 at 96dpi by default).
	Width int
	// MinHeight lower-bounds the capture so short slips still fill a page.
	MinHeight int
	// MarginBottom is extra height below the content, so nothing at the
	// bottom of the document is truncated by the capture.
	MarginBottom int
	// LogoClient fetches externally hosted logos.
	LogoClient *http.Client
}

func (o CaptureOptions) withDefaults() CaptureOptions {
	if o.Scale <= 0 {
		o.Scale = 2
	}
	if o.Width <= 0 {
		o.Width = 794
	}
	if o.MinHeight <= 0 {
		o.MinHeight = 600
	}
	if o.MarginBottom <= 0 {
		o.MarginBottom = 100
	}
	if o.LogoClient == nil {
		o.LogoClient = &http.Client{Timeout: 10 * time.Second}
	}
	return o
}

const (
	pagePadding = 40
	lineHeight  = 18
	blockGap    = 12
	logoHeight  = 64
)

// Rasterize captures a document as a single image: white background, full
// content height plus margin, upscaled by the fixed capture factor. It never
// fails; a logo that cannot be fetched or decoded is simply skipped.
func Rasterize(doc Document, opts CaptureOptions) *image.RGBA {
	opts = opts.withDefaults()

	base := drawDocument(doc, opts)
	if opts.Scale == 1 {
		return base
	}

	bounds := base.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*opts.Scale, bounds.Dy()*opts.Scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, bounds, xdraw.Over, nil)
	return scaled
}

type textLine struct {
	left   string
	right  string
	center bool
	gap    bool // extra space above this line
}

func layout(doc Document) []textLine {
	lines := []textLine{
		{left: doc.CompanyName, center: true},
		{left: doc.CompanyAddress, center: true},
		{left: doc.Title, center: true, gap: true},
	}

	for i, detail := range doc.Details {
		lines = append(lines, textLine{left: detail.Label + ": " + detail.Value, gap: i == 0})
	}

	lines = append(lines, textLine{left: "EARNINGS", gap: true})
	for _, item := range doc.Earnings {
		lines = append(lines, textLine{left: item.Label, right: item.Formatted})
	}
	lines = append(lines, textLine{left: doc.TotalEarnings.Label, right: doc.TotalEarnings.Formatted})

	lines = append(lines, textLine{left: "DEDUCTIONS", gap: true})
	for _, item := range doc.Deductions {
		lines = append(lines, textLine{left: item.Label, right: item.Formatted})
	}
	lines = append(lines, textLine{left: doc.TotalDeductions.Label, right: doc.TotalDeductions.Formatted})

	lines = append(lines,
		textLine{left: doc.NetSalary.Label, right: doc.NetSalary.Formatted, gap: true},
		textLine{left: doc.SignatureLabels[0], right: doc.SignatureLabels[1], gap: true},
		textLine{left: doc.Footer, center: true, gap: true},
	)
	return lines
}

func drawDocument(doc Document, opts CaptureOptions) *image.RGBA {
	lines := layout(doc)
	logo := loadLogo(doc.LogoRef, opts.LogoClient)

	height := 2 * pagePadding
	if logo != nil {
		height += logoHeight + blockGap
	}
	for _, line := range lines {
		if line.gap {
			height += blockGap
		}
		height += lineHeight
	}
	height += opts.MarginBottom
	if height < opts.MinHeight {
		height = opts.MinHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := pagePadding
	if logo != nil {
		y = drawLogo(img, logo, opts.Width, y)
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for _, line := range lines {
		if line.gap {
			y += blockGap
		}
		y += lineHeight
		baseline := fixed.I(y)

		x := fixed.I(pagePadding)
		if line.center {
			width := drawer.MeasureString(line.left)
			x = (fixed.I(opts.Width) - width) / 2
		}
		drawer.Dot = fixed.Point26_6{X: x, Y: baseline}
		drawer.DrawString(line.left)

		if line.right != "" {
			width := drawer.MeasureString(line.right)
			drawer.Dot = fixed.Point26_6{X: fixed.I(opts.Width-pagePadding) - width, Y: baseline}
			drawer.DrawString(line.right)
		}
	}
	return img
}

func drawLogo(dst *image.RGBA, logo image.Image, pageWidth, y int) int {
	bounds := logo.Bounds()
	if bounds.Dy() == 0 {
		return y
	}
	width := bounds.Dx() * logoHeight / bounds.Dy()
	if width <= 0 || width > pageWidth-2*pagePadding {
		return y
	}

	x := (pageWidth - width) / 2
	target := image.Rect(x, y, x+width, y+logoHeight)
	xdraw.ApproxBiLinear.Scale(dst, target, logo, bounds, xdraw.Over, nil)
	return y + logoHeight + blockGap
}

// loadLogo resolves a logo reference: either an embedded base64 data URL or
// an externally hosted http(s) URL. Any failure yields nil so the capture
// proceeds without a logo.
func loadLogo(ref string, client *http.Client) image.Image {
	switch {
	case strings.HasPrefix(ref, "data:"):
		_, payload, ok := strings.Cut(ref, ",")
		if !ok {
			return nil
		}
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil
		}
		return img
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		resp, err := client.Get(ref)
		if err != nil {
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil
		}
		return img
	default:
		return nil
	}
}
