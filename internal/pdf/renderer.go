package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points on US Letter (612x792).
const (
	marginLeft   = 40.0
	firstLineY   = 32.0 // 760pt above the bottom edge
	lineHeight   = 14.0
	marginBottom = 40.0
	pageHeight   = 792.0
	fontSize     = 10.0
)

// Renderer draws left-aligned text lines onto PDF pages.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays lines out top to bottom, starting a new page when one fills up.
func (r *Renderer) Render(lines []string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "", fontSize)
	y := firstLineY
	for _, line := range lines {
		if y > pageHeight-marginBottom {
			doc.AddPage()
			y = firstLineY
		}
		doc.Text(marginLeft, y, tr(line))
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
