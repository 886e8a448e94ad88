package formatter

import (
	"bytes"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the family name registered with gofpdf for the
	// UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// The Docker image copies fonts next to the binary under ./ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path for running from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Format lays the proposal out section by section: markdown headings
// become bold captions, everything else flows as body text.
func (mf *PDFFormatter) Format(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	_, lineHeight := pdf.GetFontSize()

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			pdf.SetFont(fontName, "B", 20)
			pdf.MultiCell(0, 10, strings.TrimPrefix(line, "# "), "", "", false)
			pdf.Ln(4)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont(fontName, "B", 14)
			pdf.MultiCell(0, 8, strings.TrimPrefix(line, "## "), "", "", false)
			pdf.Ln(2)
		case strings.TrimSpace(line) == "":
			pdf.Ln(lineHeight)
		default:
			pdf.SetFont(fontName, "", 12)
			pdf.MultiCell(0, lineHeight*1.5, line, "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
