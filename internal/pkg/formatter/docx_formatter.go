package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

// Format maps markdown headings to Word heading styles so the exported
// document keeps the proposal's section structure.
func (mf *DOCXFormatter) Format(text string) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		par := doc.AddParagraph()
		content := block
		switch {
		case strings.HasPrefix(block, "# "):
			par.SetStyle("Heading1")
			content = strings.TrimPrefix(block, "# ")
		case strings.HasPrefix(block, "## "):
			par.SetStyle("Heading2")
			content = strings.TrimPrefix(block, "## ")
		}

		par.AddRun().AddText(content)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
