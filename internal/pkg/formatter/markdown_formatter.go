package formatter

import "strings"

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format passes the proposal through as-is; a title is prepended only
// when the text does not already open with a heading.
func (mf *MarkdownFormatter) Format(text string) ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "#") {
		return []byte(text), nil
	}
	return []byte("# " + baseTitle + "\n\n" + text), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
