package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhorizon/seed-backend/internal/entity"
)

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		format      entity.ExportFormat
		contentType string
		extension   string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
		{entity.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			fm, err := f.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, fm.ContentType())
			assert.Equal(t, tt.extension, fm.FileExtension())
		})
	}

	_, err := f.Create(entity.ExportFormat("xlsx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	fm := NewMarkdownFormatter()

	out, err := fm.Format("An exchange for 30 participants in Barcelona.")
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Project Proposal")
	assert.Contains(t, string(out), "An exchange for 30 participants in Barcelona.")
}

func TestDOCXFormatterProducesDocument(t *testing.T) {
	fm := NewDOCXFormatter()

	out, err := fm.Format("Participants come from Germany, France and Italy.")
	require.NoError(t, err)
	require.Greater(t, len(out), 2)
	// docx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}
