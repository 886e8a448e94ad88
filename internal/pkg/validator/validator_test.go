package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhorizon/seed-backend/internal/entity"
)

func intPtr(v int) *int { return &v }

func TestValidateCreateSeed(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     entity.CreateSeedRequest
		wantErr error
	}{
		{
			name: "valid",
			req: entity.CreateSeedRequest{
				Title:              "Youth exchange on media literacy",
				ApprovalLikelihood: 0.7,
			},
		},
		{
			name:    "missing title",
			req:     entity.CreateSeedRequest{ApprovalLikelihood: 0.5},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "likelihood above range",
			req: entity.CreateSeedRequest{
				Title:              "Idea",
				ApprovalLikelihood: 1.5,
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "negative likelihood",
			req: entity.CreateSeedRequest{
				Title:              "Idea",
				ApprovalLikelihood: -0.1,
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "zero duration",
			req: entity.CreateSeedRequest{
				Title:             "Idea",
				EstimatedDuration: intPtr(0),
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "zero participants",
			req: entity.CreateSeedRequest{
				Title:                 "Idea",
				EstimatedParticipants: intPtr(0),
			},
			wantErr: entity.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreateSeed(&tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateExportFormat(t *testing.T) {
	v := NewValidator()

	for _, raw := range []string{"md", "pdf", "docx"} {
		format, err := v.ValidateExportFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, entity.ExportFormat(raw), format)
	}

	_, err := v.ValidateExportFormat("xlsx")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestValidateProcessAnswer(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateProcessAnswer(&entity.ProcessAnswerRequest{Message: "30 participants"}))

	err := v.ValidateProcessAnswer(&entity.ProcessAnswerRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)

	long := strings.Repeat("a", maxMessageLength+1)
	err = v.ValidateProcessAnswer(&entity.ProcessAnswerRequest{Message: long})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestValidateEditMessage(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEditMessage(&entity.EditMessageRequest{Content: "40 people"}))

	err := v.ValidateEditMessage(&entity.EditMessageRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestValidateTurnIndex(t *testing.T) {
	v := NewValidator()

	idx, err := v.ValidateTurnIndex("3")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = v.ValidateTurnIndex("-1")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	_, err = v.ValidateTurnIndex("abc")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
