package validator

import (
	"fmt"

	"github.com/openhorizon/seed-backend/internal/entity"
)

// Validator validates transport DTOs before they reach the usecases
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateCreateSeed(req *entity.CreateSeedRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	if req.ApprovalLikelihood < 0 || req.ApprovalLikelihood > 1 {
		return fmt.Errorf("%w: approval_likelihood must be within [0,1]", entity.ErrInvalidParameter)
	}
	if req.EstimatedDuration != nil && *req.EstimatedDuration < 1 {
		return fmt.Errorf("%w: estimated_duration must be positive", entity.ErrInvalidParameter)
	}
	if req.EstimatedParticipants != nil && *req.EstimatedParticipants < 1 {
		return fmt.Errorf("%w: estimated_participants must be positive", entity.ErrInvalidParameter)
	}
	return nil
}

func (v *Validator) ValidateExportFormat(format string) (entity.ExportFormat, error) {
	f := entity.ExportFormat(format)
	if err := f.Validate(); err != nil {
		return "", fmt.Errorf("%w: format must be one of md, pdf, docx", err)
	}
	return f, nil
}
