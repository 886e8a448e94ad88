package validator

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/openhorizon/seed-backend/internal/entity"
)

const maxMessageLength = 4000

func (v *Validator) ValidateProcessAnswer(req *entity.ProcessAnswerRequest) error {
	if req.Message == "" {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", entity.ErrInvalidParameter, maxMessageLength)
	}
	return nil
}

func (v *Validator) ValidateEditMessage(req *entity.EditMessageRequest) error {
	if req.Content == "" {
		return fmt.Errorf("%w: content", entity.ErrMissingField)
	}
	if utf8.RuneCountInString(req.Content) > maxMessageLength {
		return fmt.Errorf("%w: content exceeds %d characters", entity.ErrInvalidParameter, maxMessageLength)
	}
	return nil
}

// ValidateTurnIndex parses the transcript index path parameter
func (v *Validator) ValidateTurnIndex(raw string) (int, error) {
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: index must be a non-negative integer", entity.ErrInvalidParameter)
	}
	return idx, nil
}
