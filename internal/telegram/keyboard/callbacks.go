package keyboard

import (
	"fmt"
	"strings"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string // "action", "seed", "reply", "export", "confirm"
	Value  string // The parameter
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string. Telegram caps callback
// payloads at 64 bytes, so long values are truncated.
func EncodeCallback(action, value string) string {
	const maxPayload = 64

	data := fmt.Sprintf("%s:%s", action, value)
	if len(data) > maxPayload {
		data = data[:maxPayload]
	}
	return data
}
