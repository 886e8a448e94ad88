package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Seed is the minimal seed view needed for selection buttons
type Seed struct {
	ID    string
	Title string
}

// Builder creates keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌱 Pick a project idea", "action:list"),
		),
	)
}

// SeedSelectionKeyboard creates one button per seed (max 10 recent)
func (b *Builder) SeedSelectionKeyboard(seeds []Seed) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	count := len(seeds)
	if count > 10 {
		count = 10
	}

	for i := 0; i < count; i++ {
		s := seeds[i]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Title, EncodeCallback("seed", s.ID)),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// QuickReplyKeyboard turns example answers into a one-time reply keyboard.
// Tapping a button sends the text as a regular message, so quick replies
// flow through the same answer path as typed text.
func (b *Builder) QuickReplyKeyboard(suggestions []string) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{}
	for _, s := range suggestions {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(s)))
	}

	kb := tgbotapi.NewOneTimeReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// RemoveKeyboard hides any active reply keyboard
func (b *Builder) RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(false)
}

// ProposalKeyboard creates the actions for a completed session
func (b *Builder) ProposalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⭐ Save", "action:save"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Dismiss", "action:dismiss"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Export", "action:export"),
		),
	)
}

// ExportKeyboard creates the document format choices
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Markdown", "export:md"),
			tgbotapi.NewInlineKeyboardButtonData("PDF", "export:pdf"),
			tgbotapi.NewInlineKeyboardButtonData("DOCX", "export:docx"),
		),
	)
}

// ConfirmCancelKeyboard asks to confirm dropping the current session
func (b *Builder) ConfirmCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, stop", "confirm:cancel"),
			tgbotapi.NewInlineKeyboardButtonData("❌ No, keep going", "confirm:continue"),
		),
	)
}
