package keyboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	cb, err := ParseCallback("seed:a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, "seed", cb.Action)
	assert.Equal(t, "a1b2c3", cb.Value)

	cb, err = ParseCallback("export:md")
	require.NoError(t, err)
	assert.Equal(t, "export", cb.Action)
	assert.Equal(t, "md", cb.Value)

	_, err = ParseCallback("no-separator")
	assert.Error(t, err)
}

func TestEncodeCallback(t *testing.T) {
	assert.Equal(t, "action:list", EncodeCallback("action", "list"))

	long := EncodeCallback("seed", strings.Repeat("x", 100))
	assert.LessOrEqual(t, len(long), 64)
	assert.True(t, strings.HasPrefix(long, "seed:"))
}

func TestSeedSelectionKeyboard(t *testing.T) {
	b := NewBuilder()

	seeds := make([]Seed, 12)
	for i := range seeds {
		seeds[i] = Seed{ID: fmt.Sprintf("seed-%d", i), Title: fmt.Sprintf("Idea %d", i)}
	}

	kb := b.SeedSelectionKeyboard(seeds)

	require.Len(t, kb.InlineKeyboard, 10)
	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "Idea 0", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "seed:seed-0", *first.CallbackData)
}

func TestQuickReplyKeyboard(t *testing.T) {
	b := NewBuilder()

	kb := b.QuickReplyKeyboard([]string{"30 participants", "45 participants"})

	assert.True(t, kb.OneTimeKeyboard)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "30 participants", kb.Keyboard[0][0].Text)
}

func TestProposalKeyboard(t *testing.T) {
	b := NewBuilder()

	kb := b.ProposalKeyboard()

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "action:save", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "action:dismiss", *kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "action:export", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestExportKeyboard(t *testing.T) {
	b := NewBuilder()

	kb := b.ExportKeyboard()

	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 3)
	assert.Equal(t, "export:md", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "export:docx", *kb.InlineKeyboard[0][2].CallbackData)
}
