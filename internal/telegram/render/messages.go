package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/openhorizon/seed-backend/internal/entity"
)

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I turn rough youth-exchange ideas into complete Erasmus+ project proposals.

Pick one of your ideas and I will walk you through the details: participants, budget, dates, destination and more.`

	MsgSelectSeed = `🌱 Which idea shall we work on?`

	MsgNoSeeds = `You have no project ideas yet. Create one through the app first, then come back here.`

	// Session lifecycle
	MsgSessionDone = `🎉 That covers everything. Your project proposal is ready to review.`

	MsgSessionStopped = `👋 Session closed. Your answers are kept, /start resumes where you left off.`

	MsgConfirmCancel = `⚠️ Stop working on this idea? Your answers so far stay saved.`

	MsgSaved     = `⭐ Saved. You can find it in your saved ideas.`
	MsgDismissed = `🗑 Dismissed. It will no longer show up in your list.`

	MsgChooseFormat = `📄 Which format would you like?`

	MsgHelp = `🤖 Commands:

/start - pick a project idea to elaborate
/progress - show how complete the proposal is
/cancel - stop the current session
/help - show this message

Answer my questions in plain language, for example "30 participants from Germany and France". Tap a suggestion button when unsure.`

	// Errors
	ErrGeneric            = `❌ Something went wrong. Try again or hit /start`
	ErrNoSession          = `There is no active session. Use /start to pick an idea.`
	ErrSeedNotFound       = `❌ That idea no longer exists. Use /start to pick another.`
	ErrSeedDismissed      = `❌ That idea was dismissed. Pick another with /start`
	ErrProposalIncomplete = `The proposal is not complete yet. Answer the remaining questions first.`
	ErrNetworkIssue       = `❌ Connection trouble. Try again in a moment.`
	ErrServiceUnavailable = `❌ The service is temporarily unavailable. Try again in a couple of minutes.`
	ErrTimeout            = `❌ That took too long. Please try again.`
)

// RenderTurn formats one conversation turn: reply text, any validation
// problems and the current progress.
func RenderTurn(resp *entity.ProcessAnswerResponse) string {
	var sb strings.Builder

	if len(resp.ValidationErrors) > 0 {
		sb.WriteString("⚠️ ")
		sb.WriteString(strings.Join(resp.ValidationErrors, "\n⚠️ "))
		sb.WriteString("\n\n")
	}

	sb.WriteString(resp.Message)

	sb.WriteString("\n\n")
	sb.WriteString(RenderProgress(resp.Metadata.Completeness, resp.Metadata.MissingFields))

	return sb.String()
}

// RenderProgress draws the completeness bar with outstanding fields
func RenderProgress(completeness int, missingFields []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s %d%%", progressEmoji(completeness), progressBar(completeness), completeness))

	if len(missingFields) > 0 {
		labels := make([]string, 0, len(missingFields))
		for _, f := range missingFields {
			labels = append(labels, FieldLabel(f))
		}
		sb.WriteString("\nStill open: ")
		sb.WriteString(strings.Join(labels, ", "))
	}

	return sb.String()
}

// FieldLabel maps a metadata slot name to a human label
func FieldLabel(field string) string {
	switch field {
	case "participantCount":
		return "participants"
	case "budget":
		return "budget"
	case "duration":
		return "duration"
	case "destination":
		return "destination"
	case "participantCountries":
		return "participant countries"
	case "activities":
		return "activities"
	case "erasmusPriorities":
		return "EU priorities"
	default:
		return field
	}
}

// progressBar creates a ten-segment completeness bar
func progressBar(completeness int) string {
	if completeness < 0 {
		completeness = 0
	}
	if completeness > 100 {
		completeness = 100
	}

	filled := completeness / 10
	return "[" + strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled) + "]"
}

func progressEmoji(completeness int) string {
	switch {
	case completeness >= 100:
		return "🎉"
	case completeness >= 60:
		return "📈"
	case completeness >= 30:
		return "📊"
	default:
		return "📥"
	}
}

// ClassifyError analyzes an error and returns an appropriate user-facing message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	if errors.Is(err, entity.ErrSeedNotFound) || errors.Is(err, entity.ErrElaborationNotFound) {
		return ErrSeedNotFound
	}
	if errors.Is(err, entity.ErrSeedDismissed) {
		return ErrSeedDismissed
	}
	if errors.Is(err, entity.ErrNoSummary) {
		return ErrProposalIncomplete
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Err == syscall.ECONNREFUSED {
			return ErrServiceUnavailable
		}
		return ErrNetworkIssue
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return ErrServiceUnavailable
	case strings.Contains(errMsg, "timeout"):
		return ErrTimeout
	case strings.Contains(errMsg, "unavailable"):
		return ErrServiceUnavailable
	}

	return ErrGeneric
}
