package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/openhorizon/seed-backend/internal/entity"
)

// MockConnector is a local stand-in for the text-generation service, used
// when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Elaborate(ctx context.Context, req *entity.TextGenElaborateRequest) (
	*entity.TextGenElaborateResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] producing conversational reply")

	var b strings.Builder
	b.WriteString("Got it, thanks! ")
	if req.CurrentQuestion != nil {
		b.WriteString(*req.CurrentQuestion)
	} else {
		b.WriteString("Your project outline is complete.")
	}

	resp := &entity.TextGenElaborateResponse{Message: b.String()}

	ctxzap.Info(ctx, "[MOCK] conversational reply produced", zap.Int("message_length", len(resp.Message)))
	return resp, nil
}

func (m *MockConnector) GenerateSummary(ctx context.Context, req *entity.TextGenSummaryRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating proposal summary")

	meta := req.Metadata
	var b strings.Builder
	b.WriteString("# Project Proposal (MOCK)\n\n")
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", req.SeedTitle, req.SeedDescription)
	if meta.ParticipantCount != nil {
		fmt.Fprintf(&b, "- Participants: %d\n", *meta.ParticipantCount)
	}
	if meta.TotalBudget != nil {
		fmt.Fprintf(&b, "- Total budget: €%.0f\n", *meta.TotalBudget)
	}
	if meta.Duration != nil {
		fmt.Fprintf(&b, "- Duration: %d days\n", *meta.Duration)
	}
	if meta.Destination != nil {
		fmt.Fprintf(&b, "- Destination: %s, %s\n", meta.Destination.City, meta.Destination.Country)
	}
	b.WriteString("\n---\n*Generated by mock connector*")

	summary := b.String()
	ctxzap.Info(ctx, "[MOCK] proposal summary generated", zap.Int("result_length", len(summary)))
	return summary, nil
}
