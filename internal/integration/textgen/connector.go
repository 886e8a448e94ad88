package textgen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/openhorizon/seed-backend/internal/config"
	"github.com/openhorizon/seed-backend/internal/entity"
	"github.com/openhorizon/seed-backend/internal/integration/common"
	pkghttp "github.com/openhorizon/seed-backend/pkg/http"
)

// Connector talks to the text-generation service that writes the
// conversational side of the elaboration. The structured metadata never
// depends on its output.
type Connector struct {
	config    config.TextGenConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TextGenConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Elaborate produces the conversational reply for one turn and, optionally,
// an updated narrative framing of the seed.
func (c *Connector) Elaborate(ctx context.Context, req *entity.TextGenElaborateRequest) (
	*entity.TextGenElaborateResponse, error,
) {
	ctxzap.Info(ctx, "requesting conversational reply from textgen service")

	var resp entity.TextGenElaborateResponse
	err := c.doWithRetry(ctx, c.config.ElaborateEndpoint, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("elaborate request failed: %w", err)
	}

	if resp.Message == "" {
		return nil, fmt.Errorf("invalid elaborate response: empty message field")
	}

	ctxzap.Info(ctx, "conversational reply received",
		zap.Int("message_length", len(resp.Message)),
		zap.Bool("seed_updated", resp.UpdatedSeed != nil))

	return &resp, nil
}

// GenerateSummary renders the final proposal text for a completed session.
func (c *Connector) GenerateSummary(ctx context.Context, req *entity.TextGenSummaryRequest) (string, error) {
	ctxzap.Info(ctx, "generating proposal summary via textgen service")

	var resp entity.TextGenSummaryResponse
	err := c.doWithRetry(ctx, c.config.SummaryEndpoint, req, &resp)
	if err != nil {
		return "", fmt.Errorf("generate summary failed: %w", err)
	}

	if resp.Result == "" {
		return "", fmt.Errorf("invalid summary response: empty or missing result field")
	}

	ctxzap.Info(ctx, "proposal summary generated", zap.Int("result_length", len(resp.Result)))

	return resp.Result, nil
}

func (c *Connector) doWithRetry(ctx context.Context, endpoint string, req, resp any) error {
	opts := append(
		c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, resp)
	}, opts...)
}
