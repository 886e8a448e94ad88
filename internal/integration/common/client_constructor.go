package common

import (
	"go.uber.org/zap"

	"github.com/openhorizon/seed-backend/internal/config"
	pkgHTTP "github.com/openhorizon/seed-backend/pkg/http"
)

// NewBaseConnector builds the shared outbound HTTP connector from client
// config: timeouts, keep-alive, debug request logging and bearer auth.
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	return pkgHTTP.NewConnector(
		&pkgHTTP.ConnectorConfig{
			Logger:  logger,
			BaseURL: cfg.Url,
		},
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	)
}
