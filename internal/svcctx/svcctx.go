// Package svcctx provides service context for dependency injection via
// context. This package is separate from the components to avoid import
// cycles between the session orchestrator and its collaborators.
package svcctx

import (
	"context"
	"log/slog"

	"scorecut/internal/config"
)

// Services holds the core services that flow through context. Components
// extract what they need via the individual extractors.
type Services struct {
	Logger        *slog.Logger
	ConfigManager *config.Manager
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}
