package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tendril/pkg/domain"
)

// LogHooks logs rebuilds and anomalies. Ticks are logged at debug level
// only when they fail, since they happen every frame.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "rebuild_rejected",
					"build_id", e.BuildID,
					"err", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "rebuild",
				"build_id", e.BuildID,
				"statements", e.Statements,
				"generators", e.Generators,
				"edges", e.Edges,
				"duration", e.Duration,
			)
		},
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "tick_failed", "frame", e.Frame, "err", e.Err)
			}
		},
		OnAnomaly: func(ctx context.Context, e *domain.AnomalyEvent) {
			logger.DebugContext(ctx, "anomaly",
				"generator", e.Generator,
				"port", e.Port,
				"kind", e.Kind,
				"value", domain.JSONValue(e.Value),
			)
		},
	}
}
