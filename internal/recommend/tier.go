package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// tier is one attempt in an operation's fallback chain.
type tier[T any] struct {
	name string
	run  func(ctx context.Context) ([]T, error)
}

// firstNonEmpty runs tiers in order until one yields at least one item and returns
// that tier's items and name. A failing tier is logged and the chain moves on. The
// returned error joins every tier failure and is only meaningful when items is empty.
func firstNonEmpty[T any](ctx context.Context, operation string, tiers []tier[T]) ([]T, string, error) {
	var errs []error
	for _, t := range tiers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		items, err := t.run(ctx)
		if err != nil {
			slog.Warn("Tier failed", "operation", operation, "tier", t.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
			continue
		}
		if len(items) == 0 {
			slog.Debug("Tier produced nothing", "operation", operation, "tier", t.name)
			continue
		}

		slog.Debug("Tier succeeded", "operation", operation, "tier", t.name, "count", len(items))
		return items, t.name, nil
	}

	return nil, "", errors.Join(errs...)
}
