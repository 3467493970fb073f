package holiday

import (
	"context"
	"errors"
)

// Calendar maps a year ("2026") to its holiday dates ("2026-12-25").
type Calendar map[string][]string

type Source interface {
	Holidays(ctx context.Context) (Calendar, error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(ctx context.Context) (Calendar, error)

func (f SourceFunc) Holidays(ctx context.Context) (Calendar, error) {
	return f(ctx)
}

// ErrSourceNotConfigured marks a run without a holiday calendar. It is not
// fatal; the threshold stays as configured.
var ErrSourceNotConfigured = errors.New("holiday source not configured")
