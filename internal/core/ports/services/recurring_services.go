package services

import (
	"context"
	"time"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// RecurringSvcFacade turns due recurring templates into realized historical
// entries and rolls each template forward one occurrence per run.
type RecurringSvcFacade interface {
	// ProcessDue advances every due template once: duplicate-guard, post the
	// copy with its ledger effect, advance the date. Per-template errors are
	// logged and skipped; the report carries processed/skipped/failed counts.
	ProcessDue(ctx context.Context, userID string, now time.Time) (*dto.RecurringRunReport, error)

	// PreviewDue returns the templates a run would touch, with no side effects.
	PreviewDue(ctx context.Context, userID string, now time.Time) ([]domain.Transaction, error)
}
