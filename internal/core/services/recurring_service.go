package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/giantprolu/gestiondecompte/internal/core/domain"
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/dto"
)

// recurringService realizes due recurring templates as historical entries.
// Each due template advances exactly one occurrence per run; a template that
// fell several periods behind catches up over repeated runs.
type recurringService struct {
	BaseService
	txnRepo  portsrepo.TransactionRepositoryFacade
	notifier portssvc.NotificationSvcFacade
}

// RecurringServiceOption is a functional option for configuring the recurring service
type RecurringServiceOption func(*recurringService)

// WithRunNotifier sets the notification service pinged after a productive run.
func WithRunNotifier(notifier portssvc.NotificationSvcFacade) RecurringServiceOption {
	return func(s *recurringService) {
		s.notifier = notifier
	}
}

// NewRecurringService creates a new recurring processor service.
func NewRecurringService(txnRepo portsrepo.TransactionRepositoryFacade, options ...RecurringServiceOption) portssvc.RecurringSvcFacade {
	s := &recurringService{txnRepo: txnRepo}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// ProcessDue advances every due template once. Per template: the
// lastProcessedDate guard and a duplicate lookup protect against double
// posting; the copy, its ledger effect and the template advance commit in one
// database transaction. A failing template is logged and passed over, never
// aborting the batch.
func (s *recurringService) ProcessDue(ctx context.Context, userID string, now time.Time) (*dto.RecurringRunReport, error) {
	templates, err := s.txnRepo.FindDueTemplates(ctx, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load due recurring templates", slog.String("user_id", userID))
		return nil, err
	}

	report := &dto.RecurringRunReport{}
	for i := range templates {
		tmpl := templates[i]
		if err := s.processTemplate(ctx, tmpl, now, report); err != nil {
			s.LogError(ctx, err, "Recurring template failed, continuing batch",
				slog.String("transaction_id", tmpl.TransactionID))
			report.Failed++
		}
	}

	s.LogInfo(ctx, "Recurring run finished",
		slog.String("user_id", userID),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed))

	if report.Processed > 0 && s.notifier != nil {
		body := fmt.Sprintf("%d recurring transaction(s) were posted to your accounts.", report.Processed)
		if err := s.notifier.Notify(ctx, userID, "Recurring transactions processed", body); err != nil {
			s.LogError(ctx, err, "Failed to notify after recurring run", slog.String("user_id", userID))
		}
	}
	return report, nil
}

func (s *recurringService) processTemplate(ctx context.Context, tmpl domain.Transaction, now time.Time, report *dto.RecurringRunReport) error {
	dueDate := tmpl.Date
	nextDate := domain.NextOccurrence(dueDate, tmpl.RecurrenceFrequency, tmpl.RecurrenceDay)
	if nextDate.Equal(dueDate) {
		return fmt.Errorf("template %s has no valid recurrence frequency", tmpl.TransactionID)
	}

	// Already realized for this due date: roll forward without posting.
	if tmpl.State() == domain.TemplateDone {
		if err := s.txnRepo.AdvanceTemplate(ctx, tmpl.TransactionID, nextDate, dueDate, tmpl.UserID); err != nil {
			return err
		}
		report.Skipped++
		return nil
	}

	// Duplicate lookup guards against a copy posted by a concurrent or
	// crashed earlier run that never advanced the template.
	exists, err := s.txnRepo.HasPostedCopy(ctx, tmpl.UserID, tmpl.AccountID, tmpl.CategoryID, tmpl.Amount, dueDate)
	if err != nil {
		return err
	}
	if exists {
		s.LogDebug(ctx, "Historical copy already exists, advancing without posting",
			slog.String("transaction_id", tmpl.TransactionID),
			slog.Time("due_date", dueDate))
		if err := s.txnRepo.AdvanceTemplate(ctx, tmpl.TransactionID, nextDate, dueDate, tmpl.UserID); err != nil {
			return err
		}
		report.Skipped++
		return nil
	}

	copyNow := time.Now()
	copy := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     tmpl.AccountID,
		UserID:        tmpl.UserID,
		CategoryID:    tmpl.CategoryID,
		Amount:        tmpl.Amount,
		Type:          tmpl.Type,
		Date:          dueDate,
		Note:          tmpl.Note,
		IsActive:      true,
		CreditID:      tmpl.CreditID,
		AuditFields: domain.AuditFields{
			CreatedAt:     copyNow,
			CreatedBy:     recurringActor,
			LastUpdatedAt: copyNow,
			LastUpdatedBy: recurringActor,
		},
	}

	balanceChanges := map[string]decimal.Decimal{
		copy.AccountID: copy.EffectOn(now),
	}

	var creditAdj *portsrepo.CreditAdjustment
	if tmpl.IsRepayment() {
		creditAdj = &portsrepo.CreditAdjustment{CreditID: tmpl.CreditID, Amount: tmpl.Amount.Neg()}
	}

	if err := s.txnRepo.PostOccurrence(ctx, copy, tmpl.TransactionID, nextDate, dueDate, balanceChanges, creditAdj); err != nil {
		return err
	}

	s.LogInfo(ctx, "Recurring occurrence posted",
		slog.String("template_id", tmpl.TransactionID),
		slog.String("copy_id", copy.TransactionID),
		slog.Time("due_date", dueDate),
		slog.Time("next_date", nextDate))
	report.Processed++
	return nil
}

// recurringActor is the audit identity stamped on processor-generated copies.
const recurringActor = "recurring-processor"

// PreviewDue returns the templates a run would consider, with no side effects.
func (s *recurringService) PreviewDue(ctx context.Context, userID string, now time.Time) ([]domain.Transaction, error) {
	return s.txnRepo.FindDueTemplates(ctx, userID, now)
}
