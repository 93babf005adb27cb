package worker

// report_worker.go
// Renders the end-of-day closing report as a PDF and mails it to the owner.
// Triggered by the closing flow via the dispatcher; delivery goes through the
// circuit breaker so a downed mail relay degrades to DLQ entries instead of
// blocking the pool.

import (
	"context"
	"fmt"

	"saunapos/internal/infra"
	"saunapos/internal/repository"

	"github.com/rs/zerolog/log"
)

type ClosingReportWorker struct {
	closings  repository.ClosingRepository
	summaries repository.SummaryRepository
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	pdfPath   string
	reportTo  string
}

func NewClosingReportWorker(
	closings repository.ClosingRepository,
	summaries repository.SummaryRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	pdfPath, reportTo string,
) *ClosingReportWorker {
	return &ClosingReportWorker{
		closings:  closings,
		summaries: summaries,
		mailer:    mailer,
		cb:        cb,
		pdfPath:   pdfPath,
		reportTo:  reportTo,
	}
}

func (w *ClosingReportWorker) Handle(ctx context.Context, payload ClosingReportPayload) error {
	closing, err := w.closings.FindByBusinessDay(ctx, payload.BusinessDay)
	if err != nil {
		return fmt.Errorf("closing_report: load closing %s: %w", payload.BusinessDay, err)
	}
	summary, err := w.summaries.FindByBusinessDay(ctx, payload.BusinessDay)
	if err != nil {
		return fmt.Errorf("closing_report: load summary %s: %w", payload.BusinessDay, err)
	}

	path, err := infra.GenerateClosingPDF(closing, summary, w.pdfPath)
	if err != nil {
		return fmt.Errorf("closing_report: render PDF: %w", err)
	}
	log.Info().Str("business_day", payload.BusinessDay).Str("path", path).Msg("closing report rendered")

	if w.reportTo == "" {
		return nil // no recipient configured — PDF on disk is the deliverable
	}

	subject := fmt.Sprintf("Closing report %s", payload.BusinessDay)
	body := fmt.Sprintf(
		"Business day %s closed with a %s deviation of %d.\nEntry %d / additional %d / rental %d.",
		payload.BusinessDay, closing.DeviationClass, closing.Deviation,
		summary.EntryTotal, summary.AdditionalTotal, summary.RentalTotal,
	)

	return w.cb.Execute(func() error {
		return w.mailer.SendReport(w.reportTo, subject, body, path)
	})
}
