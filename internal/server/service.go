package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/daphnetxg/homepage-audit/internal/model"
	"github.com/daphnetxg/homepage-audit/internal/platform/errs"
	"github.com/daphnetxg/homepage-audit/internal/platform/requestid"
)

// Service orchestrates an AuditProvider and logs outcomes.
type Service struct {
	provider AuditProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider AuditProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Audit delegates to the provider and logs the outcome.
func (s *Service) Audit(ctx context.Context, rawURL string) (*model.Report, error) {
	logger := s.logger.With("url", rawURL, "request_id", requestid.FromContext(ctx))

	report, err := s.provider.Audit(ctx, rawURL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "The site took too long to respond. Try again, or check whether it blocks automated visitors.",
				Cause:   err,
			}
		}

		logger.Error("audit failed", "error", err)
		return nil, err
	}

	logger.Info("audit complete",
		"final_url", report.FinalURL,
		"status", report.Status,
		"score", report.Score,
		"verdict", report.Verdict.Badge,
		"findings", len(report.Checks),
		"ttfb_ms", report.TTFBMillis,
		"elapsed_ms", report.ElapsedMillis,
	)
	return report, nil
}
