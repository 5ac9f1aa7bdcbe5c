package server

import (
	"context"

	"github.com/daphnetxg/homepage-audit/internal/model"
)

// AuditProvider defines the contract for any audit engine.
type AuditProvider interface {
	Audit(ctx context.Context, rawURL string) (*model.Report, error)
}
