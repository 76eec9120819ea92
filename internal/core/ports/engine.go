package ports

import (
	"context"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
)

//go:generate mockery --name AuditEngine --output ./mocks --outpkg mocks --case underscore
type AuditEngine interface {
	// Run audits every configured device and reports the results.
	Run(ctx context.Context) ([]domain.AuditResult, error)
}
