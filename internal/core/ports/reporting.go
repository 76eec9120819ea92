package ports

import (
	"context"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
)

//go:generate mockery --name=Reporter --output=./mocks --outpkg=mocks --case underscore
type Reporter interface {
	Report(ctx context.Context, results []domain.AuditResult) error
}
