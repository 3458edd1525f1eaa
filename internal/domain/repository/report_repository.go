package repository

import (
	"context"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

// ReportRepository persists reports under the problem: namespace.
type ReportRepository interface {
	List(ctx context.Context) ([]entity.Report, error)
	Save(ctx context.Context, r *entity.Report) error
	Delete(ctx context.Context, id string) error
}
