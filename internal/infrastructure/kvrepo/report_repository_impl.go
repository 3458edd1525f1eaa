package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	"github.com/oksasatya/civic-reports/internal/domain/repository"
)

type ReportRepository struct {
	kv repository.KVStore
}

func NewReportRepository(kv repository.KVStore) *ReportRepository {
	return &ReportRepository{kv: kv}
}

// List returns reports in scan order; ordering for display is the caller's job.
func (r *ReportRepository) List(ctx context.Context) ([]entity.Report, error) {
	docs, err := r.kv.ScanPrefix(ctx, ReportPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Report, 0, len(docs))
	for _, d := range docs {
		var rep entity.Report
		if err := json.Unmarshal(d, &rep); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, rep)
	}
	return out, nil
}

// Save writes the report under its id, replacing any report with the same id.
func (r *ReportRepository) Save(ctx context.Context, rep *entity.Report) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, reportKey(rep.ID), b)
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, reportKey(id))
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
