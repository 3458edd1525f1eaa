package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/domain/entity"
	repo "github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/pkg/validation"
)

const (
	MsgMissingFields   = "Missing required fields"
	MsgInvalidCategory = "Invalid category"
)

type ReportService struct {
	Repo                repo.ReportRepository
	IDs                 IDGenerator
	Now                 func() time.Time
	PlaceholderImageURL string
	Logger              *logrus.Logger
}

func NewReportService(r repo.ReportRepository, ids IDGenerator, placeholder string, logger *logrus.Logger) *ReportService {
	if ids == nil {
		ids = MillisIDGenerator{}
	}
	if placeholder == "" {
		placeholder = config.DefaultPlaceholderImageURL
	}
	return &ReportService{
		Repo:                r,
		IDs:                 ids,
		Now:                 time.Now,
		PlaceholderImageURL: placeholder,
		Logger:              logger,
	}
}

// CreateReportInput is the client-supplied part of a report.
type CreateReportInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,category"`
	Location    string `json:"location" validate:"required"`
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl"`
	ReportedBy  string `json:"reportedBy"`
}

func (in *CreateReportInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	in.ReportedBy = strings.TrimSpace(in.ReportedBy)
}

// List returns every stored report, newest first. Reports sharing a
// timestamp keep the store's scan order.
func (s *ReportService) List(ctx context.Context) ([]entity.Report, error) {
	reports, err := s.Repo.List(ctx)
	if err != nil {
		s.logError("list reports failed", err, nil)
		return nil, storeErr("list reports", err)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	return reports, nil
}

// Create validates in, assigns id and timestamp, applies defaults and
// persists the report. Nothing is written when validation fails.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (*entity.Report, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		msg := MsgInvalidCategory
		if validation.HasTag(err, "required") {
			msg = MsgMissingFields
		}
		return nil, &ValidationError{Message: msg, Fields: validation.ToDetails(err)}
	}
	category, _ := entity.ParseCategory(in.Category)

	now := s.Now().UTC().Truncate(time.Millisecond)
	r := &entity.Report{
		ID:          s.IDs.NewID(now),
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		Timestamp:   now,
		ReportedBy:  in.ReportedBy,
	}
	if r.ImageURL == "" {
		r.ImageURL = s.PlaceholderImageURL
	}
	if r.ReportedBy == "" {
		r.ReportedBy = entity.AnonymousReporter
	}

	if err := s.Repo.Save(ctx, r); err != nil {
		s.logError("save report failed", err, logrus.Fields{"report_id": r.ID})
		return nil, storeErr("save report", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"report_id": r.ID, "category": r.Category}).Info("report created")
	}
	return r, nil
}

// Delete removes the report with id. Unknown ids are not an error.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		s.logError("delete report failed", err, logrus.Fields{"report_id": id})
		return storeErr("delete report", err)
	}
	return nil
}

func (s *ReportService) logError(msg string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Error(msg)
}
