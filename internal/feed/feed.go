// Package feed holds one session's view of the shared report list.
package feed

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/oksasatya/civic-reports/internal/client"
	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

// SelfReporter is the display name the report form submits for the
// signed-in resident.
const SelfReporter = "You"

const (
	MsgLoadFailed   = "Failed to load reports. Please try again."
	MsgSubmitFailed = "Failed to submit report. Please try again."
	MsgDeleteFailed = "Failed to delete report. Please try again."
	MsgDraftInvalid = "Please fill in location and description"
)

// API is the subset of the HTTP client the feed needs.
type API interface {
	ListProblems(ctx context.Context) ([]entity.Report, error)
	CreateProblem(ctx context.Context, in client.NewReport) (*entity.Report, error)
	DeleteProblem(ctx context.Context, id string) error
}

// Error is the single user-facing failure of a feed operation. Err keeps
// the underlying cause.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Feed is an owned container for the report list. It is safe for
// concurrent use; a failed operation leaves the list untouched.
type Feed struct {
	api           API
	authoritative bool

	mu      sync.RWMutex
	reports []entity.Report
	loaded  bool
}

type Option func(*Feed)

// WithAuthoritativeSync re-fetches the list after every successful
// mutation instead of applying it locally.
func WithAuthoritativeSync() Option {
	return func(f *Feed) { f.authoritative = true }
}

func New(api API, opts ...Option) *Feed {
	f := &Feed{api: api}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load fetches the list once and replaces the local copy wholesale,
// keeping server order.
func (f *Feed) Load(ctx context.Context) error {
	list, err := f.api.ListProblems(ctx)
	if err != nil {
		return &Error{Message: MsgLoadFailed, Err: err}
	}
	f.mu.Lock()
	f.reports = append([]entity.Report(nil), list...)
	f.loaded = true
	f.mu.Unlock()
	return nil
}

// Refresh is an explicit re-fetch with Load semantics.
func (f *Feed) Refresh(ctx context.Context) error { return f.Load(ctx) }

// Submit creates a report and, on success, puts it at the front of the list.
func (f *Feed) Submit(ctx context.Context, in client.NewReport) (*entity.Report, error) {
	created, err := f.api.CreateProblem(ctx, in)
	if err != nil {
		return nil, &Error{Message: MsgSubmitFailed, Err: err}
	}
	if f.authoritative {
		if err := f.Load(ctx); err != nil {
			return created, err
		}
		return created, nil
	}
	f.mu.Lock()
	f.reports = append([]entity.Report{*created}, f.reports...)
	f.mu.Unlock()
	return created, nil
}

// Remove deletes a report and, on success, filters it out of the list.
func (f *Feed) Remove(ctx context.Context, id string) error {
	if err := f.api.DeleteProblem(ctx, id); err != nil {
		return &Error{Message: MsgDeleteFailed, Err: err}
	}
	if f.authoritative {
		return f.Load(ctx)
	}
	f.mu.Lock()
	kept := f.reports[:0:0]
	for _, r := range f.reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reports = kept
	f.mu.Unlock()
	return nil
}

// Reports returns a copy of the current list.
func (f *Feed) Reports() []entity.Report {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]entity.Report{}, f.reports...)
}

// Loaded reports whether a Load has ever succeeded.
func (f *Feed) Loaded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loaded
}

// Filter returns the reports in category c, in list order. An empty
// category returns everything.
func (f *Feed) Filter(c entity.Category) []entity.Report {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]entity.Report, 0, len(f.reports))
	for _, r := range f.reports {
		if c == "" || r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the report with id from the local list.
func (f *Feed) Find(id string) (entity.Report, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, r := range f.reports {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Report{}, false
}

// CanDelete decides whether the delete control is shown for r. It is a
// display rule only; the server does not check ownership.
func CanDelete(r entity.Report, viewer string) bool {
	if r.ReportedBy == SelfReporter {
		return true
	}
	return viewer != "" && r.ReportedBy == viewer
}

// Title is the generated title for a report filed under c.
func Title(c entity.Category) string {
	return c.Label() + " Issue"
}

// Draft is what the report form collects before submission.
type Draft struct {
	Category    entity.Category
	Description string
	Location    string
	ImageURL    string
	VideoURL    string
	ReportedBy  string
}

var ErrDraftIncomplete = errors.New(MsgDraftInvalid)

// Build turns the draft into a request body. Category defaults to other and
// reporter to SelfReporter.
func (d Draft) Build() (client.NewReport, error) {
	desc := strings.TrimSpace(d.Description)
	loc := strings.TrimSpace(d.Location)
	if desc == "" || loc == "" {
		return client.NewReport{}, ErrDraftIncomplete
	}
	c := d.Category
	if c == "" {
		c = entity.CategoryOther
	}
	by := strings.TrimSpace(d.ReportedBy)
	if by == "" {
		by = SelfReporter
	}
	return client.NewReport{
		Title:       Title(c),
		Description: desc,
		Category:    string(c),
		Location:    loc,
		ImageURL:    strings.TrimSpace(d.ImageURL),
		VideoURL:    strings.TrimSpace(d.VideoURL),
		ReportedBy:  by,
	}, nil
}
