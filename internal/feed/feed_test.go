package feed

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/civic-reports/internal/client"
	"github.com/oksasatya/civic-reports/internal/domain/entity"
)

// fakeAPI keeps a server-side list, newest first.
type fakeAPI struct {
	server  []entity.Report
	seq     int
	fail    error
	lists   int
	created []client.NewReport
}

func (f *fakeAPI) ListProblems(context.Context) ([]entity.Report, error) {
	f.lists++
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]entity.Report{}, f.server...), nil
}

func (f *fakeAPI) CreateProblem(_ context.Context, in client.NewReport) (*entity.Report, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.seq++
	f.created = append(f.created, in)
	r := entity.Report{
		ID:         strconv.Itoa(f.seq),
		Title:      in.Title,
		Category:   entity.Category(in.Category),
		ReportedBy: in.ReportedBy,
		Timestamp:  time.Unix(int64(f.seq), 0).UTC(),
	}
	f.server = append([]entity.Report{r}, f.server...)
	return &r, nil
}

func (f *fakeAPI) DeleteProblem(_ context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	kept := f.server[:0]
	for _, r := range f.server {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.server = kept
	return nil
}

func seeded() *fakeAPI {
	return &fakeAPI{seq: 2, server: []entity.Report{
		{ID: "2", Title: "Outage", Category: entity.CategoryUtility, ReportedBy: "Bob"},
		{ID: "1", Title: "Pothole", Category: entity.CategoryRoadways, ReportedBy: "Ann"},
	}}
}

func ids(reports []entity.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestLoadKeepsServerOrder(t *testing.T) {
	api := seeded()
	f := New(api)
	assert.False(t, f.Loaded())

	require.NoError(t, f.Load(context.Background()))
	assert.True(t, f.Loaded())
	assert.Equal(t, []string{"2", "1"}, ids(f.Reports()))
}

func TestSubmitPrependsWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	api := seeded()
	f := New(api)
	require.NoError(t, f.Load(ctx))

	created, err := f.Submit(ctx, client.NewReport{Title: "Stray dog", Category: "animal"})
	require.NoError(t, err)
	assert.Equal(t, "3", created.ID)
	assert.Equal(t, []string{"3", "2", "1"}, ids(f.Reports()))
	assert.Equal(t, 1, api.lists)
}

func TestRemoveFiltersWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	api := seeded()
	f := New(api)
	require.NoError(t, f.Load(ctx))

	require.NoError(t, f.Remove(ctx, "2"))
	assert.Equal(t, []string{"1"}, ids(f.Reports()))
	assert.Equal(t, 1, api.lists)

	// removing an id that is not in the list is fine
	require.NoError(t, f.Remove(ctx, "99"))
	assert.Equal(t, []string{"1"}, ids(f.Reports()))
}

func TestFailuresLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()
	api := seeded()
	f := New(api)
	require.NoError(t, f.Load(ctx))
	before := f.Reports()

	boom := errors.New("network down")
	api.fail = boom

	_, err := f.Submit(ctx, client.NewReport{Title: "x"})
	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, MsgSubmitFailed, ferr.Message)
	assert.ErrorIs(t, err, boom)

	err = f.Remove(ctx, "1")
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, MsgDeleteFailed, ferr.Message)

	err = f.Load(ctx)
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, MsgLoadFailed, ferr.Message)

	assert.Equal(t, before, f.Reports())
}

func TestAuthoritativeSyncRefetches(t *testing.T) {
	ctx := context.Background()
	api := seeded()
	f := New(api, WithAuthoritativeSync())
	require.NoError(t, f.Load(ctx))

	// another session adds a report the local feed has not seen
	_, err := api.CreateProblem(ctx, client.NewReport{Title: "elsewhere"})
	require.NoError(t, err)

	_, err = f.Submit(ctx, client.NewReport{Title: "mine"})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(f.Reports()))

	require.NoError(t, f.Remove(ctx, "3"))
	assert.Equal(t, []string{"4", "2", "1"}, ids(f.Reports()))
	assert.Equal(t, 3, api.lists)
}

func TestFilter(t *testing.T) {
	f := New(seeded())
	require.NoError(t, f.Load(context.Background()))

	assert.Equal(t, []string{"1"}, ids(f.Filter(entity.CategoryRoadways)))
	assert.Empty(t, f.Filter(entity.CategorySanitation))
	assert.Equal(t, []string{"2", "1"}, ids(f.Filter("")))
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name       string
		reportedBy string
		viewer     string
		want       bool
	}{
		{name: "self marker", reportedBy: "You", viewer: "", want: true},
		{name: "same name", reportedBy: "Ann", viewer: "Ann", want: true},
		{name: "other name", reportedBy: "Bob", viewer: "Ann", want: false},
		{name: "anonymous viewer", reportedBy: "Anonymous User", viewer: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(entity.Report{ReportedBy: tt.reportedBy}, tt.viewer))
		})
	}
}

func TestDraftBuild(t *testing.T) {
	in, err := Draft{Category: entity.CategoryUtility, Description: " Power line down ", Location: "Main St"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "Utility/Power Issue", in.Title)
	assert.Equal(t, "utility", in.Category)
	assert.Equal(t, "Power line down", in.Description)
	assert.Equal(t, SelfReporter, in.ReportedBy)

	in, err = Draft{Description: "d", Location: "l", ReportedBy: "Ann"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "Other Issue", in.Title)
	assert.Equal(t, "Ann", in.ReportedBy)

	_, err = Draft{Description: "d"}.Build()
	assert.ErrorIs(t, err, ErrDraftIncomplete)
}
