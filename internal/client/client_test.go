package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/client"
	"github.com/oksasatya/civic-reports/internal/container"
	"github.com/oksasatya/civic-reports/internal/feed"
	"github.com/oksasatya/civic-reports/internal/infrastructure/memory"
	"github.com/oksasatya/civic-reports/internal/router"
	"github.com/oksasatya/civic-reports/pkg/helpers"
)

func newServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(container.Reset)

	cfg := config.Load()
	cfg.KVBackend = config.BackendMemory
	cfg.AnonKeySecret = "client-test"
	cfg.RateLimitEnabled = false
	cfg.APIBasePath = "/functions/v1"
	logger, _ := test.NewNullLogger()
	keys := helpers.NewAnonKeyManager(cfg.AnonKeySecret, cfg.AppName)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetKVStore(memory.NewKVStore())
	container.SetAnonKeys(keys)

	engine, err := router.NewEngine()
	require.NoError(t, err)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	key, err := keys.Mint(0)
	require.NoError(t, err)
	return srv, key
}

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()
	srv, key := newServer(t)
	c := client.New(srv.URL+"/functions/v1/", key, 5*time.Second)

	user, err := c.SignUp(ctx, client.SignUp{Name: "Ann", Email: "ann@example.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = c.SignUp(ctx, client.SignUp{Name: "Ann", Email: "ann@example.com", Password: "pw1"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)

	_, err = c.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, client.ErrUnsuccessful)

	created, err := c.CreateProblem(ctx, client.NewReport{
		Title: "Pothole", Description: "Large pothole", Category: "roadways", Location: "Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous User", created.ReportedBy)

	list, err := c.ListProblems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.True(t, created.Timestamp.Equal(list[0].Timestamp))

	loc, resolved, err := c.ReverseGeocode(ctx, 40.7128, -74.006)
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Equal(t, "40.712800, -74.006000", loc)

	_, err = c.UploadMedia(ctx, "a.png", bytes.NewReader([]byte("\x89PNG\r\n\x1a\n")))
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)

	require.NoError(t, c.DeleteProblem(ctx, created.ID))
	list, err = c.ListProblems(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClientRejectsMissingKey(t *testing.T) {
	srv, _ := newServer(t)
	c := client.New(srv.URL+"/functions/v1", "", time.Second)

	_, err := c.ListProblems(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, "k", time.Second).ListProblems(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestFeedOverHTTP(t *testing.T) {
	ctx := context.Background()
	srv, key := newServer(t)
	f := feed.New(client.New(srv.URL+"/functions/v1", key, 5*time.Second))

	require.NoError(t, f.Load(ctx))
	assert.Empty(t, f.Reports())

	in, err := feed.Draft{Category: "sanitation", Description: "Overflowing bin", Location: "Park Ave"}.Build()
	require.NoError(t, err)
	created, err := f.Submit(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Sanitation Issue", created.Title)
	assert.True(t, feed.CanDelete(*created, ""))

	require.NoError(t, f.Remove(ctx, created.ID))
	assert.Empty(t, f.Reports())

	require.NoError(t, f.Refresh(ctx))
	assert.Empty(t, f.Reports())
}
