package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transfer-admin/internal/config"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefresher(t *testing.T, url string) ports.ICacheRefresher {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)
	return New(config.Cacheconfig{RefreshURL: url, Timeout: time.Second}, log)
}

func TestRefresh_PostsToConfiguredURL(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	r := newRefresher(t, srv.URL)
	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestRefresh_NonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	r := newRefresher(t, srv.URL)
	assert.Error(t, r.Refresh(context.Background()))
}

func TestRefresh_DisabledWithoutURL(t *testing.T) {
	r := newRefresher(t, "")
	assert.NoError(t, r.Refresh(context.Background()))
}
