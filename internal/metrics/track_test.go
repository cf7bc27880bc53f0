package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type visit struct {
	ip, ua, path string
}

type chanRecorder chan visit

func (c chanRecorder) RecordVisit(_ context.Context, ip, ua, path string) error {
	c <- visit{ip: ip, ua: ua, path: path}
	return nil
}

func TestTrackable(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
		dnt    string
		want   bool
	}{
		{name: "home page", method: http.MethodGet, path: "/", want: true},
		{name: "contact fragment", method: http.MethodGet, path: "/contact-form", want: true},
		{name: "static asset", method: http.MethodGet, path: "/static/site.css"},
		{name: "api", method: http.MethodGet, path: "/api/projects"},
		{name: "privacy page", method: http.MethodGet, path: "/privacy"},
		{name: "favicon", method: http.MethodGet, path: "/favicon.ico"},
		{name: "form post", method: http.MethodPost, path: "/contact"},
		{name: "do not track", method: http.MethodGet, path: "/", dnt: "1"},
		{name: "dnt zero", method: http.MethodGet, path: "/", dnt: "0", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.dnt != "" {
				r.Header.Set("DNT", tc.dnt)
			}
			assert.Equal(t, tc.want, Trackable(r))
		})
	}
}

func TestTrackVisits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := make(chanRecorder, 4)

	r := gin.New()
	r.Use(TrackVisits(rec, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/static/site.css", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "198.51.100.4:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	select {
	case v := <-rec:
		assert.Equal(t, visit{ip: "198.51.100.4", ua: "test-agent", path: "/"}, v)
	case <-time.After(2 * time.Second):
		t.Fatal("visit was not recorded")
	}

	select {
	case v := <-rec:
		t.Fatalf("unexpected visit recorded: %+v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

type failingRecorder struct{}

func (failingRecorder) RecordVisit(context.Context, string, string, string) error {
	return errors.New("disk full")
}

func TestTrackVisitsNeverFailsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TrackVisits(failingRecorder{}, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRunCleanupStopsOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunCleanup(ctx, time.Hour, time.Hour, zap.NewNop())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunCleanup did not return after cancel")
	}
}
