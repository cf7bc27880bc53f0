package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VisitRecorder stores page views.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, ip, userAgent, path string) error
}

var untrackedPrefixes = []string{
	"/static/",
	"/api/",
	"/favicon",
	"/privacy",
}

// Trackable reports whether a request counts as a page view. Only GETs of
// page routes are counted, and Do Not Track is honoured.
func Trackable(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("DNT") == "1" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

// TrackVisits records page views in the background so the response is never
// held up by the database.
func TrackVisits(rec VisitRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Trackable(c.Request) {
			c.Next()
			return
		}

		ip, ua, path := c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path
		go func() {
			if err := rec.RecordVisit(context.Background(), ip, ua, path); err != nil {
				logger.Warn("error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// RunCleanup deletes expired rows now and then every interval until ctx is
// done.
func (s *Store) RunCleanup(ctx context.Context, retention, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := s.Cleanup(ctx, retention)
		switch {
		case err != nil:
			logger.Warn("error cleaning up old visitor data", zap.Error(err))
		case n > 0:
			logger.Info("privacy cleanup removed expired rows", zap.Int64("rows", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
