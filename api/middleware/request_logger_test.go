// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/nfthub/log"
)

func newBufferLogger() (log.Logger, *bytes.Buffer) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(log.LevelTrace)
	return log.NewLogger(log.LogfmtHandlerWithLevel(&buf, &level)), &buf
}

func respond(status int, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(delay)
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = w.Write([]byte("{}"))
	}
}

func TestRequestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		enabled   bool
		slow      time.Duration
		log5xx    bool
		wantCode  int
		wantLevel string
	}{
		{"enabled", respond(http.StatusOK, 0), true, 0, false, http.StatusOK, "info"},
		{"disabled", respond(http.StatusOK, 0), false, 0, false, http.StatusOK, ""},
		{"slow", respond(http.StatusOK, 15*time.Millisecond), false, 5 * time.Millisecond, false, http.StatusOK, "info"},
		{"fast", respond(http.StatusOK, 0), false, time.Second, false, http.StatusOK, ""},
		{"internal error", respond(http.StatusInternalServerError, 0), false, 0, true, http.StatusInternalServerError, "warn"},
		{"unavailable", respond(http.StatusServiceUnavailable, 0), false, 0, true, http.StatusServiceUnavailable, "warn"},
		{"5xx not logged", respond(http.StatusInternalServerError, 0), false, 0, false, http.StatusInternalServerError, ""},
		{"revert", respond(http.StatusBadRequest, 0), false, 0, true, http.StatusBadRequest, ""},
		{"implicit 200", respond(0, 0), false, 0, true, http.StatusOK, ""},
		{"slow failure", respond(http.StatusInternalServerError, 15*time.Millisecond), false, 5 * time.Millisecond, true, http.StatusInternalServerError, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(logger, &enabled, tt.slow, tt.log5xx)(tt.handler)

			req := httptest.NewRequest(http.MethodPost, "/hub/delegate", strings.NewReader("alice"))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

			out := buf.String()
			if tt.wantLevel == "" {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, "lvl="+tt.wantLevel)
			assert.Contains(t, out, "RequestID="+rr.Header().Get(RequestIDHeader))
			assert.Contains(t, out, "URI=/hub/delegate")
			assert.Contains(t, out, "Method=POST")
			assert.Contains(t, out, "Body=alice")
			assert.Contains(t, out, "Timestamp=")
		})
	}
}

func TestRequestIDIsKept(t *testing.T) {
	logger, _ := newBufferLogger()
	var enabled atomic.Bool
	handler := RequestLoggerMiddleware(logger, &enabled, 0, false)(respond(http.StatusOK, 0))

	req := httptest.NewRequest(http.MethodGet, "/hub/config", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get(RequestIDHeader))
}
