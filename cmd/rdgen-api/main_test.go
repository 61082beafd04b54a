package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmrzaf/rdgen/internal/logging"
)

func TestLoggingMiddleware_LevelsByStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, `"level":"info"`},
		{http.StatusNotFound, `"level":"warn"`},
		{http.StatusInternalServerError, `"level":"error"`},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		h := loggingMiddleware(logging.NewLoggerWithWriter("debug", &buf), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))

		out := buf.String()
		if !strings.Contains(out, tc.level) || !strings.Contains(out, `"path":"/api/v1/runs"`) {
			t.Fatalf("status %d: unexpected log %s", tc.status, out)
		}
	}
}

func TestLoggingMiddleware_CountsBytes(t *testing.T) {
	var buf bytes.Buffer
	h := loggingMiddleware(logging.NewLoggerWithWriter("info", &buf), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/fields", nil))
	if !strings.Contains(buf.String(), `"bytes":5`) || !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("unexpected log line %s", buf.String())
	}
}
