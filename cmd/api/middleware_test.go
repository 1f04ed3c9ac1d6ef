package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carloabimanyu/bookshelf-api/internal/config"
)

func TestRateLimit(t *testing.T) {
	ta := newTestApp(t, func(c *config.Config) {
		c.Limiter = config.LimiterConfig{Enabled: true, RPS: 0.001, Burst: 2}
	})

	for i := 0; i < 2; i++ {
		if status, _ := ta.do(t, http.MethodGet, "/books", ""); status != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, status, http.StatusOK)
		}
	}

	status, resp := ta.do(t, http.MethodGet, "/books", "")
	if status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", status, http.StatusTooManyRequests)
	}
	if resp.Status != "fail" {
		t.Errorf("status field = %q, want fail", resp.Status)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	ta := newTestApp(t, func(c *config.Config) {
		c.Limiter = config.LimiterConfig{Enabled: true, RPS: 0.001, Burst: 1}
	})

	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()

		ta.handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", addr, w.Code, http.StatusOK)
		}
	}
}

func TestRecoverPanic(t *testing.T) {
	ta := newTestApp(t, nil)

	handler := ta.app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if w.Header().Get("Connection") != "close" {
		t.Errorf("Connection = %q, want close", w.Header().Get("Connection"))
	}
	if !strings.Contains(w.Body.String(), `"fail"`) {
		t.Errorf("body = %s, want fail envelope", w.Body.String())
	}
}

func TestLogRequest(t *testing.T) {
	var buf bytes.Buffer
	ta := newTestApp(t, nil)
	ta.app.logger = slog.New(slog.NewTextHandler(&buf, nil))

	handler := ta.app.logRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "{}")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/abc", nil))

	out := buf.String()
	for _, want := range []string{"method=GET", "path=/books/abc", "status=418"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestDefaultConfigDoesNotThrottle(t *testing.T) {
	app := newApplication(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := app.routes()

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestPanicIsLogged(t *testing.T) {
	var buf bytes.Buffer
	ta := newTestApp(t, nil)
	ta.app.logger = slog.New(slog.NewTextHandler(&buf, nil))

	handler := ta.app.withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	out := buf.String()
	for _, want := range []string{"msg=boom", "msg=request", "status=500"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
