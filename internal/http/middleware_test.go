package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/branch-roster/internal/application"
)

func TestRequireToken(t *testing.T) {
	t.Parallel()

	hash, err := application.CreateTokenHash("open-sesame", application.DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("passes matching bearer tokens through", func(t *testing.T) {
		t.Parallel()
		handler := RequireToken(hash, nil)(next)

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer open-sesame")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("rejects missing and wrong tokens", func(t *testing.T) {
		t.Parallel()
		handler := RequireToken(hash, nil)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("missing token: status = %d", rec.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("wrong token: status = %d", rec.Code)
		}
	})

	t.Run("empty hash disables the guard", func(t *testing.T) {
		t.Parallel()
		handler := RequireToken("", nil)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawContextLogger bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawContextLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	})

	handler := RequestLogger(logger)(next)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

	if !sawContextLogger {
		t.Error("request scoped logger not attached to context")
	}
	logged := buf.String()
	for _, want := range []string{"request started", "request completed", "request_id", `"path":"/employees"`} {
		if !bytes.Contains([]byte(logged), []byte(want)) {
			t.Errorf("log output missing %q: %s", want, logged)
		}
	}
}
