package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medcore-io/appointment-service/internal/observability"
	apperrors "github.com/medcore-io/appointment-service/pkg/util"
)

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)
	return app, metrics
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var parsed map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			t.Fatalf("decode body %q: %v", body, err)
		}
	}
	return res, parsed
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestErrorMiddleware_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.NewValidationError("bad input", nil), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not found", apperrors.NewNotFound("appointment", nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.NewConflict("slot taken", nil), http.StatusConflict, "CONFLICT"},
		{"forbidden", apperrors.NewForbidden("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", apperrors.NewUnauthorized("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			app.Get("/boom", func(c *fiber.Ctx) error { return tc.err })

			res, body := doRequest(t, app, http.MethodGet, "/boom")
			if res.StatusCode != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, res.StatusCode)
			}
			if code := errorCode(t, body); code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, code)
			}
		})
	}
}

func TestErrorMiddleware_GenericErrorIsInternal(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	res, body := doRequest(t, app, http.MethodGet, "/boom")
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	if code := errorCode(t, body); code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", code)
	}
}

func TestErrorMiddleware_FiberError(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusBadRequest, "malformed payload")
	})

	res, body := doRequest(t, app, http.MethodGet, "/boom")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if code := errorCode(t, body); code != "REQUEST_FAILED" {
		t.Fatalf("expected REQUEST_FAILED, got %s", code)
	}
}

func TestErrorMiddleware_PanicRecovery(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error { panic("unexpected") })

	res, body := doRequest(t, app, http.MethodGet, "/boom")
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", res.StatusCode)
	}
	if code := errorCode(t, body); code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %s", code)
	}
}

func TestRequestLogger_RecordsConvertedStatus(t *testing.T) {
	app, metrics := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("appointment", nil)
	})

	res, _ := doRequest(t, app, http.MethodGet, "/boom")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}

	requests, errs := metrics.Snapshot()
	if got := requests["/boom|GET|404"]; got != 1 {
		t.Fatalf("expected request counted with status 404, snapshot: %v", requests)
	}
	if got := errs["/boom|GET|NOT_FOUND"]; got != 1 {
		t.Fatalf("expected error counted, snapshot: %v", errs)
	}
}

func TestRateLimiter(t *testing.T) {
	app, _ := newTestApp(t)
	rl := NewRateLimiter(1, 2)
	app.Get("/limited", rl.Handle, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	for i := 0; i < 2; i++ {
		res, _ := doRequest(t, app, http.MethodGet, "/limited")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, res.StatusCode)
		}
	}
	res, body := doRequest(t, app, http.MethodGet, "/limited")
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", res.StatusCode)
	}
	if code := errorCode(t, body); code != "REQUEST_FAILED" {
		t.Fatalf("expected REQUEST_FAILED, got %s", code)
	}
}
