package functions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WeBoost/aurora-backend/internal/errs"
	"github.com/WeBoost/aurora-backend/internal/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return &client{
		log:     log,
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: srv.URL,
		token:   "test-token",
	}
}

func TestInvokeReturnsPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path: want=/weather got=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization header: got %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature": -3.5, "condition": "snow"}`))
	})

	raw, err := c.Invoke(context.Background(), FnWeather, map[string]any{"lat": 64.1, "lon": -21.9})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	var out struct {
		Condition string `json:"condition"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Condition != "snow" {
		t.Fatalf("condition: want=snow got=%s", out.Condition)
	}
}

func TestInvokeMapsErrorPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "model unavailable"}`))
	})

	_, err := c.Invoke(context.Background(), FnGenerateContent, map[string]any{})
	if err == nil {
		t.Fatal("expected error")
	}
	var fnErr *errs.FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("want FunctionError, got %T: %v", err, err)
	}
	if fnErr.Message != "model unavailable" {
		t.Fatalf("message: want=%q got=%q", "model unavailable", fnErr.Message)
	}
}

func TestInvokeMapsNon2xx(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "boom"}`, http.StatusBadGateway)
	})

	_, err := c.Invoke(context.Background(), FnDeployWebsite, nil)
	var fnErr *errs.FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("want FunctionError, got %T: %v", err, err)
	}
}

func TestInvokeRejectsEmptyName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued")
	})
	_, err := c.Invoke(context.Background(), "  ", nil)
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}
