package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/WeBoost/aurora-backend/internal/errs"
	"github.com/WeBoost/aurora-backend/internal/logger"
)

// Function names the backend exposes. Their internals are opaque; this
// client only knows they take a JSON body and return JSON or an error
// payload.
const (
	FnGenerateContent = "generate-content"
	FnTravelTime      = "travel-time"
	FnWeather         = "weather"
	FnDeployWebsite   = "deploy-website"
	FnCreateIntent    = "create-payment-intent"
	FnConfirmIntent   = "confirm-payment-intent"
)

// Client invokes named server-side functions.
type Client interface {
	Invoke(ctx context.Context, name string, body any) (json.RawMessage, error)
}

type client struct {
	log     *logger.Logger
	http    *http.Client
	baseURL string
	token   string
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("FUNCTIONS_BASE_URL")), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing FUNCTIONS_BASE_URL")
	}
	return &client{
		log:     log.With("service", "FunctionsClient"),
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		token:   strings.TrimSpace(os.Getenv("FUNCTIONS_TOKEN")),
	}, nil
}

type errorPayload struct {
	Error string `json:"error"`
}

// Invoke POSTs the JSON body to <base>/<name>. Non-2xx responses and
// {"error": ...} payloads both surface as a FunctionError carrying the
// upstream message.
func (c *client) Invoke(ctx context.Context, name string, body any) (json.RawMessage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.InvalidArgumentf("function name required")
	}

	ctx, span := otel.Tracer("functions").Start(ctx, "functions.invoke",
		trace.WithAttributes(attribute.String("function.name", name)))
	defer span.End()

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, &errs.FunctionError{Name: name, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+name, bytes.NewReader(raw))
	if err != nil {
		return nil, &errs.FunctionError{Name: name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.FunctionError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, &errs.FunctionError{Name: name, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		var payload errorPayload
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		c.log.Warn("function invocation failed", "function", name, "status", resp.StatusCode)
		return nil, &errs.FunctionError{Name: name, Message: fmt.Sprintf("status %d: %s", resp.StatusCode, msg)}
	}

	var payload errorPayload
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return nil, &errs.FunctionError{Name: name, Message: payload.Error}
	}
	return json.RawMessage(data), nil
}
