// Package order submits composed orders to the restaurant backend over HTTP.
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"

	"github.com/jalmosquera/digitalletter/internal/domain"
)

// HTTPDoer is the transport the gateway submits requests through. Satisfied
// by pkg/httpclient.Client and pkg/httpclient.CircuitBreakerClient.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// RejectedError carries the field-level reasons the backend refused an
// order. The caller shows them next to the offending inputs.
type RejectedError struct {
	Fields map[string]string
}

func (e *RejectedError) Error() string {
	if len(e.Fields) == 0 {
		return "order rejected"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("order rejected: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", k, e.Fields[k])
	}
	return b.String()
}

// Unwrap maps a rejection to the invalid-input sentinel so callers get 400
// semantics without inspecting the concrete type.
func (e *RejectedError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Gateway creates orders on the restaurant backend.
type Gateway struct {
	client  HTTPDoer
	baseURL string
	auth    HeaderProvider
	logger  *slog.Logger
}

// NewGateway creates a new order gateway. baseURL is the backend API root
// without a trailing slash.
func NewGateway(client HTTPDoer, baseURL string, auth HeaderProvider, logger *slog.Logger) *Gateway {
	return &Gateway{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		logger:  logger,
	}
}

// Submit creates the order on the backend and returns it with the canonical
// id assigned. A 400 response becomes a *RejectedError with the backend's
// field messages; anything else that is not a 201 is a connectivity failure.
func (g *Gateway) Submit(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	url := g.baseURL + "/orders/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.auth != nil {
		g.auth.Apply(req)
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		g.logger.ErrorContext(ctx, "order submission failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Wrap(err, "submit order")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var created domain.Order
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return nil, fmt.Errorf("decode order response: %w", err)
		}
		g.logger.InfoContext(ctx, "order created",
			slog.Int64("order_id", created.ID),
		)
		return &created, nil

	case http.StatusBadRequest:
		return nil, g.rejection(ctx, resp.Body)

	default:
		g.logger.ErrorContext(ctx, "unexpected order response",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.ServiceUnavailable(
			fmt.Sprintf("order backend returned status %d", resp.StatusCode))
	}
}

// rejection flattens the backend's 400 body into field-keyed messages. The
// backend returns either {"field": ["msg", ...]} maps or nested objects for
// array fields; everything collapses to a dotted key and the first message.
func (g *Gateway) rejection(ctx context.Context, body io.Reader) error {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return &RejectedError{Fields: map[string]string{"detail": "order rejected"}}
	}

	fields := make(map[string]string)
	flattenRejection("", raw, fields)
	if len(fields) == 0 {
		fields["detail"] = "order rejected"
	}

	g.logger.WarnContext(ctx, "order rejected by backend",
		slog.Int("field_count", len(fields)),
	)

	return &RejectedError{Fields: fields}
}

func flattenRejection(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flattenRejection(joinKey(prefix, key), child, out)
		}
	case []any:
		for _, child := range v {
			if msg, ok := child.(string); ok {
				if _, seen := out[prefix]; !seen && prefix != "" {
					out[prefix] = msg
				}
				continue
			}
			flattenRejection(prefix, child, out)
		}
	case string:
		if prefix != "" {
			if _, seen := out[prefix]; !seen {
				out[prefix] = v
			}
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
