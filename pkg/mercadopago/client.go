package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lumenfoto/studio-backend/pkg/config"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
)

const (
	preferencesPath  = "/checkout/preferences"
	opPreference     = "create_preference"
	maxErrorBodySize = 64 << 10
)

var (
	ErrAccessTokenRequired = errors.New("mercadopago access token is required")
	errLoggerRequired      = errors.New("mercadopago logger is required")
)

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadopago responded %d: %s", e.StatusCode, e.Message)
}

// Client calls the checkout preferences API. The access token is supplied per
// call because it may come from configuration or from the caller.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *logger.Logger
	metrics *metrics.ProviderMetrics
}

// NewClient builds the provider client; m may be nil.
func NewClient(cfg config.MercadoPagoConfig, logg *logger.Logger, m *metrics.ProviderMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("mercadopago base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logg,
		metrics: m,
	}, nil
}

// CreatePreference registers a checkout preference. Provider rejections come
// back as *APIError wrapped in a typed error; transport failures as DEPENDENCY_ERROR.
func (c *Client) CreatePreference(ctx context.Context, accessToken string, pref Preference) (*PreferenceResult, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfiguration, ErrAccessTokenRequired, "payment provider credentials are not configured")
	}

	body, err := json.Marshal(toWire(pref))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode preference")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+preferencesPath, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build preference request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if pref.ExternalReference != "" {
		req.Header.Set("X-Idempotency-Key", pref.ExternalReference)
	}

	c.log(ctx, "request", opPreference, map[string]any{
		"items":              len(pref.Items),
		"external_reference": pref.ExternalReference,
		"access_token":       accessToken,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(opPreference, 0)
		c.log(ctx, "error", opPreference, map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mercadopago create preference failed")
	}
	defer resp.Body.Close()
	c.metrics.Observe(opPreference, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(resp)}
		c.log(ctx, "error", opPreference, map[string]any{"error": apiErr.Error(), "status": resp.StatusCode})
		return nil, pkgerrors.Wrap(domainCodeForStatus(resp.StatusCode), apiErr, "mercadopago create preference failed")
	}

	var result PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log(ctx, "error", opPreference, map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode mercadopago preference")
	}
	c.log(ctx, "response", opPreference, map[string]any{"preference_id": result.ID, "status": resp.StatusCode})
	return &result, nil
}

// extractMessage pulls the most specific human-readable message from an error body.
func extractMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil && len(raw) > 0 {
		var body apiErrorBody
		if json.Unmarshal(raw, &body) == nil {
			switch {
			case strings.TrimSpace(body.Message) != "":
				return body.Message
			case len(body.Cause) > 0 && body.Cause[0].Description != "":
				return body.Cause[0].Description
			case strings.TrimSpace(body.Error) != "":
				return body.Error
			}
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "payment provider error"
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = redact(k, v)
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("mercadopago %s", op), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("mercadopago %s", phase))
	}
}

func redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, sensitive := range []string{"token", "secret", "email", "phone", "cpf"} {
		if strings.Contains(lower, sensitive) {
			return "[REDACTED]"
		}
	}
	return value
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
