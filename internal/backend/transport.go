package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"casa_arbol_gateway/internal/session"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every backend call; a blown deadline surfaces as a
// transport error, never as a hang.
const DefaultTimeout = 30 * time.Second

const orgHeader = "X-Organization-Id"

// Client is the typed resource client for the membership backend. Its only
// job is to turn a typed call into one HTTP request and the response into a
// typed value or an *APIError. It holds no cache, performs no retries and
// mutates no shared state; the cache coordinator owns those concerns.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds client configuration.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// RequestsPerSecond throttles outbound calls. Zero means no limit.
	RequestsPerSecond float64
	Burst             int
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend: BaseURL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RequestsPerSecond) + 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// operation describes one backend operation. useOrg is explicit per
// operation; when in doubt an operation is declared org-scoped (fail safe).
type operation struct {
	name   string
	method string
	path   string // template with {param} placeholders
	auth   bool   // requires an access token
	useOrg bool   // requires the organization header
}

// do executes op and decodes the JSON response into out (when non-nil).
// Cancelling ctx aborts the in-flight HTTP request.
func (c *Client) do(ctx context.Context, op operation, pathParams map[string]string, query url.Values, body io.Reader, contentType string, out any) error {
	sc := session.FromContext(ctx)

	// Fail fast before any network I/O when auth context is missing.
	if op.auth {
		if sc == nil || sc.Token() == "" {
			return newAuthError(http.StatusUnauthorized, "operation "+op.name+" requires an authenticated session")
		}
	}
	var orgID string
	if op.useOrg {
		if sc != nil {
			orgID = sc.OrganizationID()
		}
		if orgID == "" {
			return newAuthError(http.StatusForbidden, "operation "+op.name+" requires an active organization")
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newTransportError("rate limiter wait: "+err.Error(), true, err)
		}
	}

	reqURL := c.baseURL + expandPath(op.path, pathParams)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, op.method, reqURL, body)
	if err != nil {
		return newTransportError("create request: "+err.Error(), false, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if op.auth {
		req.Header.Set("Authorization", "Bearer "+sc.Token())
	}
	if op.useOrg {
		req.Header.Set(orgHeader, orgID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		canceled := errors.Is(err, context.Canceled)
		msg := "request failed: " + err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return newTransportError(msg, canceled, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError("read response: "+err.Error(), errors.Is(err, context.Canceled), err)
	}

	if resp.StatusCode >= 400 {
		return classifyStatus(op, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return newTransportError("decode response: "+err.Error(), false, err)
		}
	}
	return nil
}

// classifyStatus maps an error response onto the taxonomy. The backend's
// "detail" field is sometimes a string and sometimes a list of field errors,
// so it is read leniently.
func classifyStatus(op operation, status int, body []byte) *APIError {
	detail := gjson.GetBytes(body, "detail")

	message := detail.String()
	if detail.IsArray() || message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusUnprocessableEntity:
		apiErr := &APIError{Kind: KindValidation, StatusCode: status, Message: "validation failed"}
		if detail.IsArray() {
			for _, d := range detail.Array() {
				fe := FieldError{
					Msg:  d.Get("msg").String(),
					Type: d.Get("type").String(),
				}
				for _, loc := range d.Get("loc").Array() {
					fe.Loc = append(fe.Loc, loc.String())
				}
				apiErr.Details = append(apiErr.Details, fe)
			}
		} else if detail.String() != "" {
			apiErr.Message = detail.String()
		}
		return apiErr
	case http.StatusUnauthorized, http.StatusForbidden:
		return &APIError{Kind: KindAuth, StatusCode: status, Message: message}
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: status, Message: message}
	case http.StatusBadRequest, http.StatusConflict:
		// Domain conflicts carry actionable messages, rendered verbatim.
		return &APIError{Kind: KindConflict, StatusCode: status, Message: message}
	default:
		return &APIError{
			Kind:       KindTransport,
			StatusCode: status,
			Message:    fmt.Sprintf("%s returned status %d", op.name, status),
		}
	}
}

func expandPath(template string, params map[string]string) string {
	path := template
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	return path
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, newTransportError("marshal request body: "+err.Error(), false, err)
	}
	return strings.NewReader(string(data)), nil
}
