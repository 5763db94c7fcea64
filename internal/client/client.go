// Package client is the HTTP gateway to the research tracking API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/researchhub/researchhub-service/internal/record"
)

// APIError is the normalized error a failed request resolves to. The
// message comes from the response body when the server provides one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client calls the API with bearer-token auth and decodes raw records.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New builds a client over the default zero-timeout http.Client; a request
// hangs until the caller's context or an injected client cuts it off.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetCandidates(ctx context.Context) ([]record.RawCandidate, error) {
	var out []record.RawCandidate
	err := c.do(ctx, http.MethodGet, "/candidates", nil, &out)
	return out, err
}

func (c *Client) GetCandidate(ctx context.Context, id string) (record.RawCandidate, error) {
	var out record.RawCandidate
	err := c.do(ctx, http.MethodGet, "/candidates/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateCandidate(ctx context.Context, p record.RawCandidatePatch) (record.RawCandidate, error) {
	var out record.RawCandidate
	err := c.do(ctx, http.MethodPost, "/candidates", p, &out)
	return out, err
}

func (c *Client) UpdateCandidate(ctx context.Context, id string, p record.RawCandidatePatch) (record.RawCandidate, error) {
	var out record.RawCandidate
	err := c.do(ctx, http.MethodPut, "/candidates/"+id, p, &out)
	return out, err
}

func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/candidates/"+id, nil, nil)
}

func (c *Client) GetSessions(ctx context.Context) ([]record.RawSession, error) {
	var out []record.RawSession
	err := c.do(ctx, http.MethodGet, "/sessions", nil, &out)
	return out, err
}

func (c *Client) GetSession(ctx context.Context, id string) (record.RawSession, error) {
	var out record.RawSession
	err := c.do(ctx, http.MethodGet, "/sessions/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateSession(ctx context.Context, p record.RawSessionPatch) (record.RawSession, error) {
	var out record.RawSession
	err := c.do(ctx, http.MethodPost, "/sessions", p, &out)
	return out, err
}

func (c *Client) UpdateSession(ctx context.Context, id string, p record.RawSessionPatch) (record.RawSession, error) {
	var out record.RawSession
	err := c.do(ctx, http.MethodPut, "/sessions/"+id, p, &out)
	return out, err
}

func (c *Client) GetInsights(ctx context.Context) ([]record.RawInsight, error) {
	var out []record.RawInsight
	err := c.do(ctx, http.MethodGet, "/insights", nil, &out)
	return out, err
}

func (c *Client) CreateInsight(ctx context.Context, p record.RawInsightPatch) (record.RawInsight, error) {
	var out record.RawInsight
	err := c.do(ctx, http.MethodPost, "/insights", p, &out)
	return out, err
}

func (c *Client) UpdateInsight(ctx context.Context, id string, p record.RawInsightPatch) (record.RawInsight, error) {
	var out record.RawInsight
	err := c.do(ctx, http.MethodPut, "/insights/"+id, p, &out)
	return out, err
}

func (c *Client) GetRecordings(ctx context.Context) ([]record.RawRecording, error) {
	var out []record.RawRecording
	err := c.do(ctx, http.MethodGet, "/recordings", nil, &out)
	return out, err
}

func (c *Client) CreateRecording(ctx context.Context, p record.RawRecordingPatch) (record.RawRecording, error) {
	var out record.RawRecording
	err := c.do(ctx, http.MethodPost, "/recordings", p, &out)
	return out, err
}

func (c *Client) GetUsers(ctx context.Context) ([]record.RawUser, error) {
	var out []record.RawUser
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, p record.RawUserPatch) (record.RawUser, error) {
	var out record.RawUser
	err := c.do(ctx, http.MethodPost, "/users", p, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, p record.RawUserPatch) (record.RawUser, error) {
	var out record.RawUser
	err := c.do(ctx, http.MethodPut, "/users/"+id, p, &out)
	return out, err
}

func (c *Client) GetActivity(ctx context.Context) ([]record.RawActivity, error) {
	var out []record.RawActivity
	err := c.do(ctx, http.MethodGet, "/activity", nil, &out)
	return out, err
}

func (c *Client) GetDepartments(ctx context.Context) ([]record.RawDepartment, error) {
	var out []record.RawDepartment
	err := c.do(ctx, http.MethodGet, "/departments", nil, &out)
	return out, err
}

func (c *Client) GetTeams(ctx context.Context) ([]record.RawTeam, error) {
	var out []record.RawTeam
	err := c.do(ctx, http.MethodGet, "/teams", nil, &out)
	return out, err
}

func (c *Client) GetDashboardStats(ctx context.Context) (record.RawStats, error) {
	var out record.RawStats
	err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &out)
	return out, err
}

// do performs one request. Non-2xx responses are turned into an APIError
// with the message pulled from the body's error or message field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
