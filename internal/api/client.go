package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Ensure Client covers both service surfaces.
var _ model.AuthService = (*Client)(nil)
var _ model.JobService = (*Client)(nil)

// Client is a thin HTTP client over the tracker API. Before each request it
// reads the current token from the session store and attaches it as a bearer
// credential; when no token is stored the request goes out unauthenticated.
// Every call is a single attempt, no retry: the caller decides what a failure
// means.
type Client struct {
	baseURL string
	http    *http.Client
	session model.SessionStore
}

// NewClient creates a client rooted at baseURL (no trailing slash).
func NewClient(baseURL string, httpClient *http.Client, session model.SessionStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		session: session,
	}
}

// authRequest is the body of both /auth endpoints.
type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the success body of both /auth endpoints.
type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, authRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: resp.Token, Email: resp.Email}, nil
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, email, password string) (model.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, authRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: resp.Token, Email: resp.Email}, nil
}

// ListJobs fetches the job list filtered server-side. status is "all" or one
// of the pipeline stages; search matches title/company. Both parameters are
// always sent, empty or not, so the server applies the authoritative filter.
func (c *Client) ListJobs(ctx context.Context, status, search string) ([]model.Job, error) {
	q := url.Values{}
	q.Set("status", status)
	q.Set("search", search)

	var jobs []model.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", q, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob adds a new record from the draft.
func (c *Client) CreateJob(ctx context.Context, d model.Draft) (model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, d, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// UpdateJob replaces the record's editable fields with the draft.
func (c *Client) UpdateJob(ctx context.Context, id string, d model.Draft) (model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), nil, d, &job); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// DeleteJob removes the record. The server answers 200 or 204 on success.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, nil)
}

// do performs one request against path, attaching the stored bearer token
// when present, and decodes a 2xx body into out (out may be nil). Non-2xx
// responses come back as *model.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.session != nil {
		// A store read failure is treated the same as an absent token: the
		// request goes out unauthenticated and the server's 401 drives the
		// rest.
		if sess, err := c.session.Load(); err == nil && sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// apiError derives an APIError from a non-2xx response, preferring the
// body's "message" field when the server sent one.
func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		_ = json.Unmarshal(data, &body)
	}
	return &model.APIError{StatusCode: resp.StatusCode, Message: body.Message}
}
