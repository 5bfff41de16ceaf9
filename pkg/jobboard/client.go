package jobboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// NewClient instantiates a job board API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("jobboard: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// ListJobs fetches every open position in listing order
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("jobs")+"/", nil, &jobs); err != nil {
		return nil, fmt.Errorf("jobboard: list jobs: %w", err)
	}
	return jobs, nil
}

// GetUser loads a profile by id. A 404 yields ErrUserNotFound.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("jobboard: user id is required")
	}

	var u User
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("users", url.PathEscape(id)), nil, &u)
	if err != nil {
		return User{}, fmt.Errorf("jobboard: get user: %w", err)
	}
	return u, nil
}

// UploadResume sends a resume to the intake service and returns the resolved user id
func (c *Client) UploadResume(ctx context.Context, r Resume) (UploadResult, error) {
	if len(r.Content) == 0 {
		return UploadResult{}, fmt.Errorf("jobboard: resume content is empty")
	}
	hint := r.UserHint
	if hint == "" {
		hint = NewUserHint
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, path.Base(r.Filename)))
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	if err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: build upload: %w", err)
	}
	if _, err := part.Write(r.Content); err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: build upload: %w", err)
	}
	if err := mw.WriteField("user_id", hint); err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("resumes", "upload"), &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return UploadResult{}, fmt.Errorf("jobboard: upload resume: %w", err)
	}
	if out.ResolvedUserID == "" {
		return UploadResult{}, fmt.Errorf("jobboard: upload resume: response has no resolvedUserId")
	}
	return out, nil
}

// SubmitApplication asks the scoring service to score a user against a job
func (c *Client) SubmitApplication(ctx context.Context, in ApplicationRequest) (ApplicationResult, error) {
	if in.UserID == "" || len(in.JobID) == 0 {
		return ApplicationResult{}, fmt.Errorf("jobboard: userId and jobId are required")
	}

	var raw struct {
		ID     string   `json:"id"`
		UserID string   `json:"user_id"`
		Score  *float64 `json:"score"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("applications")+"/", in, &raw); err != nil {
		return ApplicationResult{}, fmt.Errorf("jobboard: submit application: %w", err)
	}
	if raw.Score == nil {
		return ApplicationResult{}, fmt.Errorf("jobboard: submit application: response has no score")
	}

	return ApplicationResult{ID: raw.ID, UserID: raw.UserID, Score: *raw.Score}, nil
}

// ListApplications returns every application the user has made, newest last
func (c *Client) ListApplications(ctx context.Context, userID string) ([]Application, error) {
	if userID == "" {
		return nil, fmt.Errorf("jobboard: user id is required")
	}

	var apps []Application
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("applications", url.PathEscape(userID)), nil, &apps); err != nil {
		return nil, fmt.Errorf("jobboard: list applications: %w", err)
	}
	return apps, nil
}

func (c *Client) endpoint(elem ...string) string {
	return c.baseURL + "/" + strings.Join(elem, "/")
}

func (c *Client) doJSON(ctx context.Context, method, u string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound && strings.Contains(req.URL.Path, "/users/") {
		return ErrUserNotFound
	}

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, errorDetail(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail prefers the "detail" field of JSON error bodies
func errorDetail(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != nil {
		if s, ok := e.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(e.Detail); err == nil {
			return string(b)
		}
	}
	return strings.TrimSpace(string(body))
}
