package jobboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// NewUserHint asks the intake service to create a fresh user for the resume
const NewUserHint = "new"

// ErrUserNotFound is returned by GetUser on 404
var ErrUserNotFound = errors.New("jobboard: user not found")

// Config defines job board API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client talks to the job listing, resume intake, scoring and user services
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Job is a listing record as served by GET /jobs/
type Job struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
}

// User is a profile record as served by GET /users/{id}
type User struct {
	ID         string          `json:"id"`
	Skills     json.RawMessage `json:"skills,omitempty"`
	Experience string          `json:"experience,omitempty"`
	Education  string          `json:"education,omitempty"`
}

// Resume is a file to send to the intake service
type Resume struct {
	Filename string
	Content  []byte
	// UserHint is an existing user id or NewUserHint
	UserHint string
}

// UploadResult is the intake service response
type UploadResult struct {
	ResolvedUserID string `json:"resolvedUserId"`
}

// ApplicationRequest is the body of POST /applications/
type ApplicationRequest struct {
	UserID string          `json:"userId"`
	JobID  json.RawMessage `json:"jobId"`
}

// ApplicationResult is the scoring service response
type ApplicationResult struct {
	ID     string  `json:"id,omitempty"`
	UserID string  `json:"user_id,omitempty"`
	Score  float64 `json:"score"`
}

// Application is a stored application as served by GET /applications/{userId},
// joined with the job it was made for
type Application struct {
	ID              string          `json:"id"`
	JobID           json.RawMessage `json:"job_id"`
	UserID          string          `json:"user_id"`
	Score           float64         `json:"score"`
	JobTitle        string          `json:"job_title"`
	JobCompany      string          `json:"job_company"`
	JobDescription  string          `json:"job_description"`
	JobRequirements string          `json:"job_requirements"`
}

type apiError struct {
	Detail any `json:"detail"`
}
