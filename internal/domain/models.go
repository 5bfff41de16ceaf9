package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// JobID is an opaque job identifier. Numeric and string ids keep their
// original JSON form when echoed back to the scoring service.
type JobID struct {
	value   string
	numeric bool
}

// NewJobID wraps a string identifier
func NewJobID(s string) JobID {
	return JobID{value: s}
}

// NumericJobID wraps a numeric identifier
func NumericJobID(n int64) JobID {
	return JobID{value: strconv.FormatInt(n, 10), numeric: true}
}

// ParseJobID interprets user input: digits become numeric ids when numeric is true
func ParseJobID(s string, numeric bool) JobID {
	if numeric {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return JobID{value: s, numeric: true}
		}
	}
	return NewJobID(s)
}

func (id JobID) String() string { return id.value }

// IsZero reports whether the id is unset
func (id JobID) IsZero() bool { return id.value == "" }

// Numeric reports whether the id was a JSON number
func (id JobID) Numeric() bool { return id.numeric }

func (id JobID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *JobID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = JobID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = JobID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	*id = JobID{value: n.String(), numeric: true}
	return nil
}

// Job is an open position. Immutable once fetched.
type Job struct {
	ID           JobID  `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// UserID identifies a candidate profile
type UserID string

// User is the current visitor as known to the profile service
type User struct {
	ID UserID `json:"id"`
	// Skills holds whatever structured profile data the service returns.
	Skills json.RawMessage `json:"skills,omitempty"`
}

// HasSkills reports whether the user has a stored resume profile. Only an
// absent, null or empty-string skills field counts as missing; empty objects
// and lists are still a stored profile.
func (u *User) HasSkills() bool {
	if u == nil {
		return false
	}
	s := bytes.TrimSpace(u.Skills)
	switch {
	case len(s) == 0:
		return false
	case bytes.Equal(s, []byte("null")), bytes.Equal(s, []byte(`""`)):
		return false
	}
	return true
}

// ResumeFile is a resume selected for upload
type ResumeFile struct {
	Name string
	Data []byte
}

// Empty reports whether there is nothing to upload
func (f *ResumeFile) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// SubmissionResult is the outcome of a successful application
type SubmissionResult struct {
	JobID  JobID
	UserID UserID
	Score  float64
}

// Percent renders the score the way it is reported to the visitor, e.g. 82.0%
func (r SubmissionResult) Percent() string {
	return fmt.Sprintf("%.1f%%", r.Score*100)
}

// ApplicationRecord is a past application as stored by the scoring service
type ApplicationRecord struct {
	ID         string
	JobID      JobID
	UserID     UserID
	Score      float64
	JobTitle   string
	JobCompany string
}

// Percent renders the score like SubmissionResult.Percent
func (r ApplicationRecord) Percent() string {
	return SubmissionResult{Score: r.Score}.Percent()
}
