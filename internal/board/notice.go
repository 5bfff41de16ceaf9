package board

import (
	"github.com/honeycarbs/jobboard/internal/domain"
)

// NoticeKind classifies a notice
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "success"
	}
	return "failure"
}

// Notice is a transient message for the visitor
type Notice struct {
	Kind      NoticeKind
	Message   string
	Hint      string
	JobID     domain.JobID
	AttemptID string
}

func successNotice(a *Attempt, res domain.SubmissionResult) Notice {
	return Notice{
		Kind:      NoticeSuccess,
		Message:   "Application submitted! Match score: " + res.Percent(),
		JobID:     a.JobID,
		AttemptID: a.ID,
	}
}

func failureNotice(a *Attempt, err error) Notice {
	msg := "Application failed: " + err.Error()
	switch {
	case domain.IsUploadError(err):
		msg = "Resume upload failed: " + causeOf(err)
	case domain.IsScoringError(err):
		msg = "Application scoring failed: " + causeOf(err)
	}
	return Notice{
		Kind:      NoticeFailure,
		Message:   msg,
		Hint:      domain.Hint(err),
		JobID:     a.JobID,
		AttemptID: a.ID,
	}
}

func causeOf(err error) string {
	if s := domain.SubmissionCause(err); s != nil {
		return s.Error()
	}
	return err.Error()
}
