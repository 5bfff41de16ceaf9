// Package overlay derives the job detail overlay from the selection state.
//
// The overlay is a pure function of the selection, the current user and the
// submission guard. It never holds state of its own.
package overlay

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/selection"
)

const (
	// AcceptPDF is the only resume content type accepted for upload
	AcceptPDF = "application/pdf"
	// MaxResumeSize bounds resume uploads
	MaxResumeSize = 10 << 20
)

// Affordance is an action offered by the overlay
type Affordance struct {
	Label   string
	Accept  string
	Enabled bool
}

// View is what the overlay shows for one snapshot
type View struct {
	Visible bool
	Job     *domain.Job
	// UseExisting is nil when the user has no stored profile.
	UseExisting *Affordance
	Upload      *Affordance
	Busy        bool
}

// Derive builds the overlay view. The overlay is visible only while a job is
// being inspected; the existing-resume affordance exists only for a user with
// stored skills.
func Derive(sel selection.Snapshot, user *domain.User, busy bool) View {
	if !sel.Inspecting() {
		return View{}
	}

	v := View{
		Visible: true,
		Job:     sel.Job,
		Busy:    busy,
		Upload: &Affordance{
			Label:   "Upload new resume",
			Accept:  AcceptPDF,
			Enabled: !busy,
		},
	}
	if user.HasSkills() {
		v.UseExisting = &Affordance{
			Label:   "Use existing resume",
			Enabled: !busy,
		}
	}
	return v
}

// ValidateResume checks a selected file before anything is sent
func ValidateResume(file *domain.ResumeFile) error {
	if file.Empty() {
		return domain.ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		return &domain.ValidationError{Field: "resume", Reason: "only PDF files are accepted"}
	}
	if len(file.Data) > MaxResumeSize {
		return &domain.ValidationError{Field: "resume", Reason: "file exceeds 10 MiB"}
	}
	if mt := mimetype.Detect(file.Data); !mt.Is(AcceptPDF) {
		return &domain.ValidationError{Field: "resume", Reason: "file content is " + mt.String() + ", not PDF"}
	}
	return nil
}
