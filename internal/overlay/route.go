package overlay

// Target is a clickable region of the overlay
type Target int

const (
	TargetBackdrop Target = iota
	TargetCloseButton
	TargetContent
	TargetUseExisting
	TargetUpload
)

func (t Target) String() string {
	switch t {
	case TargetBackdrop:
		return "backdrop"
	case TargetCloseButton:
		return "close"
	case TargetContent:
		return "content"
	case TargetUseExisting:
		return "existing"
	case TargetUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// ParseTarget maps a command word to a Target
func ParseTarget(s string) (Target, bool) {
	for t := TargetBackdrop; t <= TargetUpload; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Action is what a click resolves to
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionApplyExisting
	ActionUpload
)

// Route resolves a click. Clicks on the content are contained and never
// reach the outside-click handler.
func Route(t Target) Action {
	switch t {
	case TargetBackdrop, TargetCloseButton:
		return ActionClose
	case TargetUseExisting:
		return ActionApplyExisting
	case TargetUpload:
		return ActionUpload
	default:
		return ActionNone
	}
}
