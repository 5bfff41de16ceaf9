package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// ApplicationHistory lists a user's past applications
type ApplicationHistory interface {
	ListApplications(ctx context.Context, user domain.UserID) ([]domain.ApplicationRecord, error)
}

// CurrentUser supplies the user to report on when the caller names none
type CurrentUser interface {
	User() *domain.User
}

// ApplicationHistoryParams defines the arguments for the application_history tool
type ApplicationHistoryParams struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User whose applications to list; defaults to the current user"`
}

// ApplicationSummary is one past application
type ApplicationSummary struct {
	ID      string  `json:"id"`
	JobID   string  `json:"job_id"`
	Title   string  `json:"title"`
	Company string  `json:"company"`
	Score   float64 `json:"score"`
	Percent string  `json:"percent"`
}

// ApplicationHistoryResult is the structured response of application_history
type ApplicationHistoryResult struct {
	UserID       string               `json:"user_id"`
	Applications []ApplicationSummary `json:"applications"`
}

type applicationHistoryTool struct {
	history ApplicationHistory
	current CurrentUser
	logger  *logging.Logger
}

// WithApplicationHistory registers the application_history tool. current may
// be nil, in which case user_id is required.
func WithApplicationHistory(history ApplicationHistory, current CurrentUser) Option {
	return func(reg *registry) {
		handler := applicationHistoryTool{history: history, current: current, logger: reg.add("application_history")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "application_history",
			Description: "List a user's past applications with their match scores",
		}, handler.handle)
	}
}

func (t applicationHistoryTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *ApplicationHistoryParams) (*sdkmcp.CallToolResult, any, error) {
	user := domain.UserID("")
	if params != nil {
		user = domain.UserID(params.UserID)
	}
	if user == "" && t.current != nil {
		if u := t.current.User(); u != nil {
			user = u.ID
		}
	}
	if user == "" {
		return nil, nil, fmt.Errorf("user_id is required when no user is signed in")
	}

	records, err := t.history.ListApplications(ctx, user)
	if err != nil {
		t.logger.Warn("application_history failed", "user_id", user, "err", err)
		return nil, nil, err
	}

	result := ApplicationHistoryResult{UserID: string(user), Applications: make([]ApplicationSummary, 0, len(records))}
	var b strings.Builder
	fmt.Fprintf(&b, "%d application(s) for %s", len(records), user)
	for _, r := range records {
		result.Applications = append(result.Applications, ApplicationSummary{
			ID:      r.ID,
			JobID:   r.JobID.String(),
			Title:   r.JobTitle,
			Company: r.JobCompany,
			Score:   r.Score,
			Percent: r.Percent(),
		})
		fmt.Fprintf(&b, "\n- %s at %s (job %s): %s", r.JobTitle, r.JobCompany, r.JobID, r.Percent())
	}

	return textResult(b.String()), result, nil
}
