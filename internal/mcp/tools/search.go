package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// JobCatalog is the listing searched by job_search
type JobCatalog interface {
	Load(ctx context.Context) error
	Filter(query string) []domain.Job
}

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive text matched against title, company and description"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of jobs to return"`
}

// JobSummary is one job in a search result
type JobSummary struct {
	ID           string `json:"id" jsonschema:"Job identifier to pass to job_apply"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

// JobSearchResult is the structured response of job_search
type JobSearchResult struct {
	Jobs  []JobSummary `json:"jobs"`
	Total int          `json:"total" jsonschema:"Number of matches before the limit"`
}

type jobSearchTool struct {
	catalog JobCatalog
	logger  *logging.Logger
}

// WithJobSearch registers the job_search tool
func WithJobSearch(catalog JobCatalog) Option {
	return func(reg *registry) {
		handler := jobSearchTool{catalog: catalog, logger: reg.add("job_search")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search the open job listing by title, company or description",
		}, handler.handle)
	}
}

func (t jobSearchTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &JobSearchParams{}
	}

	if err := t.catalog.Load(ctx); err != nil {
		t.logger.Error("job_search: listing unavailable", "err", err)
		return nil, nil, fmt.Errorf("job listing unavailable: %w", err)
	}

	jobs := t.catalog.Filter(params.Query)
	result := JobSearchResult{Total: len(jobs), Jobs: make([]JobSummary, 0, len(jobs))}
	if params.Limit > 0 && len(jobs) > params.Limit {
		jobs = jobs[:params.Limit]
	}
	for _, j := range jobs {
		result.Jobs = append(result.Jobs, summarize(j))
	}

	t.logger.Info("job_search completed", "query", params.Query, "matches", result.Total)
	return textResult(formatSearch(params.Query, result)), result, nil
}

func summarize(j domain.Job) JobSummary {
	return JobSummary{
		ID:           j.ID.String(),
		Title:        j.Title,
		Company:      j.Company,
		Description:  j.Description,
		Requirements: j.Requirements,
	}
}

func formatSearch(query string, result JobSearchResult) string {
	if result.Total == 0 {
		return fmt.Sprintf("[job_search] No jobs match %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[job_search] %d job(s) found", result.Total)
	if len(result.Jobs) < result.Total {
		fmt.Fprintf(&sb, ", showing %d", len(result.Jobs))
	}
	sb.WriteString("\n")
	for _, j := range result.Jobs {
		fmt.Fprintf(&sb, "\n- [%s] %s at %s", j.ID, j.Title, j.Company)
	}
	return sb.String()
}
