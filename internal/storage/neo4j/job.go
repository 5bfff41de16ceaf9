package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// JobRepository implements job.Repository with Neo4j
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

const listJobsQuery = `
	MATCH (j:Job)
	OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
	RETURN j, c.name AS company
	ORDER BY j.seq, j.id
`

const findJobsQuery = `
	MATCH (j:Job)
	WHERE j.id IN $ids
	OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
	RETURN j, c.name AS company
	ORDER BY j.seq, j.id
`

const upsertJobsQuery = `
	UNWIND $jobs AS job
	MERGE (j:Job {id: job.id})
	SET j.numericId = job.numericId,
	    j.seq = job.seq,
	    j.title = job.title,
	    j.description = job.description,
	    j.requirements = job.requirements
	WITH j, job
	MERGE (c:Company {name: job.company})
	MERGE (j)-[:POSTED_BY]->(c)
`

// ListJobs returns every job node in insertion order
func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.query(ctx, listJobsQuery, nil)
}

// FindByIDs loads jobs by ID
func (r *JobRepository) FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	return r.query(ctx, findJobsQuery, map[string]any{"ids": idStrings})
}

// UpsertJobs merges jobs into the graph, keeping listing order in j.seq
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	jobsData := make([]map[string]any, 0, len(jobs))
	for i, j := range jobs {
		jobsData = append(jobsData, map[string]any{
			"id":           j.ID.String(),
			"numericId":    j.ID.Numeric(),
			"seq":          int64(i),
			"title":        j.Title,
			"company":      j.Company,
			"description":  j.Description,
			"requirements": j.Requirements,
		})
	}

	_, err := r.client.Write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertJobsQuery, map[string]any{"jobs": jobsData})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: upsert jobs: %w", err)
	}
	return nil
}

func (r *JobRepository) query(ctx context.Context, cypher string, params map[string]any) ([]domain.Job, error) {
	out, err := r.client.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: query jobs: %w", err)
	}

	records, _ := out.([]*neo4j.Record)
	jobs := make([]domain.Job, 0, len(records))
	for _, record := range records {
		j, ok := jobFromRecord(record)
		if !ok {
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func jobFromRecord(record *neo4j.Record) (domain.Job, bool) {
	jobVal, ok := record.Get("j")
	if !ok {
		return domain.Job{}, false
	}
	jobNode, ok := jobVal.(neo4j.Node)
	if !ok {
		return domain.Job{}, false
	}

	props := jobNode.Props
	rawID, _ := props["id"].(string)
	if rawID == "" {
		return domain.Job{}, false
	}
	numeric, _ := props["numericId"].(bool)

	company, _ := record.Get("company")
	companyName, _ := company.(string)

	return domain.Job{
		ID:           domain.ParseJobID(rawID, numeric),
		Title:        stringProp(props, "title"),
		Company:      companyName,
		Description:  stringProp(props, "description"),
		Requirements: stringProp(props, "requirements"),
	}, true
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}
