package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

// GraphReader runs read-only work against the job graph
type GraphReader interface {
	Read(ctx context.Context, fn neo4j.ManagedTransactionWork) (any, error)
}

// GraphToolParams defines the arguments for the graph_tool tool
type GraphToolParams struct {
	Cypher string         `json:"cypher,omitempty" jsonschema:"Read-only Cypher query to run"`
	JobID  string         `json:"job_id,omitempty" jsonschema:"Show one job with its company"`
	Params map[string]any `json:"params,omitempty" jsonschema:"Query parameters for cypher"`
}

const (
	graphJobQuery = `
		MATCH (j:Job {id: $jobId})
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		RETURN j, c
	`
	graphOverviewQuery = "MATCH (n) RETURN labels(n) AS labels, count(n) AS count ORDER BY count DESC LIMIT 20"
)

type graphToolHandler struct {
	reader GraphReader
	logger *logging.Logger
}

// WithGraphTool registers graph_tool. Queries run in read transactions.
func WithGraphTool(reader GraphReader) Option {
	return func(reg *registry) {
		handler := graphToolHandler{reader: reader, logger: reg.add("graph_tool")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "graph_tool",
			Description: "Inspect the Neo4j job graph with read-only Cypher",
		}, handler.handle)
	}
}

func (h graphToolHandler) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *GraphToolParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &GraphToolParams{}
	}

	query, args := graphOverviewQuery, map[string]any(nil)
	switch {
	case params.Cypher != "":
		query, args = params.Cypher, params.Params
	case params.JobID != "":
		query, args = graphJobQuery, map[string]any{"jobId": params.JobID}
	}

	out, err := h.reader.Read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, args)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		h.logger.Warn("graph_tool query failed", "err", err)
		return nil, nil, fmt.Errorf("query execution failed: %w", err)
	}

	records, _ := out.([]*neo4j.Record)
	return textResult(formatRecords(records)), nil, nil
}

func formatRecords(records []*neo4j.Record) string {
	if len(records) == 0 {
		return "Query executed successfully but returned no rows"
	}

	var sb strings.Builder
	sb.WriteString("Results:\n")
	for i, record := range records {
		fmt.Fprintf(&sb, "Row %d:\n", i+1)
		for j, key := range record.Keys {
			fmt.Fprintf(&sb, "  %s: %s\n", key, formatValue(record.Values[j]))
		}
	}
	return sb.String()
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case neo4j.Node:
		props, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Node%v %s", v.Labels, props)
	case neo4j.Relationship:
		props, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Relationship[%s] %s", v.Type, props)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
