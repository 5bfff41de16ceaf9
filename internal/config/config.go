package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Job listing sources
const (
	SourceHTTP  = "http"
	SourceNeo4j = "neo4j"
)

// Config contains runtime settings for the job board client
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	API      struct {
		BaseURL string
		Timeout time.Duration
	} // job board services
	UserID    string
	JobSource string
	Neo4j     struct {
		URI      string
		Username string
		Password string
		Database string
	}
	SheetsCredsPath string
}

// LoadDotenv reads variables from the given files (".env" when none) without
// overriding the environment. Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  "info",
		Host:      "0.0.0.0",
		Port:      "8080",
		JobSource: SourceHTTP,
	}
	cfg.API.BaseURL = "http://localhost:8000"
	cfg.API.Timeout = 30 * time.Second

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("JOBBOARD_API_URL"); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}

	var problems []string

	if v := os.Getenv("JOBBOARD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("JOBBOARD_TIMEOUT: invalid duration %q", v))
		} else {
			cfg.API.Timeout = d
		}
	}

	cfg.UserID = os.Getenv("JOBBOARD_USER_ID")
	cfg.SheetsCredsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	if v := os.Getenv("JOB_SOURCE"); v != "" {
		cfg.JobSource = strings.ToLower(v)
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	var missingVars []string

	switch cfg.JobSource {
	case SourceHTTP:
	case SourceNeo4j:
		missingVars = append(missingVars, cfg.missingNeo4j()...)
	default:
		problems = append(problems, fmt.Sprintf("JOB_SOURCE: unknown source %q (want %s or %s)", cfg.JobSource, SourceHTTP, SourceNeo4j))
	}

	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// RequireNeo4j reports the Neo4j variables still missing for commands that
// talk to the graph store regardless of JOB_SOURCE
func (c Config) RequireNeo4j() error {
	if missing := c.missingNeo4j(); len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequireSheets reports whether Sheets export is configured
func (c Config) RequireSheets() error {
	if c.SheetsCredsPath == "" {
		return fmt.Errorf("missing required environment variables: GOOGLE_SHEETS_CREDENTIALS_PATH")
	}
	return nil
}

func (c Config) missingNeo4j() []string {
	var missingVars []string

	if c.Neo4j.URI == "" {
		missingVars = append(missingVars, "NEO4J_URI")
	}

	if c.Neo4j.Username == "" {
		missingVars = append(missingVars, "NEO4J_USERNAME")
	}

	if c.Neo4j.Password == "" {
		missingVars = append(missingVars, "NEO4J_PASSWORD")
	}

	return missingVars
}
