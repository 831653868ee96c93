package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// errNoAPIKey is returned by commands that cannot run without a model
var errNoAPIKey = errors.New("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")

// runtime holds what every command needs after flag parsing
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup loads configuration, applies the global flags and builds the logger
func setup() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKeyFlag != "" {
		cfg.LLM.APIKey = apiKeyFlag
	}
	if verbose {
		cfg.Logging.Debug = true
	}
	if jsonLogs {
		cfg.Logging.JSON = true
	}

	logger, err := observability.NewLogger(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

// close flushes the logger
func (rt *runtime) close() {
	_ = rt.logger.Sync()
}

// modelClient returns the rate-limited, circuit-broken model client, or nil
// when no API key is configured and required is false.
func (rt *runtime) modelClient(ctx context.Context, required bool) (llm.Client, error) {
	if rt.cfg.LLM.APIKey == "" {
		if required {
			return nil, errNoAPIKey
		}
		rt.logger.Info("no API key configured, using rule-based paths only")
		return nil, nil
	}

	settings := rt.cfg.LLMSettings()
	inner, err := llm.NewClient(ctx, settings, rt.cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.NewResilientClient(inner, settings, rt.logger), nil
}

// extractionModel narrows client to the generator used for extraction,
// honoring extraction.use_llm
func (rt *runtime) extractionModel(client llm.Client) llm.Generator {
	if client == nil || !rt.cfg.Extraction.UseLLM {
		return nil
	}
	return client
}

// closeClient releases client when one was created
func closeClient(client llm.Client) {
	if client != nil {
		_ = client.Close()
	}
}

// readJSON decodes the JSON file at path into v
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty or "-"
func writeJSON(out io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" || path == "-" {
		_, err = out.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// loadResume reads and schema-checks a résumé JSON file
func loadResume(path string) (*types.ResumeData, error) {
	var resume types.ResumeData
	if err := readJSON(path, &resume); err != nil {
		return nil, err
	}
	if err := schemas.ValidateDocument(schemas.KindResume, &resume); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &resume, nil
}

// loadJD reads and schema-checks a job description JSON file
func loadJD(path string) (*types.JobDescription, error) {
	var jd types.JobDescription
	if err := readJSON(path, &jd); err != nil {
		return nil, err
	}
	jd.Normalize()
	if err := schemas.ValidateDocument(schemas.KindJobDescription, &jd); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &jd, nil
}

// loadSuggestion reads a suggestions file and picks the suggestion with id.
// id may be empty when the file holds exactly one suggestion.
func loadSuggestion(path, id string) (*types.SuggestionSet, int, error) {
	var set types.SuggestionSet
	if err := readJSON(path, &set); err != nil {
		return nil, 0, err
	}
	if id == "" {
		if len(set.Suggestions) != 1 {
			return nil, 0, fmt.Errorf("%s holds %d suggestions, --id is required", path, len(set.Suggestions))
		}
		return &set, 0, nil
	}
	for i := range set.Suggestions {
		if set.Suggestions[i].ID == id {
			return &set, i, nil
		}
	}
	return nil, 0, fmt.Errorf("suggestion %s not found in %s", id, path)
}

// printIssues reports extraction issues on stderr
func printIssues(issues types.Issues) {
	for _, issue := range issues {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", issue)
	}
}
