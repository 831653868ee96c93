package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process with args and returns stdout, stderr and the error
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeFixture writes v as JSON (or a string verbatim) into dir/name
func writeFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var data []byte
	if s, ok := v.(string); ok {
		data = []byte(s)
	} else {
		var err error
		data, err = json.Marshal(v)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

const resumeFixture = `{
  "personal_info": {"name": "Jane Doe", "email": "jane@example.com"},
  "summary": "Backend engineer building payment systems",
  "experience": [
    {"company": "Acme", "title": "Engineer", "bullets": [{"text": "Built payment APIs in Go"}]}
  ],
  "education": [],
  "skills": ["Go", "SQL"]
}`

const jdFixture = `{
  "role_title": "Senior Engineer",
  "company": "Initech",
  "required_skills": ["Go", "AWS"],
  "preferred_skills": ["Terraform"],
  "keywords": ["payments", "Go"],
  "raw_text": "Senior Engineer at Initech. Go and AWS required. Terraform is a plus."
}`

// fixtures writes the résumé and job description into a temp dir
func fixtures(t *testing.T) (dir, resumePath, jdPath string) {
	t.Helper()
	dir = t.TempDir()
	return dir, writeFixture(t, dir, "resume.json", resumeFixture), writeFixture(t, dir, "jd.json", jdFixture)
}
