package main

import (
	"os"
	"path/filepath"
	"testing"
)

const testRecord = `{
  "name": "Jane Doe",
  "title": "Data Engineer",
  "contact": {"email": "jane@example.com", "phone": "555-0100"},
  "professional_summary": ["Built AWS data pipelines in Python"],
  "technical_skills": {"Languages": ["Python", "SQL"], "Cloud": ["AWS"]},
  "experience": [
    {"role": "Data Engineer", "client": "Acme", "duration": "Jan 2021 - Present",
     "responsibilities": ["Migrated ETL to AWS Glue"], "environment": ["AWS", "Python"]}
  ],
  "education": [{"degree": "B.S.", "field": "Computer Science", "institution": "State University", "year": "2018"}]
}`

// getBinaryPath returns the path to the resumegen binary for testing
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "resumegen")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resumegen ./cmd/resumegen'", binaryPath)
	}

	abs, err := filepath.Abs(binaryPath)
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	return abs
}

// writeFile writes content into dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
