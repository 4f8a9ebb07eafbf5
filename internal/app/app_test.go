package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plusverify/internal/orchestrator"
	"plusverify/pkg/models"
)

func TestListSubjects(t *testing.T) {
	var buf bytes.Buffer
	if err := ListSubjects(&buf); err != nil {
		t.Fatalf("ListSubjects() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 subjects, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "plus ") || !strings.Contains(lines[1], "1000000") {
		t.Errorf("Unexpected first row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "plus-wide") {
		t.Errorf("Unexpected second row: %q", lines[2])
	}
}

func TestRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	reportPath := filepath.Join(t.TempDir(), "report.txt")

	request := &models.CheckRequest{
		Trials:    1000,
		TrialsSet: true,
		Seed:      7,
		SeedSet:   true,
		LogLevel:  "error",
		Target:    "file:" + reportPath,
	}
	if err := Run(request); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "PASS subject=plus trials=1000 seed=7") {
		t.Errorf("Unexpected report: %q", string(data))
	}
}

func TestRun_UnknownSubject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Run(&models.CheckRequest{Subject: "minus", LogLevel: "error"})
	if !errors.Is(err, orchestrator.ErrValidationFailed) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if orchestrator.IsMismatch(err) {
		t.Error("Unknown subject must not be reported as a mismatch")
	}
}
