package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"plusverify/internal/checker"
	"plusverify/internal/orchestrator"
	"plusverify/pkg/models"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().Int("trials", 100000, "")
	cmd.Flags().Uint64("seed", 0, "")
	cmd.Flags().String("subject", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("pushgateway", "", "")
	cmd.Flags().String("target", "", "")
	return cmd
}

func TestBuildRequestFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    map[string]string
		expected *models.CheckRequest
		wantErr  bool
	}{
		{
			name:     "no flags",
			expected: &models.CheckRequest{Trials: 100000},
		},
		{
			name: "explicit trials and seed",
			flags: map[string]string{
				"trials": "0",
				"seed":   "123",
			},
			expected: &models.CheckRequest{
				Trials:    0,
				TrialsSet: true,
				Seed:      123,
				SeedSet:   true,
			},
		},
		{
			name: "subject and target",
			flags: map[string]string{
				"subject": " plus-wide ",
				"target":  "stdout",
			},
			expected: &models.CheckRequest{
				Trials:  100000,
				Subject: "plus-wide",
				Target:  "stdout",
			},
		},
		{
			name:    "negative trials",
			flags:   map[string]string{"trials": "-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCommand()

			for flag, value := range tt.flags {
				if err := cmd.Flags().Set(flag, value); err != nil {
					t.Fatalf("Failed to set flag %s: %v", flag, err)
				}
			}

			result, err := buildRequestFromFlags(cmd)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if *result != *tt.expected {
				t.Errorf("buildRequestFromFlags() = %+v, expected %+v", *result, *tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	mismatch := orchestrator.NewMismatchError("plus", 1, &checker.MismatchError{Expected: 3, Actual: 4})
	if got := exitCode(mismatch); got != exitMismatch {
		t.Errorf("exitCode(mismatch) = %d, want %d", got, exitMismatch)
	}
	if got := exitCode(errors.New("boom")); got != exitFailure {
		t.Errorf("exitCode(other) = %d, want %d", got, exitFailure)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(buf.String(), "plusverify version dev") {
		t.Errorf("Unexpected version output: %q", buf.String())
	}
}
