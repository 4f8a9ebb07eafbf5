package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"
	"plusverify/internal/observability"
	"plusverify/internal/orchestrator"
	"plusverify/internal/subject"
	"plusverify/pkg/models"
)

// Run executes a verification run
func Run(request *models.CheckRequest) error {
	orch := orchestrator.New()

	cfg, err := orch.LoadConfiguration(request)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	orch.SetLogger(logger)

	if _, err := orch.Verify(cfg); err != nil {
		if !orchestrator.IsMismatch(err) {
			logger.Error("verification failed", zap.Error(err))
		}
		return err
	}

	return nil
}

// ListSubjects writes the built-in subjects as a table
func ListSubjects(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBOUND\tDESCRIPTION")
	for _, s := range subject.All() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Bound, s.Description)
	}
	return tw.Flush()
}
