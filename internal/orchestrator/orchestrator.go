package orchestrator

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"plusverify/internal/checker"
	"plusverify/internal/config"
	"plusverify/internal/interfaces"
	"plusverify/internal/observability"
	"plusverify/internal/subject"
	"plusverify/pkg/models"
)

// Orchestrator coordinates configuration, the checker, metrics and reporting
type Orchestrator struct {
	configManager interfaces.ConfigManager
	reportWriter  interfaces.ReportWriter
	logger        *zap.Logger
	lookup        func(name string) (subject.Subject, error)
	seedSource    func() (uint64, error)
}

// New creates a new orchestrator with all required components
func New() *Orchestrator {
	return &Orchestrator{
		configManager: config.NewManager(),
		reportWriter:  NewReportWriter(),
		logger:        zap.NewNop(),
		lookup:        subject.Lookup,
		seedSource:    entropySeed,
	}
}

// SetLogger replaces the no-op logger used until configuration is known
func (o *Orchestrator) SetLogger(logger *zap.Logger) {
	if logger != nil {
		o.logger = logger
	}
}

// Summary describes the outcome of one verification run
type Summary struct {
	RunID    string
	Subject  string
	Seed     uint64
	Trials   int
	Duration time.Duration
	Passed   bool
	Mismatch *checker.MismatchError
	Metrics  *observability.RunMetrics
}

// String renders the one-line report written to the configured target
func (s *Summary) String() string {
	if s.Passed {
		return fmt.Sprintf("PASS subject=%s trials=%d seed=%d duration=%s run_id=%s",
			s.Subject, s.Trials, s.Seed, s.Duration, s.RunID)
	}
	m := s.Mismatch
	if m == nil {
		return fmt.Sprintf("FAIL subject=%s trials=%d seed=%d run_id=%s",
			s.Subject, s.Trials, s.Seed, s.RunID)
	}
	return fmt.Sprintf("FAIL subject=%s trial=%d a=%d b=%d expected=%d actual=%d seed=%d run_id=%s",
		s.Subject, m.Trial, m.A, m.B, m.Expected, m.Actual, s.Seed, s.RunID)
}

// LoadConfiguration loads and resolves configuration with precedence
func (o *Orchestrator) LoadConfiguration(request *models.CheckRequest) (*interfaces.Config, error) {
	if err := o.validateRequest(request); err != nil {
		return nil, err
	}

	o.applyRequestFlags(request)

	if _, err := o.configManager.Load(request.ConfigPath); err != nil {
		return nil, NewConfigurationError("failed to load configuration", err)
	}

	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, NewConfigurationError("failed to resolve configuration", err)
	}

	if err := o.configManager.Validate(cfg); err != nil {
		return nil, NewConfigurationError("invalid configuration", err)
	}

	return cfg, nil
}

// applyRequestFlags forwards explicitly given flags to the config manager
func (o *Orchestrator) applyRequestFlags(request *models.CheckRequest) {
	if request.TrialsSet {
		o.configManager.SetFlag("trials", request.Trials)
	}
	if request.SeedSet {
		o.configManager.SetFlag("seed", request.Seed)
	}
	if request.Subject != "" {
		o.configManager.SetFlag("subject", request.Subject)
	}
	if request.LogLevel != "" {
		o.configManager.SetFlag("log_level", request.LogLevel)
	}
	if request.PushgatewayURL != "" {
		o.configManager.SetFlag("pushgateway_url", request.PushgatewayURL)
	}
	if request.Target != "" {
		o.configManager.SetFlag("target", request.Target)
	}
}

// Verify runs the configured subject through the checker.
// A mismatch is returned as a *VerifyError of type ErrArithmeticMismatch
// alongside the summary describing it.
func (o *Orchestrator) Verify(cfg *interfaces.Config) (*Summary, error) {
	subj, err := o.lookup(cfg.Subject)
	if err != nil {
		validationErr := NewValidationError("subject", cfg.Subject, "not a registered subject")
		validationErr.Cause = err
		return nil, validationErr
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = o.seedSource(); err != nil {
			return nil, fmt.Errorf("failed to seed random source: %w", err)
		}
	}

	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run_id", runID), zap.String("subject", subj.Name))
	logger.Info("starting verification",
		zap.Int("trials", cfg.Trials),
		zap.Uint64("seed", seed),
		zap.Int64("bound", subj.Bound),
	)

	c := checker.New(
		checker.WithTrials(cfg.Trials),
		checker.WithBound(subj.Bound),
		checker.WithReference(subj.Reference),
	)
	rng := mrand.New(mrand.NewPCG(seed, seed))

	start := time.Now()
	result, runErr := c.Run(rng, subj.Func)
	elapsed := time.Since(start)

	var mismatch *checker.MismatchError
	if runErr != nil && !errors.As(runErr, &mismatch) {
		return nil, fmt.Errorf("checker failed: %w", runErr)
	}

	metrics := observability.NewRunMetrics(runID, subj.Name)
	metrics.Record(result.Trials, mismatch != nil, elapsed)
	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, cfg.JobName); err != nil {
			logger.Warn("failed to push metrics", zap.Error(err))
		} else {
			logger.Debug("pushed metrics", zap.String("pushgateway_url", cfg.PushgatewayURL))
		}
	}

	summary := &Summary{
		RunID:    runID,
		Subject:  subj.Name,
		Seed:     seed,
		Trials:   result.Trials,
		Duration: elapsed,
		Passed:   mismatch == nil,
		Mismatch: mismatch,
		Metrics:  metrics,
	}

	outputErr := o.WriteReport(summary, cfg.Target)

	if mismatch != nil {
		logger.Error("arithmetic mismatch",
			zap.Int("trial", mismatch.Trial),
			zap.Int64("a", mismatch.A),
			zap.Int64("b", mismatch.B),
			zap.Int64("expected", mismatch.Expected),
			zap.Int64("actual", mismatch.Actual),
			zap.Uint64("seed", seed),
		)
		if outputErr != nil {
			logger.Warn("failed to write report", zap.Error(outputErr))
		}
		return summary, NewMismatchError(subj.Name, seed, mismatch)
	}

	if outputErr != nil {
		return summary, outputErr
	}

	logger.Info("verification passed",
		zap.Int("trials", result.Trials),
		zap.Duration("duration", elapsed),
	)
	return summary, nil
}

// WriteReport writes the summary line to the configured target
func (o *Orchestrator) WriteReport(summary *Summary, target string) error {
	report := summary.String()

	switch target {
	case interfaces.TargetNone:
		return nil
	case interfaces.TargetStdout:
		if err := o.reportWriter.WriteToStdout(report); err != nil {
			return NewOutputError(target, err)
		}
	case interfaces.TargetStderr:
		if err := o.reportWriter.WriteToStderr(report); err != nil {
			return NewOutputError(target, err)
		}
	default:
		path, ok := interfaces.FilePath(target)
		if !ok {
			return NewValidationError("target", target, "must be 'stdout', 'stderr', or 'file:/path'")
		}
		if err := o.reportWriter.WriteToFile(report, path); err != nil {
			return NewOutputError(target, err)
		}
	}

	return nil
}

// validateRequest validates the check request
func (o *Orchestrator) validateRequest(request *models.CheckRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}

	if request.TrialsSet && request.Trials < 0 {
		return NewValidationError("trials", request.Trials, "must be zero or greater")
	}

	// An explicit config path must exist; only the default path may be missing
	if request.ConfigPath != "" {
		if _, err := os.Stat(request.ConfigPath); os.IsNotExist(err) {
			return NewValidationError("config_path", request.ConfigPath, "file does not exist")
		}
	}

	return nil
}

// entropySeed draws a non-zero seed from the operating system
func entropySeed() (uint64, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, err
		}
		if seed := binary.LittleEndian.Uint64(buf[:]); seed != 0 {
			return seed, nil
		}
	}
}
