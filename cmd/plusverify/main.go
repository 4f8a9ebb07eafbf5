package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"plusverify/internal/app"
	"plusverify/internal/orchestrator"
	"plusverify/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

// Process exit codes
const (
	exitMismatch = 1
	exitFailure  = 2
)

var rootCmd = &cobra.Command{
	Use:   "plusverify",
	Short: "Randomized equality check for an addition primitive",
	Long: `plusverify draws random operand pairs, calls the function under test and
compares its result with native integer addition. The run stops at the first
disagreement.

By default 100000 trials are run with operands in [0, 1000000). Pass --seed to
replay a run; the seed of every run is logged.

Exit status is 0 when every trial agrees, 1 on an arithmetic mismatch and 2 on
any other failure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "plusverify version %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built: %s\n", date)
		fmt.Fprintf(out, "  go version: %s\n", goVersion)
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in subjects",
	Long:  "List the functions under test that can be selected with --subject.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ListSubjects(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/plusverify/config.toml)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Main command flags
	rootCmd.Flags().IntP("trials", "n", 100000, "number of trials to run")
	rootCmd.Flags().Uint64P("seed", "s", 0, "random seed (0 draws one from the OS)")
	rootCmd.Flags().String("subject", "", "function under test (see 'plusverify list')")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().String("pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	rootCmd.Flags().StringP("target", "t", "", "report target (stdout, stderr, file:/path)")
}

// buildRequestFromFlags constructs a CheckRequest from command flags
func buildRequestFromFlags(cmd *cobra.Command) (*models.CheckRequest, error) {
	request := models.NewCheckRequest()

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	// Numeric flags only override config when given explicitly
	if request.Trials, err = cmd.Flags().GetInt("trials"); err != nil {
		return nil, fmt.Errorf("invalid trials flag: %w", err)
	}
	request.TrialsSet = cmd.Flags().Changed("trials")

	if request.TrialsSet && request.Trials < 0 {
		return nil, fmt.Errorf("trials must be zero or greater, got %d", request.Trials)
	}

	if request.Seed, err = cmd.Flags().GetUint64("seed"); err != nil {
		return nil, fmt.Errorf("invalid seed flag: %w", err)
	}
	request.SeedSet = cmd.Flags().Changed("seed")

	if request.Subject, err = cmd.Flags().GetString("subject"); err != nil {
		return nil, fmt.Errorf("invalid subject flag: %w", err)
	}
	request.Subject = strings.TrimSpace(request.Subject)

	if request.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}

	if request.PushgatewayURL, err = cmd.Flags().GetString("pushgateway"); err != nil {
		return nil, fmt.Errorf("invalid pushgateway flag: %w", err)
	}

	if request.Target, err = cmd.Flags().GetString("target"); err != nil {
		return nil, fmt.Errorf("invalid target flag: %w", err)
	}

	return request, nil
}

// exitCode maps a run error to the process exit status
func exitCode(err error) int {
	if orchestrator.IsMismatch(err) {
		return exitMismatch
	}
	return exitFailure
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
