package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ning0612/Photostamp/internal/adapter/local"
	"github.com/Ning0612/Photostamp/internal/config"
	"github.com/Ning0612/Photostamp/internal/core/offset"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/lock"
	"github.com/Ning0612/Photostamp/internal/logger"
	"github.com/Ning0612/Photostamp/internal/progress"
	"github.com/Ning0612/Photostamp/internal/service"
	"github.com/Ning0612/Photostamp/internal/state"
)

// Exit codes
const (
	ExitOK           = 0
	ExitError        = 1
	ExitOffsetFormat = 100
)

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// app carries the state shared by the commands of one invocation
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg           *config.Config
	loggerStarted bool
}

// Execute runs photostamp with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if a.loggerStarted {
		if shutdownErr := logger.Shutdown(); shutdownErr != nil {
			fmt.Fprintf(stderr, "Error: failed to close logger: %v\n", shutdownErr)
		}
	}

	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var formatErr *offset.FormatError
	if errors.As(err, &formatErr) {
		fmt.Fprintf(a.stderr, "error parsing time format %s\n", formatErr.Value)
		return ExitOffsetFormat
	}

	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return ExitError
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photostamp [flags] FILE...",
		Short: "Prefix files with their timestamp",
		Long: `photostamp renames each file to <timestamp>_<original name>, where the
timestamp (YYYYMMDD_HHMMSS, local time) comes from the file's creation time,
or its modification time with --mtime, shifted by --time-diff.`,
		Version:           Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRename,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default: photostamp.yaml in ., user config dir)")
	pf.BoolP("verbose", "v", false, "log progress to stderr")
	pf.String("log-file", "", "write logs to a rotating file")
	pf.String("journal", "", "sqlite journal of performed renames (enables undo)")

	f := cmd.Flags()
	f.StringP("time-diff", "t", "", "time offset [+-]SECONDS or [+-][HH:]MM:SS added to each timestamp")
	f.BoolP("dryrun", "n", false, "print renames without performing them")
	f.BoolP("mtime", "m", false, "use modification time instead of creation time")

	cmd.AddCommand(a.newHistoryCmd(), a.newUndoCmd())
	return cmd
}

// setup loads configuration layered with flags and starts logging when asked
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadWithFlags(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.LoggingEnabled() {
		if err := logger.Init(cfg.LoggerConfig(a.stderr)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.loggerStarted = true
	}

	logger.Get().Debug("configuration loaded",
		"command", cmd.Name(),
		"time_diff", cfg.TimeDiff,
		"mtime", cfg.MTime,
		"dryrun", cfg.DryRun,
		"journal", cfg.JournalPath(),
	)
	return nil
}

func (a *app) runRename(cmd *cobra.Command, args []string) error {
	cfg := a.cfg

	secs, err := cfg.OffsetSeconds()
	if err != nil {
		return err
	}

	opts := domain.RenameOptions{
		OffsetSeconds: secs,
		Source:        cfg.TimeSource(),
		DryRun:        cfg.DryRun,
	}

	svc, err := service.NewRenameService(local.New(), opts)
	if err != nil {
		return err
	}
	svc.SetProgressReporter(a.reporter())

	if path := cfg.JournalPath(); path != "" && !cfg.DryRun && len(args) > 0 {
		journal, l, err := openJournal(path)
		if err != nil {
			return err
		}
		defer journal.Close()
		svc.SetJournal(journal, l)
	}

	_, err = svc.Run(cmd.Context(), args)
	return err
}

// reporter prints the console lines, plus progress logs in verbose mode
func (a *app) reporter() progress.Reporter {
	console := progress.NewConsoleReporter(a.stdout, a.stderr)
	if a.cfg == nil || !a.cfg.Logging.Verbose {
		return console
	}
	return progress.MultiReporter{console, progress.NewCallbackReporter(logProgress)}
}

func logProgress(u progress.Update) {
	counter := progress.FormatProgress(u.FilesCompleted, u.FilesTotal)
	switch u.Type {
	case progress.UpdatePlanned:
		logger.Get().Debug(counter+" renaming", "path", u.Path, "target", u.Target)
	case progress.UpdateComplete:
		logger.Get().Debug(counter+" done", "path", u.Path, "result", u.Kind)
	case progress.UpdateError:
		logger.Get().Warn(counter+" failed", "path", u.Path, "result", u.Kind, "error", u.Error, "failures", u.Failures)
	}
}

// openJournal opens the journal database and its lock
func openJournal(path string) (*state.Manager, *lock.FileLock, error) {
	l, err := lock.ForJournal(path)
	if err != nil {
		return nil, nil, err
	}
	journal, err := state.NewManager(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return journal, l, nil
}
