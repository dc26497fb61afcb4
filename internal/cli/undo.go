package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ning0612/Photostamp/internal/adapter/local"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/logger"
	"github.com/Ning0612/Photostamp/internal/service"
)

func (a *app) newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the last journaled run",
		Long: `undo renames the files of the most recent journaled run back to their
original names, newest first. Files that no longer exist or whose content
changed since the rename are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.JournalPath()
			if path == "" {
				return domain.ErrJournalDisabled
			}

			journal, l, err := openJournal(path)
			if err != nil {
				return err
			}
			defer journal.Close()

			svc, err := service.NewUndoService(local.New(), journal, l)
			if err != nil {
				return err
			}
			svc.SetProgressReporter(a.reporter())

			runID, summary, err := svc.Undo(cmd.Context(), a.cfg.DryRun)
			if errors.Is(err, domain.ErrJournalEmpty) {
				fmt.Fprintln(a.stderr, "nothing to undo")
				return nil
			}
			if err != nil {
				return err
			}

			logger.Get().Info("undo finished",
				"run", runID,
				"reverted", summary.Count(domain.ResultRenamed),
				"skipped", summary.Failures(),
			)
			return nil
		},
	}

	cmd.Flags().BoolP("dryrun", "n", false, "print what would be reverted without renaming")
	return cmd
}
