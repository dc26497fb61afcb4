package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ning0612/Photostamp/internal/core/offset"
	"github.com/Ning0612/Photostamp/internal/domain"
	"github.com/Ning0612/Photostamp/internal/service"
)

// Output formats for history
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var (
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled rename runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case OutputText, OutputYAML, OutputJSON:
			default:
				return fmt.Errorf("unknown output format %q (want text, yaml or json)", output)
			}

			path := a.cfg.JournalPath()
			if path == "" {
				return domain.ErrJournalDisabled
			}

			journal, _, err := openJournal(path)
			if err != nil {
				return err
			}
			defer journal.Close()

			history, err := service.History(journal, limit)
			if err != nil {
				return err
			}

			return writeHistory(a.stdout, history, output)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	cmd.Flags().StringVarP(&output, "output", "o", OutputText, "output format: text, yaml or json")
	return cmd
}

func writeHistory(w io.Writer, history []service.RunHistory, format string) error {
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(history); err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		return enc.Close()
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	if len(history) == 0 {
		fmt.Fprintln(w, "no journaled runs")
		return nil
	}

	for _, run := range history {
		fmt.Fprintf(w, "#%d  %s  %-7s  renamed=%d failed=%d  offset=%s source=%s\n",
			run.ID,
			run.Started.Local().Format("2006-01-02 15:04:05"),
			run.Status,
			run.Renamed,
			run.Failed,
			offset.Format(run.Offset),
			run.TimeSource,
		)
		for _, r := range run.Renames {
			line := fmt.Sprintf("    %s -> %s", r.OldPath, filepath.Base(r.NewPath))
			switch {
			case r.Undone:
				line += "  (undone)"
			case r.Skipped != "":
				line += "  (undo skipped: " + r.Skipped + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}
