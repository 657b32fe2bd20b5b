package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"habitforge/internal/bootstrap"
	entrydomain "habitforge/internal/modules/entry/domain"
	entrydto "habitforge/internal/modules/entry/dto"
	"habitforge/internal/platform/config"
	"habitforge/internal/platform/dates"
	"habitforge/internal/ui/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "habitforge",
		Short:         "Track how each day went and watch your streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding habitforge.db and config.yaml")

	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newShowCmd(&dataDir))
	root.AddCommand(newListCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newDistributionCmd(&dataDir))
	root.AddCommand(newTagsCmd())
	root.AddCommand(newWhoAmICmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".habitforge"
	}
	return filepath.Join(home, ".habitforge")
}

func loadApp(dataDir string, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logOut)
}

func newLogCmd(dataDir *string) *cobra.Command {
	var category, note string
	var tags []string
	var learned bool

	cmd := &cobra.Command{
		Use:   "log <YYYY-MM-DD|today>",
		Short: "Record how a day went; replaces any entry for that day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			date := args[0]
			if strings.EqualFold(date, "today") {
				date = dates.Today(time.Now())
			}
			out, err := app.EntryCLI.Log(context.Background(), date, category, note, tags, learned)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s %s\n", out.Entry.Date, label(out.Entry))
			if out.Sync == string(entrydomain.SyncFailed) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: kept locally but not synced: %s\n", out.SyncError)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "type", "", "GREEN_INTENSE|GREEN_LIGHT|NEUTRAL|RED_LIGHT|RED_INTENSE or a label (Intense, Good, Rest, Slip, Failure)")
	cmd.Flags().StringVar(&note, "note", "", "free-text note")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags, comma separated")
	cmd.Flags().BoolVar(&learned, "learned", false, "learned something today")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newShowCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <YYYY-MM-DD>",
		Short: "Show one day's entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			entry, err := app.EntryCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "date: %s\n", entry.Date)
			_, _ = fmt.Fprintf(w, "type: %s\n", label(entry))
			_, _ = fmt.Fprintf(w, "note: %s\n", entry.Note)
			_, _ = fmt.Fprintf(w, "tags: %s\n", strings.Join(entry.Tags, ", "))
			_, _ = fmt.Fprintf(w, "learned: %t\n", entry.LearnedSomething)
			return nil
		},
	}
}

func newListCmd(dataDir *string) *cobra.Command {
	var month string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			var entries []entrydto.EntryOutput
			if month != "" {
				t, parseErr := time.ParseInLocation("2006-01", month, time.Local)
				if parseErr != nil {
					return fmt.Errorf("--month must be YYYY-MM: %w", parseErr)
				}
				entries, err = app.EntryCLI.Month(context.Background(), t.Year(), t.Month())
			} else {
				entries, err = app.EntryCLI.List(context.Background())
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			for _, entry := range entries {
				line := fmt.Sprintf("%s  %s", entry.Date, label(entry))
				if len(entry.Tags) > 0 {
					line += "  [" + strings.Join(entry.Tags, ", ") + "]"
				}
				if entry.Note != "" {
					line += "  " + entry.Note
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show score, streaks and positive-day percentage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			stats, err := app.ProgressCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "score: %d\n", stats.TotalScore)
			_, _ = fmt.Fprintf(w, "current streak: %d\n", stats.CurrentStreak)
			_, _ = fmt.Fprintf(w, "longest streak: %d\n", stats.LongestStreak)
			_, _ = fmt.Fprintf(w, "positive days: %d%%\n", stats.PositiveDayPercentage)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDistributionCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Count entries per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			slices, err := app.ProgressCLI.Distribution(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), slices)
			}
			if len(slices) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			for _, slice := range slices {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", theme.Swatch(slice.Color).Render(slice.Label), slice.Count)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List preset tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, tag := range entrydomain.PresetTags {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newWhoAmICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active backend and installation identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			session := app.EntryCLI.WhoAmI(context.Background())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backend: %s\n", session.Mode)
			if session.UserID != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "identity: %s\n", session.UserID)
			}
			return nil
		},
	}
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the habitforge dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := os.MkdirAll(*dataDir, 0o755); err != nil {
				return err
			}
			// The alt screen owns stdout/stderr, so logs go to a file.
			logFile, err := os.OpenFile(filepath.Join(*dataDir, "habitforge.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			app, err := loadApp(*dataDir, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newServeCmd(dataDir *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if addr == "" {
				addr = app.Config.Server.Addr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bootstrap.Serve(ctx, app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	return cmd
}

func label(entry entrydto.EntryOutput) string {
	return theme.Swatch(entry.Color).Render(entry.Label)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
