package cli

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chargefleet/chargefleet/internal/config"
	"github.com/chargefleet/chargefleet/internal/engine"
	"github.com/chargefleet/chargefleet/internal/report"
	"github.com/chargefleet/chargefleet/internal/tui"
	"github.com/chargefleet/chargefleet/internal/watch"
)

// errWatchNeedsDoc is returned when watch mode starts without a document.
var errWatchNeedsDoc = errors.New("watch requires --doc")

// newWatchCmd builds the live recompute command: poll the planning document
// and rerun the model on every change.
func newWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		useTUI   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the model whenever the planning document changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			docPath, _ := cmd.Flags().GetString("doc")
			if docPath == "" {
				return errWatchNeedsDoc
			}

			cfg := appConfig(cmd)
			if !cmd.Flags().Changed("interval") {
				interval = time.Duration(cfg.Watch.IntervalSeconds) * time.Second
			}

			if useTUI {
				return runWatchTUI(cmd, docPath, interval)
			}
			return runWatchPlain(cmd, docPath, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval,
		"poll interval for document changes (default from config)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show the live dashboard instead of printing reports")
	return cmd
}

// recompute reloads assumptions from the document and reruns the model.
func recompute(ctx context.Context, cmd *cobra.Command, docPath string) (*engine.Results, error) {
	params, err := config.LoadDocument(docPath)
	if err != nil {
		return nil, err
	}
	opts := sweepOptions(cmd)
	return engine.Run(ctx, params, opts)
}

// runWatchPlain prints a fresh report on every document change. Load
// failures are logged and skipped so a half-saved document does not kill
// the loop.
func runWatchPlain(cmd *cobra.Command, docPath string, interval time.Duration) error {
	poller := watch.NewPoller(docPath, interval)
	return poller.Run(cmd.Context(), func(ctx context.Context) error {
		results, err := recompute(ctx, cmd, docPath)
		if err != nil {
			logger.Warn().Str("path", docPath).Err(err).Msg("recompute failed, waiting for next change")
			return nil
		}
		return report.Render(cmd.OutOrStdout(), results, renderOptions(cmd))
	})
}

// runWatchTUI drives the Bubble Tea dashboard: the poller runs alongside
// the program and pushes recompute results in as messages. Quitting the
// dashboard stops the poller.
func runWatchTUI(cmd *cobra.Command, docPath string, interval time.Duration) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	program := tea.NewProgram(tui.NewWatchModel(docPath), tea.WithContext(ctx))
	poller := watch.NewPoller(docPath, interval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := poller.Run(gctx, func(cbCtx context.Context) error {
			program.Send(tui.RecomputingMsg{})
			results, err := recompute(cbCtx, cmd, docPath)
			program.Send(tui.ResultsMsg{Results: results, Err: err})
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
