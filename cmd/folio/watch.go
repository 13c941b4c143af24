package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/cli"
	"mercator-hq/folio/pkg/design/edit"
	"mercator-hq/folio/pkg/design/watch"
	"mercator-hq/folio/pkg/journal/retention"
	"mercator-hq/folio/pkg/telemetry/health"
)

var watchFlags struct {
	debounce time.Duration
	metrics  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Re-audit a document whenever it or its libraries change",
	Long: `Audit a document, then watch it and every library it includes and audit
it again after each change.

While watching, metrics are served when telemetry.metrics.enabled is set
(or --metrics is given), together with /health, /ready and /version
endpoints. The journal is pruned on its retention
schedule when the journal is enabled.

Examples:
  folio watch report.yaml
  folio watch report.yaml --debounce 500ms --metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before re-checking (overrides watch.debounce)")
	watchCmd.Flags().BoolVar(&watchFlags.metrics, "metrics", false, "serve Prometheus metrics")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if watchFlags.metrics {
		// The collector shares this configuration section.
		a.cfg.Telemetry.Metrics.Enabled = true
	}

	sigCtx, stop := cli.SetupSignalHandler()
	defer stop()
	cmd.SetContext(sigCtx)
	ctx := commandContext(cmd, args[0])

	module, err := a.load(args[0])
	if err != nil {
		return err
	}
	editor, err := a.editor(module)
	if err != nil {
		return err
	}

	audit := func() string {
		violations := editor.Audit(ctx)
		if err := a.print(cmd, auditView{
			Document:   args[0],
			Valid:      len(violations) == 0,
			Violations: violationViews(violations),
		}); err != nil {
			a.logger.Error("failed to print audit", "error", err)
		}
		if len(violations) > 0 {
			return "violations"
		}
		return "clean"
	}
	audit()

	state := &loadState{}
	if a.cfg.Telemetry.Metrics.Enabled {
		checker := health.New(2 * time.Second)
		checker.RegisterCheck("document", state.check)
		if a.journal != nil {
			checker.RegisterCheck("journal", func(ctx context.Context) error {
				_, err := a.journal.Count(ctx, nil)
				return err
			})
		}
		go func() {
			a.logger.Info("serving metrics",
				"address", a.cfg.Telemetry.Metrics.ListenAddress,
				"path", a.cfg.Telemetry.Metrics.Path,
			)
			mount := func(mux *http.ServeMux) {
				checker.Register(mux, Version, GitCommit, BuildDate)
			}
			if err := a.collector.Serve(ctx, mount); err != nil {
				a.logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if a.journal != nil {
		pruner := retention.NewPruner(a.journal, a.cfg.Journal.Retention, a.logger).WithRecorder(a.collector)
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
	}

	debounce := a.cfg.Watch.Debounce
	if watchFlags.debounce > 0 {
		debounce = watchFlags.debounce
	}
	w, err := watch.New(watch.Config{Paths: documentFiles(module), Debounce: debounce}, a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Watch(ctx, func(changed []string) error {
		err := reaudit(ctx, cmd, a, editor, w, args[0], audit)
		state.set(err)
		return err
	})
}

// loadState remembers whether the last reload succeeded.
type loadState struct {
	mu  sync.Mutex
	err error
}

func (s *loadState) set(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *loadState) check(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// reaudit reloads the document into the editor and audits it again. A
// document that no longer loads keeps the previous tree.
func reaudit(ctx context.Context, cmd *cobra.Command, a *app, editor *edit.Editor, w *watch.Watcher, path string, audit func() string) error {
	reloaded, err := a.load(path)
	if err != nil {
		a.collector.RecordReload("error")
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return cli.NewCommandError(cmd.Name(), fmt.Errorf("failed to reload %s: %w", path, err))
	}

	editor.Reset(reloaded)
	if err := w.SetPaths(documentFiles(reloaded)); err != nil {
		a.logger.WarnContext(ctx, "failed to update watched files", "error", err)
	}
	a.collector.RecordReload(audit())
	return nil
}
