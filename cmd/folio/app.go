package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/folio/pkg/cli"
	"mercator-hq/folio/pkg/config"
	"mercator-hq/folio/pkg/design/edit"
	"mercator-hq/folio/pkg/design/meta"
	"mercator-hq/folio/pkg/design/model"
	"mercator-hq/folio/pkg/design/parser"
	"mercator-hq/folio/pkg/journal"
	"mercator-hq/folio/pkg/journal/storage"
	"mercator-hq/folio/pkg/telemetry/logging"
	"mercator-hq/folio/pkg/telemetry/metrics"
)

// app holds what every command needs: configuration, logger, dictionary
// and, when enabled, metrics and the decision journal.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	dict      *meta.Dictionary
	collector *metrics.Collector
	journal   journal.Storage
	formatter cli.Formatter
}

func newApp(cmd *cobra.Command) (*app, error) {
	if config.GetConfig() == nil {
		if err := config.Initialize(cfgFile); err != nil {
			return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
		}
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("config", "configuration was not initialized")
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if err := meta.Initialize(cfg.Dictionary.Path); err != nil {
		return nil, cli.NewConfigError("dictionary.path", err.Error())
	}

	formatter, err := cli.NewFormatter(cli.OutputFormat(outputFormat))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		dict:      meta.MustGet(),
		collector: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		formatter: formatter,
	}

	if cfg.Journal.Enabled {
		if a.journal, err = storage.New(cfg.Journal); err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
	}
	return a, nil
}

// Close releases the journal.
func (a *app) Close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("failed to close journal", "error", err)
		}
	}
}

func (a *app) parser() *parser.Parser {
	return parser.NewParser(a.dict).
		WithMaxFileSize(a.cfg.Design.MaxFileSize).
		WithMaxIncludeDepth(a.cfg.Design.MaxIncludeDepth)
}

// load parses a document and its libraries.
func (a *app) load(path string) (*model.Module, error) {
	module, err := a.parser().Parse(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("document loaded", "path", path, "libraries", len(module.Libraries()))
	return module, nil
}

// editor wraps module with an editor reporting to metrics and the journal.
func (a *app) editor(module *model.Module) (*edit.Editor, error) {
	observers := edit.MultiObserver{edit.NewMetricsObserver(a.collector)}
	if a.journal != nil {
		observers = append(observers, edit.NewJournalObserver(a.journal, a.collector, a.logger))
	}
	return edit.NewEditor(module, a.dict,
		edit.WithLogger(a.logger),
		edit.WithObserver(observers),
	)
}

// save writes module back to its file through a temporary file.
func (a *app) save(module *model.Module) error {
	data, err := parser.Marshal(module)
	if err != nil {
		return err
	}

	path := module.FileName()
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	a.logger.Info("document saved", "path", path)
	return nil
}

func (a *app) print(cmd *cobra.Command, data any) error {
	return a.formatter.FormatTo(cmd.OutOrStdout(), data)
}

// commandContext tags the command context with the command and document.
func commandContext(cmd *cobra.Command, document string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCommand(ctx, cmd.Name())
	if document != "" {
		ctx = logging.WithDocument(ctx, document)
	}
	return ctx
}

// resolve finds an element of module by ID or name. "root" and the empty
// reference select the module root.
func resolve(module *model.Module, ref string) (*model.Element, error) {
	if ref == "" || ref == "root" {
		return module.Root(), nil
	}
	if e := module.FindElement(ref); e != nil {
		return e, nil
	}
	if e := module.FindByName(ref); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", edit.ErrNotFound, ref)
}

// documentFiles returns the files of module and every library it includes.
func documentFiles(module *model.Module) []string {
	var files []string
	var walk func(m *model.Module)
	walk = func(m *model.Module) {
		if m.FileName() != "" {
			files = append(files, m.FileName())
		}
		for _, lib := range m.Libraries() {
			walk(lib)
		}
	}
	walk(module)
	return files
}
