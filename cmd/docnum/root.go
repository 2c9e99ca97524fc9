package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/docnum/internal/config"
)

// app holds state shared by all subcommands.
type app struct {
	cfgFile      string
	outputFormat string
	logLevel     string

	manager *config.Manager
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "docnum",
		Short: "Resolve list labels in numbered documents",
		Long: `docnum resolves the list labels ("1.", "1.a.", "Article II") that word
processors display for numbered paragraphs.

Inputs:
  - DOCX files (numbering.xml, styles.xml and document.xml)
  - ODT files (list styles, outline style and content.xml)
  - NumberingsJSON payloads
  - JSON documents pairing a payload with paragraph references`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: ./docnum.yaml or ~/.docnum/docnum.yaml)",
	)
	cmd.PersistentFlags().StringVarP(
		&a.outputFormat, "output", "o", "", "output format: text, json or yaml (default from config)",
	)
	cmd.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)",
	)

	cmd.AddCommand(
		newRenderCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads configuration and builds the logger. Flags win over config.
func (a *app) setup(cmd *cobra.Command) error {
	mgr, err := config.NewManager(a.cfgFile)
	if err != nil {
		return err
	}
	a.manager = mgr

	cfg := mgr.Get()
	if a.outputFormat == "" {
		a.outputFormat = cfg.Output.Format
	}
	switch a.outputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.outputFormat)
	}

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	if file := mgr.ConfigFile(); file != "" {
		a.logger.Debug("loaded config", "file", file)
	}
	return nil
}

func (a *app) config() *config.Config {
	return a.manager.Get()
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
