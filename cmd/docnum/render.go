package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/docnum"
	"github.com/tsawler/docnum/internal/config"
)

// paragraphOutput is one rendered paragraph in json and yaml output.
type paragraphOutput struct {
	Index  int    `json:"index" yaml:"index"`
	Text   string `json:"text" yaml:"text"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	NumID  int    `json:"numId,omitempty" yaml:"numId,omitempty"`
	Level  int    `json:"level,omitempty" yaml:"level,omitempty"`
	Value  int    `json:"value,omitempty" yaml:"value,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// fileResult is the rendering of one input file.
type fileResult struct {
	File       string            `json:"file" yaml:"file"`
	Paragraphs []paragraphOutput `json:"paragraphs" yaml:"paragraphs"`
	Warnings   []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	withoutSuffix bool
}

type renderFlags struct {
	skipUnnumbered bool
	withoutSuffix  bool
	maxLinkDepth   int
	workers        int
	watch          bool
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print paragraphs with their list labels",
		Long: `Render resolves the list label of every paragraph and prints the
labeled text.

Files are rendered concurrently; output keeps the argument order.

Examples:
  docnum render contract.docx
  docnum render -o json a.docx b.docx
  docnum render --skip-unnumbered --watch contract.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.merge(cmd, a.config().Render)
			r := &renderer{
				logger: a.logger,
				opts:   opts,
				format: a.outputFormat,
				indent: a.config().Output.Indent,
				out:    cmd.OutOrStdout(),
			}

			if err := r.renderAndWrite(cmd.Context(), args); err != nil {
				return err
			}
			if !flags.watch {
				return nil
			}
			return r.watch(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVar(&flags.skipUnnumbered, "skip-unnumbered", false, "omit paragraphs without a label")
	cmd.Flags().BoolVar(&flags.withoutSuffix, "without-suffix", false, "print labels without their tab or space suffix")
	cmd.Flags().IntVar(&flags.maxLinkDepth, "max-link-depth", 0, "maximum numStyleLink indirections to follow")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "files rendered in parallel (default from config)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render files when they change")
	return cmd
}

// merge applies explicitly set flags over the configured defaults.
func (f renderFlags) merge(cmd *cobra.Command, cfg config.RenderConfig) config.RenderConfig {
	if cmd.Flags().Changed("skip-unnumbered") {
		cfg.SkipUnnumbered = f.skipUnnumbered
	}
	if cmd.Flags().Changed("without-suffix") {
		cfg.WithoutSuffix = f.withoutSuffix
	}
	if cmd.Flags().Changed("max-link-depth") {
		cfg.MaxLinkDepth = f.maxLinkDepth
	}
	if cmd.Flags().Changed("workers") && f.workers > 0 {
		cfg.Workers = f.workers
	}
	return cfg
}

type renderer struct {
	logger *slog.Logger
	opts   config.RenderConfig
	format string
	indent string
	out    io.Writer
}

func (r *renderer) renderAndWrite(ctx context.Context, files []string) error {
	results, err := r.renderAll(ctx, files)
	if err != nil {
		return err
	}
	return r.write(results)
}

// renderAll renders files concurrently, at most opts.Workers at a time.
// The first failure cancels the remaining files.
func (r *renderer) renderAll(ctx context.Context, files []string) ([]*fileResult, error) {
	results := make([]*fileResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.opts.Workers, 1))
	for i, file := range files {
		g.Go(func() error {
			res, err := r.renderFile(gCtx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *renderer) renderFile(ctx context.Context, file string) (*fileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := r.logger.With("run", uuid.New().String(), "file", file)
	logger.Debug("rendering")

	ext := docnum.Open(file).MaxLinkDepth(r.opts.MaxLinkDepth)
	if r.opts.SkipUnnumbered {
		ext = ext.SkipUnnumbered()
	}
	if r.opts.WithoutSuffix {
		ext = ext.WithoutSuffix()
	}

	paras, warnings, err := ext.Paragraphs()
	if err != nil {
		return nil, err
	}

	res := &fileResult{
		File:          file,
		Paragraphs:    make([]paragraphOutput, 0, len(paras)),
		withoutSuffix: r.opts.WithoutSuffix,
	}
	for _, p := range paras {
		out := paragraphOutput{Index: p.Index, Text: p.Text}
		if p.Numbered {
			out.Label = p.Label
			out.Suffix = p.Suffix
			out.NumID = p.NumID
			out.Level = p.Level
			out.Value = p.Value
			out.Format = string(p.Format)
		}
		res.Paragraphs = append(res.Paragraphs, out)
	}
	for _, w := range warnings {
		logger.Warn("label warning", "paragraph", w.Paragraph, "err", w.Err)
		res.Warnings = append(res.Warnings, w.Message)
	}

	logger.Info("rendered", "paragraphs", len(res.Paragraphs), "warnings", len(res.Warnings))
	return res, nil
}

func (r *renderer) write(results []*fileResult) error {
	if r.format != "text" {
		if len(results) == 1 {
			return writeValue(r.out, r.format, r.indent, results[0])
		}
		return writeValue(r.out, r.format, r.indent, results)
	}

	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(r.out)
			}
			fmt.Fprintf(r.out, "==> %s <==\n", res.File)
		}
		if _, err := io.WriteString(r.out, res.text()); err != nil {
			return err
		}
	}
	return nil
}

// text returns the labeled paragraphs one per line.
func (res *fileResult) text() string {
	var sb strings.Builder
	for _, p := range res.Paragraphs {
		sb.WriteString(p.Label)
		sb.WriteString(p.Suffix)
		if res.withoutSuffix && p.Label != "" {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// watch re-renders a file whenever it is written or replaced, until ctx is
// done. Directories are watched so editors that save by rename still trigger.
func (r *renderer) watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(files)) // absolute -> argument
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = file
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}
	r.logger.Info("watching for changes", "files", len(files))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			file, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			// A failed render is logged and the watch goes on.
			if err := r.renderAndWrite(ctx, []string{file}); err != nil {
				r.logger.Error("render failed", "file", file, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watch error", "err", err)
		}
	}
}
