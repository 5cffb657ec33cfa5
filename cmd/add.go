// Package cmd: add command.
// This is the main command that orchestrates the pipeline:
// detect → extract → infer → compose → store (→ export).
//
// It accepts a single URL or a file of URLs and handles interactive prompts,
// non-interactive defaults and interrupted batches.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pinpipe/batch"
	"github.com/gaurav-prasanna/pinpipe/config"
	"github.com/gaurav-prasanna/pinpipe/core"
	"github.com/gaurav-prasanna/pinpipe/core/detect"
	"github.com/gaurav-prasanna/pinpipe/core/extract"
	"github.com/gaurav-prasanna/pinpipe/core/fetch"
	"github.com/gaurav-prasanna/pinpipe/core/infer"
	"github.com/gaurav-prasanna/pinpipe/core/normalize"
	"github.com/gaurav-prasanna/pinpipe/core/output"
	"github.com/gaurav-prasanna/pinpipe/core/pipeline"
	"github.com/gaurav-prasanna/pinpipe/core/render"
	"github.com/gaurav-prasanna/pinpipe/store"
)

// Flag variables.
var (
	flagNonInteractive bool
	flagDryRun         bool
	flagStoreDriver    string
	flagExportDir      string
	flagFormat         string
)

var addCmd = &cobra.Command{
	Use:   "add <url-or-file>",
	Short: "Add a place from a Google Maps, Apple Maps or AllTrails URL",
	Long: `Add extracts a place from a maps or trail URL and saves it to the store.
The argument is either a URL or a file with one URL per line (blank lines and
lines starting with # are ignored).

Examples:
  pinpipe add https://www.alltrails.com/trail/us/alaska/flattop-mountain-trail
  pinpipe add -n https://www.alltrails.com/trail/us/alaska/flattop-mountain-trail
  pinpipe add urls.txt --store sqlite
  pinpipe add https://maps.app.goo.gl/abc --export-dir ./cards --format pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolVarP(&flagNonInteractive, "non-interactive", "n", false, "Run without prompts (AllTrails preset, inferred categories for maps)")
	addCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Extract and compose but do not save")
	addCmd.Flags().StringVar(&flagStoreDriver, "store", "", "Store driver: yaml, sqlite or postgres (overrides config)")
	addCmd.Flags().StringVar(&flagExportDir, "export-dir", "", "Also write a card per saved place into this directory")
	addCmd.Flags().StringVar(&flagFormat, "format", "", "Card format for --export-dir: json, markdown or pdf")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	out := cmd.OutOrStdout()

	urls, isBatch, err := resolveInput(args[0])
	if err != nil {
		return err
	}

	storeCfg := cfg.Store
	if flagStoreDriver != "" {
		storeCfg.Driver = flagStoreDriver
	}
	st, err := store.Open(ctx, storeCfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	exportDir, format := cfg.Export.Dir, cfg.Export.Format
	if flagExportDir != "" {
		exportDir = flagExportDir
	}
	if flagFormat != "" {
		format = flagFormat
	}
	exp, err := newExporter(exportDir, format)
	if err != nil {
		return err
	}

	var prompter *Prompter
	if flagNonInteractive {
		fmt.Fprintln(out, "Running in non-interactive mode...")
	} else {
		prompter = NewPrompter(cmd.InOrStdin(), out)
	}

	cache := store.NewCategoryCache(st)
	a := &adder{
		out:      out,
		pipeline: pipeline.New(newRegistry(cfg.Fetch, prompter), cache),
		store:    st,
		prompter: prompter,
		exporter: exp,
		dryRun:   flagDryRun,
	}

	if isBatch {
		fmt.Fprintf(out, "Batch mode: %d URL(s) from %s\n", len(urls), args[0])
		return a.addBatch(ctx, urls)
	}
	return a.addOne(ctx, urls[0])
}

// resolveInput treats arg as a batch file when it names an existing file,
// and as a URL otherwise.
func resolveInput(arg string) ([]string, bool, error) {
	info, err := os.Stat(arg)
	switch {
	case err == nil && !info.IsDir():
		urls, err := batch.ReadFile(arg)
		return urls, true, err
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, false, eris.Wrapf(err, "add: stat %s", arg)
	case !batch.LooksLikeURL(arg):
		return nil, false, eris.Errorf("add: %q is neither a URL nor a readable file", arg)
	}
	return []string{strings.TrimSpace(arg)}, false, nil
}

// newRegistry wires the three extractors to one rate-limited fetcher.
func newRegistry(fc config.FetchConfig, prompter *Prompter) *extract.Registry {
	fetcher := fetch.New(fetch.Options{
		Timeout:           fc.Timeout(),
		RequestsPerSecond: fc.RequestsPerSecond,
	})

	var manual core.ManualEntryFunc
	if prompter != nil {
		manual = prompter.ManualEntry
	}

	return extract.NewRegistry(
		extract.NewGoogle(fetcher, fc.UserAgent),
		extract.NewApple(fetcher, fc.UserAgent),
		extract.NewAllTrails(fetcher, fc.BrowserUserAgent, manual, normalize.New()),
	)
}

// exporter renders and writes a card for each saved place.
type exporter struct {
	renderer core.Renderer
	writer   *output.Writer
}

// newExporter returns nil when dir is empty.
func newExporter(dir, format string) (*exporter, error) {
	if dir == "" {
		return nil, nil
	}
	renderer, err := selectRenderer(format)
	if err != nil {
		return nil, err
	}
	writer, err := output.New(dir)
	if err != nil {
		return nil, err
	}
	return &exporter{renderer: renderer, writer: writer}, nil
}

func (e *exporter) export(place *core.Place) (string, error) {
	data, err := e.renderer.Render(place)
	if err != nil {
		return "", err
	}
	return e.writer.Write(place, data, e.renderer.Extension())
}

// selectRenderer creates the Renderer for a format name.
func selectRenderer(format string) (core.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return render.NewJSONRenderer(), nil
	case "markdown", "md":
		return render.NewMarkdownRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, eris.Errorf("add: unknown format %q (want json, markdown or pdf)", format)
	}
}

// adder runs URLs through the pipeline and persists the results.
// A nil prompter means non-interactive mode.
type adder struct {
	out      io.Writer
	pipeline *pipeline.Pipeline
	store    store.Store
	prompter *Prompter
	exporter *exporter
	dryRun   bool
	warned   bool // unmapped categories reported
}

// addOne processes a single URL end to end.
func (a *adder) addOne(ctx context.Context, rawURL string) error {
	res, err := a.pipeline.Process(ctx, rawURL)
	if err != nil {
		if eris.Is(err, core.ErrUnrecognizedURL) {
			fmt.Fprintln(a.out, "Error: URL not recognized")
			fmt.Fprintln(a.out, "Supported formats:")
			for _, line := range detect.Supported() {
				fmt.Fprintf(a.out, "  - %s\n", line)
			}
		}
		return err
	}

	c := res.Candidate
	fmt.Fprintf(a.out, "\nFound place: %s\n", c.Name)
	fmt.Fprintf(a.out, "Coordinates: %.6f, %.6f\n", c.Coordinates.Lat, c.Coordinates.Lng)
	fmt.Fprintf(a.out, "Description: %s\n", c.Description)

	d, err := a.decide(res)
	if err != nil {
		return err
	}

	place, err := pipeline.Compose(res, d)
	if err != nil {
		if eris.Is(err, core.ErrNoCategory) {
			fmt.Fprintln(a.out, "Error: Cannot infer category in non-interactive mode")
			fmt.Fprintln(a.out, "Maps URLs require category selection. Use AllTrails URLs for full automation.")
		}
		return err
	}

	if a.dryRun {
		fmt.Fprintf(a.out, "Dry run: '%s' not saved (category %s)\n", place.Name, place.Category)
	} else {
		id, err := a.store.InsertPlace(ctx, place)
		if err != nil {
			return err
		}
		place.ID = id
		fmt.Fprintf(a.out, "✓ Successfully added '%s'\n", place.Name)
		fmt.Fprintf(a.out, "  Category: %s\n", place.Category)
		fmt.Fprintf(a.out, "  Coordinates: %.6f, %.6f\n", place.Coordinates.Lat, place.Coordinates.Lng)
		zap.L().Info("add: place saved",
			zap.String("id", id),
			zap.String("service", string(res.Service)),
			zap.String("url", res.InputURL),
		)
	}

	if a.exporter != nil {
		path, err := a.exporter.export(place)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Written: %s\n", path)
	}
	return nil
}

// decide collects the operator's choices, or the non-interactive defaults.
func (a *adder) decide(res *pipeline.Result) (pipeline.Decision, error) {
	var d pipeline.Decision
	c := res.Candidate

	if res.Service == core.ServiceAllTrails {
		fmt.Fprintf(a.out, "Category: %s (auto-assigned for AllTrails)\n", c.Category)
		if a.prompter != nil {
			desc, err := a.prompter.Description(c.Description)
			if err != nil {
				return d, err
			}
			d.Description = desc
		}
		return d, nil
	}

	if !a.warned {
		infer.Unmapped(res.Categories)
		a.warned = true
	}
	if a.prompter == nil {
		if res.Suggested != "" {
			fmt.Fprintf(a.out, "Category: %s (auto-inferred)\n", res.Suggested)
		}
		return d, nil
	}

	category, err := a.prompter.SelectCategory(res.Categories, res.Suggested)
	if err != nil {
		return d, err
	}
	d.Category = category
	if d.Description, err = a.prompter.Description(c.Description); err != nil {
		return d, err
	}
	if d.Link, err = a.prompter.LearnMoreLink(); err != nil {
		return d, err
	}
	return d, nil
}

// addBatch processes urls in order. Non-interactive runs stop at the first
// error; interactive runs ask whether to continue. An interrupt stops the
// batch; places already saved stay saved.
func (a *adder) addBatch(ctx context.Context, urls []string) error {
	q := batch.NewQueue(urls)
	rule := strings.Repeat("=", 60)

	for q.HasNext() {
		if ctx.Err() != nil {
			a.interrupted(q)
			return nil
		}
		rawURL := q.Next()
		fmt.Fprintf(a.out, "\n%s\nProcessing %d/%d: %s\n%s\n", rule, q.Processed(), q.Len(), rawURL, rule)

		err := a.addOne(ctx, rawURL)
		if err == nil {
			q.Done()
			continue
		}
		if ctx.Err() != nil {
			a.interrupted(q)
			return nil
		}

		fmt.Fprintf(a.out, "\n✗ Error processing %s: %v\n", rawURL, err)
		zap.L().Warn("add: url failed", zap.String("url", rawURL), zap.Error(err))
		if a.prompter == nil {
			fmt.Fprintln(a.out, "Stopping batch processing due to error in non-interactive mode")
			return err
		}
		next, perr := a.prompter.Confirm("Continue to next URL?")
		if perr != nil || !next {
			break
		}
	}

	fmt.Fprintf(a.out, "\n%s\nBatch complete: %d/%d URLs processed successfully\n%s\n", rule, q.Succeeded(), q.Len(), rule)
	return nil
}

func (a *adder) interrupted(q *batch.Queue) {
	fmt.Fprintln(a.out, "\n\nBatch processing interrupted by user.")
	fmt.Fprintf(a.out, "Processed %d/%d URLs successfully.\n", q.Succeeded(), q.Processed())
	fmt.Fprintln(a.out, "Note: places already added are saved in the store.")
}
