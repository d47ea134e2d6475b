// Package pipeline orchestrates the batch run: read leads, derive metrics,
// resolve branding, render charts, assemble reports, and write the result
// spreadsheet. Rows are isolated: one row failing is recorded and the batch
// continues; only an unusable input sheet or an unwritable output aborts
// the run.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/r3d91ll/apreport/pkg/assets"
	"github.com/r3d91ll/apreport/pkg/chart"
	"github.com/r3d91ll/apreport/pkg/config"
	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/lead"
	"github.com/r3d91ll/apreport/pkg/metrics"
	"github.com/r3d91ll/apreport/pkg/report"
	"github.com/r3d91ll/apreport/pkg/sheet"
)

// RowResult is the outcome of processing one input row.
type RowResult struct {
	// Index is the zero-based data-row index in the input sheet.
	Index int

	// Company is the (possibly placeholder) company name.
	Company string

	// Metrics is the derived metric suite; valid whenever Err is nil.
	Metrics metrics.Result

	// ReportPath is the generated PDF path, or "" if the row failed.
	ReportPath string

	// LogoIncluded reports whether a logo was downloaded and embedded.
	LogoIncluded bool

	// ChartsRendered counts the chart slots that rendered successfully.
	ChartsRendered int

	// Err is the row's failure, or nil.
	Err error
}

// Summary aggregates a completed batch run.
type Summary struct {
	// RunID uniquely identifies this batch run in logs.
	RunID string

	// Results holds one entry per input row, in input order.
	Results []RowResult

	// Succeeded and Failed count rows by outcome.
	Succeeded int
	Failed    int

	// OutputPath is the result spreadsheet location.
	OutputPath string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Runner executes batch runs.
type Runner struct {
	cfg       *config.Config
	logger    *zap.Logger
	fetcher   *assets.Fetcher
	assembler *report.Assembler
	baseStyle chart.Style
}

// New creates a Runner from configuration. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		fetcher: assets.NewFetcher(
			assets.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
			assets.WithRateLimit(cfg.Fetch.RatePerSecond),
			assets.WithLogger(logger),
		),
		assembler: report.NewAssembler(report.Config{
			Template:   cfg.Report.Template,
			Prefix:     cfg.Report.Prefix,
			FooterNote: cfg.Report.FooterNote,
		}),
		baseStyle: chart.Style{
			Primary:   cfg.Style.Primary,
			Secondary: cfg.Style.Secondary,
			Accent:    cfg.Style.Accent,
			Warn:      cfg.Style.Warn,
			Muted:     cfg.Style.Muted,
			Light:     cfg.Style.Light,
		},
	}
}

// Run processes every row of the input spreadsheet and writes the result
// spreadsheet. The returned Summary covers all rows even when some failed;
// a non-nil error means the run as a whole could not complete.
func (r *Runner) Run(ctx context.Context, inputPath string) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID))

	table, err := sheet.Read(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("input loaded",
		zap.String("path", inputPath),
		zap.Int("rows", len(table.Records)))

	results := make([]RowResult, len(table.Records))
	workers := r.cfg.Pipeline.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range table.Records {
		i, rec := i, rec
		g.Go(func() error {
			results[i] = r.processRow(gctx, logger, rec)
			return nil
		})
	}
	// Workers never return errors; row failures live in their RowResult.
	_ = g.Wait()

	summary := &Summary{
		RunID:      runID,
		Results:    results,
		OutputPath: r.cfg.Paths.OutputFile,
	}
	reportPaths := make([]string, len(results))
	for i, res := range results {
		if res.Err != nil {
			summary.Failed++
			logger.Error("row failed",
				zap.Int("row", res.Index),
				zap.String("company", res.Company),
				zap.Error(res.Err))
			continue
		}
		summary.Succeeded++
		reportPaths[i] = res.ReportPath
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	if err := sheet.Write(r.cfg.Paths.OutputFile, table, reportPaths); err != nil {
		return summary, err
	}

	summary.Elapsed = time.Since(start)
	logger.Info("batch complete",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.String("output", summary.OutputPath),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// processRow builds one company's report. Asset and chart failures degrade
// the report; only metrics-to-PDF assembly failure (or a panic) fails the
// row.
func (r *Runner) processRow(ctx context.Context, logger *zap.Logger, rec lead.Record) (res RowResult) {
	res = RowResult{Index: rec.Index, Company: rec.Name}

	// A single malformed row must never take down the batch.
	defer func() {
		if p := recover(); p != nil {
			res.Err = apperrors.Row(apperrors.ErrRowFailed,
				fmt.Sprintf("panic while processing row: %v", p))
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = apperrors.RowWrap(err, apperrors.ErrRowFailed, "run cancelled")
		return res
	}

	res.Metrics = metrics.Derive(rec.Employees, rec.Industry)
	colors := assets.ResolveBrandColors(rec.BrandPrimary, rec.BrandSecondary)
	safeName := lead.SanitizeName(rec.Name)

	logoPath := ""
	if rec.LogoURL != "" {
		dest := filepath.Join(r.cfg.Paths.ImagesDir, safeName+"_logo.png")
		downloaded, err := r.fetcher.Fetch(ctx, rec.LogoURL, dest)
		if err != nil {
			logger.Warn("logo download failed, continuing without logo",
				zap.Int("row", rec.Index),
				zap.String("company", rec.Name),
				zap.String("url", rec.LogoURL),
				zap.Error(err))
		} else {
			logoPath = downloaded
			res.LogoIncluded = true
		}
	}

	// Brand colors override the palette's identity slots for this row.
	style := r.baseStyle
	style.Primary = colors.Primary
	style.Secondary = colors.Secondary
	renderer := chart.NewRenderer(style)

	set, renderErrs := renderer.RenderAll(res.Metrics, rec.Employees, safeName, r.cfg.Paths.ImagesDir)
	for _, err := range renderErrs {
		logger.Warn("chart render failed, slot omitted",
			zap.Int("row", rec.Index),
			zap.String("company", rec.Name),
			zap.Error(err))
	}
	res.ChartsRendered = len(set)

	reportPath := r.assembler.Path(r.cfg.Paths.ReportsDir, safeName)
	if err := r.assembler.Build(reportPath, rec.Name, res.Metrics, set, logoPath, colors); err != nil {
		res.Err = apperrors.RowWrap(err, apperrors.ErrRowFailed, "report assembly failed")
		return res
	}
	res.ReportPath = reportPath

	logger.Info("report generated",
		zap.Int("row", rec.Index),
		zap.String("company", rec.Name),
		zap.Int("score", res.Metrics.EfficiencyScore),
		zap.Int("annual_savings", res.Metrics.AnnualSavings),
		zap.Bool("logo", res.LogoIncluded),
		zap.Int("charts", res.ChartsRendered),
		zap.String("report", reportPath))
	return res
}
