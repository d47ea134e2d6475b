// Package chart renders the report's illustration set as PNG files.
// Each chart is written to a deterministic path derived from the sanitized
// company name; a failed render only costs the report that one slot.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/metrics"
)

// Kind identifies one chart slot in the report layout.
type Kind string

const (
	// KindCost compares cost per invoice against the industry benchmark.
	KindCost Kind = "cost"

	// KindTime compares processing time against the best-practice benchmark.
	KindTime Kind = "time"

	// KindMatch compares the first-time match rate against best practice.
	KindMatch Kind = "match"

	// KindEfficiencyMeter is the headline efficiency-score donut.
	KindEfficiencyMeter Kind = "efficiency_meter"

	// KindPeer compares the company score against peers.
	KindPeer Kind = "peer"

	// KindThermometer compares current vs optimized cost per invoice.
	KindThermometer Kind = "thermometer"

	// KindFunnel shows invoice-stage leakage vs an optimized funnel.
	KindFunnel Kind = "funnel"

	// KindMonthlySavings compares current vs optimized monthly spend.
	KindMonthlySavings Kind = "monthly_savings"
)

// Kinds lists every chart slot in render order.
var Kinds = []Kind{
	KindCost, KindTime, KindMatch, KindEfficiencyMeter,
	KindPeer, KindThermometer, KindFunnel, KindMonthlySavings,
}

// fileSuffix maps a Kind to its artifact filename suffix.
// The thermometer keeps its historical short suffix.
var fileSuffix = map[Kind]string{
	KindCost:            "cost",
	KindTime:            "time",
	KindMatch:           "match",
	KindEfficiencyMeter: "efficiency_meter",
	KindPeer:            "peer",
	KindThermometer:     "thermo",
	KindFunnel:          "funnel",
	KindMonthlySavings:  "monthly_savings",
}

// Peer comparison fixtures quoted in the report.
const (
	PeerCompetitorScore = 81
	PeerLeaderScore     = 95
)

// Funnel stage fixtures: illustrative leakage percentages per stage.
var (
	FunnelStages    = []string{"Received", "Processed", "Matched", "Paid"}
	FunnelCurrent   = []float64{100, 80, 60, 55}
	FunnelOptimized = []float64{100, 95, 90, 85}
)

// Set maps rendered chart slots to their file paths.
// Slots whose render failed are absent.
type Set map[Kind]string

// Path returns the path for a slot and whether it was rendered.
func (s Set) Path(k Kind) (string, bool) {
	p, ok := s[k]
	return p, ok
}

// ArtifactPath returns the deterministic chart path for a company and kind.
func ArtifactPath(dir, safeName string, k Kind) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", safeName, fileSuffix[k]))
}

// Style holds the palette used across the chart set. Primary and Secondary
// are overridden per row when the lead sheet carries brand colors.
type Style struct {
	Primary   string // headline and company-identity color
	Secondary string // positive/optimized color
	Accent    string // neutral highlight color
	Warn      string // negative/current-state color
	Muted     string // de-emphasized series color
	Light     string // donut remainder color
}

// DefaultStyle returns the stock palette.
func DefaultStyle() Style {
	return Style{
		Primary:   "#001F3F",
		Secondary: "#2ECC40",
		Accent:    "#FF851B",
		Warn:      "#FF4136",
		Muted:     "#AAAAAA",
		Light:     "#F0F0F0",
	}
}

// Renderer renders the chart set for one company.
type Renderer struct {
	style Style
}

// NewRenderer creates a Renderer with the given style.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

// RenderAll renders every chart slot for one company into dir.
// It returns the set of slots that rendered successfully, plus one error
// per failed slot; the caller logs those and the report simply omits them.
func (r *Renderer) RenderAll(m metrics.Result, employees int, safeName, dir string) (Set, []error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		errs := make([]error, 0, len(Kinds))
		for range Kinds {
			errs = append(errs, apperrors.RenderWrap(err, apperrors.ErrChartRenderFailed, "creating images directory"))
		}
		return Set{}, errs
	}

	set := Set{}
	var errs []error
	render := func(k Kind, fn func(path string) error) {
		path := ArtifactPath(dir, safeName, k)
		if err := fn(path); err != nil {
			errs = append(errs, apperrors.RenderWrap(err, apperrors.ErrChartRenderFailed,
				fmt.Sprintf("rendering %s chart", k)).WithContext("path", path))
			return
		}
		set[k] = path
	}

	render(KindCost, func(p string) error {
		return r.donut(p, "Cost Per Invoice", float64(int(m.CostPerInvoice)), metrics.CostBenchmark, r.style.Warn)
	})
	render(KindTime, func(p string) error {
		return r.donut(p, "Processing Time (days)", float64(m.ProcessingTimeDays), metrics.TimeBenchmarkDays, r.style.Accent)
	})
	render(KindMatch, func(p string) error {
		return r.donut(p, "First-Time Match Rate", float64(m.FirstTimeMatchRate), metrics.MatchBenchmark, r.style.Warn)
	})
	render(KindEfficiencyMeter, func(p string) error {
		return r.donut(p, "Efficiency Score", float64(m.EfficiencyScore), 100, r.style.Secondary)
	})
	render(KindPeer, func(p string) error {
		return r.peerComparison(p, m.EfficiencyScore)
	})
	render(KindThermometer, func(p string) error {
		return r.thermometer(p, m.CostPerInvoice)
	})
	render(KindFunnel, func(p string) error {
		return r.funnel(p)
	})
	render(KindMonthlySavings, func(p string) error {
		current := metrics.MonthlyInvoiceSpend(employees, m.CostPerInvoice)
		optimized := metrics.OptimizedMonthlySpend(employees)
		return r.monthlySavings(p, current, optimized)
	})

	return set, errs
}

// donut renders a value-vs-benchmark donut. The remainder wedge is clamped
// at zero so values above the benchmark still render.
func (r *Renderer) donut(path, title string, value, benchmark float64, color string) error {
	if value <= 0 {
		// A zero wedge set cannot be rendered; draw the benchmark as the
		// whole ring instead.
		value = 0.0001
	}
	values := []chart.Value{
		{
			Value: value,
			Label: fmt.Sprintf("%d", int(value)),
			Style: chart.Style{FillColor: hexColor(color)},
		},
	}
	if rest := benchmark - value; rest > 0 {
		values = append(values, chart.Value{
			Value: rest,
			Label: " ",
			Style: chart.Style{FillColor: hexColor(r.style.Light)},
		})
	}

	c := chart.DonutChart{
		Title:  title,
		Width:  300,
		Height: 300,
		Values: values,
	}
	return renderToFile(path, func(w *os.File) error {
		return c.Render(chart.PNG, w)
	})
}

// peerComparison renders the company score against fixed peer scores.
func (r *Renderer) peerComparison(path string, score int) error {
	c := chart.BarChart{
		Title:    "Peer Comparison",
		Width:    600,
		Height:   300,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: []chart.Value{
			{Value: float64(score), Label: "Your Company", Style: chart.Style{FillColor: hexColor(r.style.Primary)}},
			{Value: PeerCompetitorScore, Label: "Competitor A", Style: chart.Style{FillColor: hexColor(r.style.Muted)}},
			{Value: PeerLeaderScore, Label: "Industry Leader", Style: chart.Style{FillColor: hexColor(r.style.Secondary)}},
		},
	}
	return renderToFile(path, func(w *os.File) error {
		return c.Render(chart.PNG, w)
	})
}

// thermometer renders current vs optimized cost per invoice.
func (r *Renderer) thermometer(path string, costPerInvoice float64) error {
	maxCost := costPerInvoice
	if metrics.OptimizedCostPerInvoice > maxCost {
		maxCost = metrics.OptimizedCostPerInvoice
	}
	c := chart.BarChart{
		Title:    "Cost Per Invoice ($)",
		Width:    300,
		Height:   500,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxCost * 1.2},
		},
		Bars: []chart.Value{
			{Value: costPerInvoice, Label: "Current", Style: chart.Style{FillColor: hexColor(r.style.Warn)}},
			{Value: metrics.OptimizedCostPerInvoice, Label: "Optimized", Style: chart.Style{FillColor: hexColor(r.style.Secondary)}},
		},
	}
	return renderToFile(path, func(w *os.File) error {
		return c.Render(chart.PNG, w)
	})
}

// funnel renders per-stage current vs optimized percentages as paired bars.
func (r *Renderer) funnel(path string) error {
	bars := make([]chart.Value, 0, len(FunnelStages)*2)
	for i, stage := range FunnelStages {
		bars = append(bars,
			chart.Value{Value: FunnelCurrent[i], Label: stage, Style: chart.Style{FillColor: hexColor(r.style.Warn)}},
			chart.Value{Value: FunnelOptimized[i], Label: " ", Style: chart.Style{FillColor: hexColor(r.style.Secondary).WithAlpha(120)}},
		)
	}
	c := chart.BarChart{
		Title:    "Where Money Leaks (%)",
		Width:    600,
		Height:   400,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 110},
		},
		Bars: bars,
	}
	return renderToFile(path, func(w *os.File) error {
		return c.Render(chart.PNG, w)
	})
}

// monthlySavings renders current vs optimized monthly invoice spend.
func (r *Renderer) monthlySavings(path string, current, optimized int) error {
	savings := current - optimized
	if savings < 0 {
		savings = 0
	}
	maxSpend := float64(current)
	if float64(optimized) > maxSpend {
		maxSpend = float64(optimized)
	}
	if maxSpend <= 0 {
		maxSpend = 1
	}
	c := chart.BarChart{
		Title:    fmt.Sprintf("Monthly Savings: $%d", savings),
		Width:    500,
		Height:   350,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxSpend * 1.1},
		},
		Bars: []chart.Value{
			{Value: float64(current), Label: "Current", Style: chart.Style{FillColor: hexColor(r.style.Warn)}},
			{Value: float64(optimized), Label: "Optimized", Style: chart.Style{FillColor: hexColor(r.style.Secondary)}},
		},
	}
	return renderToFile(path, func(w *os.File) error {
		return c.Render(chart.PNG, w)
	})
}

// renderToFile writes a chart to path, removing the file again if the
// render fails partway so no truncated PNG is left for the assembler.
func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// hexColor parses a "#RRGGBB" string, tolerating a missing "#".
// Unparseable values fall back to a neutral gray rather than failing the
// chart.
func hexColor(s string) drawing.Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return drawing.ColorFromHex("AAAAAA")
	}
	return drawing.ColorFromHex(s)
}
