// Package report assembles the two-page personalized PDF for one company.
// Page one is the hook: headline score, savings, and the chart set. Page
// two is the fixed process roadmap. Optional artifacts that are missing or
// unreadable are silently omitted; only a failure to write the document
// itself fails the row.
package report

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/r3d91ll/apreport/pkg/assets"
	"github.com/r3d91ll/apreport/pkg/chart"
	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/metrics"
)

// Template selects the page-one layout variant.
const (
	TemplateClassic = "classic"
	TemplateCompact = "compact"
)

// Config holds assembler settings.
type Config struct {
	// Template is the layout variant: TemplateClassic or TemplateCompact.
	// Default: TemplateClassic
	Template string

	// Prefix is the report filename prefix: {prefix}_{company}.pdf.
	// Default: "AP_Report"
	Prefix string

	// FooterNote is the right-aligned footer on every page.
	// Default: "Based on Q4 2024 data"
	FooterNote string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Template:   TemplateClassic,
		Prefix:     "AP_Report",
		FooterNote: "Based on Q4 2024 data",
	}
}

// Assembler builds report PDFs.
type Assembler struct {
	cfg    Config
	layout layout
}

// layout holds page-one placement values that differ between templates.
type layout struct {
	logoY, logoW     float64
	meterX, meterY   float64
	meterW           float64
	headlineY, subY  float64
	midY, midW       float64
	donutY, donutW   float64
	captionY         float64
	bottomY, bottomW float64
	headlineSize     float64
}

var layouts = map[string]layout{
	TemplateClassic: {
		logoY: 15, logoW: 30,
		meterX: 165, meterY: 15, meterW: 35,
		headlineY: 60, subY: 75,
		midY: 95, midW: 70,
		donutY: 180, donutW: 50,
		captionY: 225,
		bottomY: 240, bottomW: 80,
		headlineSize: 22,
	},
	TemplateCompact: {
		logoY: 12, logoW: 24,
		meterX: 170, meterY: 12, meterW: 28,
		headlineY: 48, subY: 60,
		midY: 76, midW: 62,
		donutY: 156, donutW: 44,
		captionY: 196,
		bottomY: 210, bottomW: 72,
		headlineSize: 18,
	},
}

// NewAssembler creates an Assembler. Unknown templates fall back to classic.
func NewAssembler(cfg Config) *Assembler {
	if cfg.Prefix == "" {
		cfg.Prefix = "AP_Report"
	}
	l, ok := layouts[cfg.Template]
	if !ok {
		cfg.Template = TemplateClassic
		l = layouts[TemplateClassic]
	}
	return &Assembler{cfg: cfg, layout: l}
}

// Path returns the deterministic report path for a sanitized company name.
func (a *Assembler) Path(dir, safeName string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.pdf", a.cfg.Prefix, safeName))
}

// processStep is one box in the page-two flow diagram.
type processStep struct {
	name       string
	r, g, b    int
	time, cost string
}

var processSteps = []processStep{
	{"Receipt", 255, 204, 204, "3 days", "$4"},
	{"Data Entry", 255, 204, 204, "4 days", "$5"},
	{"Approval", 255, 236, 179, "5 days", "$3"},
	{"Payment", 204, 255, 204, "2 days", "$2"},
	{"Filing", 204, 255, 204, "1 day", "$1"},
}

type quickWin struct {
	label, text string
}

var quickWins = []quickWin{
	{"Email Parsing:", "Centralize Invoices: Set up invoice@company.com to save 3+ hours daily."},
	{"Approval Matrix:", "Create an Approval Matrix: Cut approval time by 60% with a simple template."},
	{"Exception Tracking:", "Track Exceptions: Reduce errors by 40% with a basic exception tracker."},
}

// Build writes the report PDF to path. Missing charts and logos are
// skipped; a filesystem or encoder failure returns REPORT_BUILD_FAILED.
func (a *Assembler) Build(path, company string, m metrics.Result, charts chart.Set, logoPath string, colors assets.BrandColors) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.ReportWrap(err, apperrors.ErrReportBuildFailed, "creating reports directory")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pr, pg, pb := hexRGB(colors.Primary, 0, 31, 63)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetX(-60)
		pdf.CellFormat(0, 10, tr(a.cfg.FooterNote), "", 0, "R", false, 0, "")
	})

	a.buildHookPage(pdf, tr, company, m, charts, logoPath, pr, pg, pb)
	a.buildRoadmapPage(pdf, tr, pr, pg, pb)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperrors.ReportWrap(err, apperrors.ErrReportBuildFailed, "writing pdf").
			WithContext("path", path)
	}
	return nil
}

func (a *Assembler) buildHookPage(pdf *gofpdf.Fpdf, tr func(string) string, company string, m metrics.Result, charts chart.Set, logoPath string, pr, pg, pb int) {
	l := a.layout
	pdf.AddPage()

	// Top band: logo left, efficiency donut right.
	placeImage(pdf, logoPath, 15, l.logoY, l.logoW)
	if p, ok := charts.Path(chart.KindEfficiencyMeter); ok {
		placeImage(pdf, p, l.meterX, l.meterY, l.meterW)
	}

	pdf.SetXY(0, l.headlineY)
	pdf.SetFont("Helvetica", "B", l.headlineSize)
	pdf.SetTextColor(pr, pg, pb)
	headline := fmt.Sprintf("%s's AP Efficiency Score: %d%%", company, m.EfficiencyScore)
	pdf.CellFormat(210, 11, tr(headline), "", 1, "C", false, 0, "")

	pdf.SetXY(0, l.subY)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(128, 128, 128)
	sub := fmt.Sprintf("Industry Average: %d%% | Potential Annual Savings: $%s",
		metrics.IndustryAverageScore, groupThousands(m.AnnualSavings))
	pdf.CellFormat(210, 7, tr(sub), "", 1, "C", false, 0, "")

	if m.Urgent() {
		pdf.SetDrawColor(255, 65, 54)
		pdf.SetTextColor(255, 65, 54)
		pdf.SetLineWidth(1)
		pdf.SetXY(140, l.headlineY)
		pdf.CellFormat(50, 12, "URGENT", "1", 0, "C", false, 0, "")
		pdf.SetTextColor(pr, pg, pb)
		pdf.SetLineWidth(0.2)
	}

	// Middle band: thermometer and funnel side by side.
	if p, ok := charts.Path(chart.KindThermometer); ok {
		placeImage(pdf, p, 25, l.midY, l.midW)
	}
	if p, ok := charts.Path(chart.KindFunnel); ok {
		placeImage(pdf, p, 115, l.midY, l.midW)
	}

	// Benchmark donuts in a row, captions underneath.
	donutX := []float64{25, 90, 155}
	donutKinds := []chart.Kind{chart.KindCost, chart.KindTime, chart.KindMatch}
	for i, k := range donutKinds {
		if p, ok := charts.Path(k); ok {
			placeImage(pdf, p, donutX[i], l.donutY, l.donutW)
		}
	}
	captions := []string{
		fmt.Sprintf("vs Industry Average ($%d)", metrics.CostBenchmark),
		fmt.Sprintf("vs Benchmark (%d days)", metrics.TimeBenchmarkDays),
		fmt.Sprintf("vs Best Practice (%d%%)", metrics.MatchBenchmark),
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	for i, caption := range captions {
		pdf.SetXY(donutX[i], l.captionY)
		pdf.CellFormat(l.donutW, 6, tr(caption), "", 0, "C", false, 0, "")
	}

	// Bottom band: peer comparison and monthly savings.
	if p, ok := charts.Path(chart.KindPeer); ok {
		placeImage(pdf, p, 25, l.bottomY, l.bottomW)
	}
	if p, ok := charts.Path(chart.KindMonthlySavings); ok {
		placeImage(pdf, p, 125, l.bottomY, l.bottomW)
	}
}

func (a *Assembler) buildRoadmapPage(pdf *gofpdf.Fpdf, tr func(string) string, pr, pg, pb int) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(pr, pg, pb)
	pdf.CellFormat(0, 15, tr("The 'Here's How' Roadmap"), "", 1, "C", false, 0, "")

	const (
		boxWidth  = 38.0
		boxHeight = 22.0
		startX    = 15.0
		startY    = 40.0
	)

	pdf.SetFont("Helvetica", "B", 14)
	for i, step := range processSteps {
		pdf.SetFillColor(step.r, step.g, step.b)
		pdf.SetXY(startX+float64(i)*boxWidth, startY)
		pdf.CellFormat(boxWidth, boxHeight, tr(step.name), "1", 0, "C", true, 0, "")
	}

	// Arrows between the boxes.
	arrowY := startY + boxHeight/2
	pdf.SetDrawColor(pr, pg, pb)
	for i := 0; i < len(processSteps)-1; i++ {
		x1 := startX + float64(i+1)*boxWidth - 3
		pdf.Line(x1, arrowY, x1+8, arrowY)
		pdf.Line(x1+8, arrowY, x1+4, arrowY-4)
		pdf.Line(x1+8, arrowY, x1+4, arrowY+4)
	}

	pdf.SetFont("Helvetica", "", 10)
	for i, step := range processSteps {
		x := startX + float64(i)*boxWidth
		pdf.SetXY(x, startY+boxHeight)
		pdf.CellFormat(boxWidth, 6, tr("Time: "+step.time), "", 0, "C", false, 0, "")
		pdf.SetXY(x, startY+boxHeight+6)
		pdf.CellFormat(boxWidth, 6, tr("Cost: "+step.cost), "", 0, "C", false, 0, "")
	}

	pdf.SetY(startY + boxHeight + 30)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("3 Changes You Can Make This Week"), "", 1, "L", false, 0, "")

	lineY := pdf.GetY()
	for _, win := range quickWins {
		pdf.SetXY(20, lineY)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(32, 8, tr(win.label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(" "+win.text), "", 1, "L", false, 0, "")
		lineY += 8
	}
}

// placeImage embeds an image if the file exists and decodes as a known
// raster format. Anything else is skipped: a bad or missing optional image
// never fails the document.
func placeImage(pdf *gofpdf.Fpdf, path string, x, y, w float64) {
	if path == "" {
		return
	}
	format, ok := sniffImage(path)
	if !ok {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: format, ReadDpi: false}
	pdf.ImageOptions(path, x, y, w, 0, false, opts, 0, "")
}

// sniffImage decodes the image header and reports the format gofpdf should
// use. Downloaded logos carry a .png name regardless of their real
// encoding, so the name cannot be trusted.
func sniffImage(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", false
	}
	switch format {
	case "png", "jpeg", "gif":
		return format, true
	}
	return "", false
}

// hexRGB parses "#RRGGBB" into components, falling back to the given
// defaults on anything unparseable.
func hexRGB(s string, dr, dg, db int) (int, int, int) {
	if len(s) != 7 || s[0] != '#' {
		return dr, dg, db
	}
	r, err1 := strconv.ParseUint(s[1:3], 16, 8)
	g, err2 := strconv.ParseUint(s[3:5], 16, 8)
	b, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return dr, dg, db
	}
	return int(r), int(g), int(b)
}

// groupThousands formats n with comma separators ("6480000" -> "6,480,000").
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
