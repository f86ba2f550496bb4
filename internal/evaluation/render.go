package evaluation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/stefan-kuepper/point-metric/internal/config"
)

// ErrNoScores is returned when a report has no successfully scored frame to
// render.
var ErrNoScores = errors.New("evaluation: report has no scored frames")

// WriteHistogram saves a PNG (or any format plot.Save infers from the file
// extension) histogram of the per-frame metric.
func WriteHistogram(r *Report, path string, bins int) error {
	metrics := r.Metrics()
	if len(metrics) == 0 {
		return ErrNoScores
	}
	if bins < 1 {
		return fmt.Errorf("histogram bins must be at least 1, got %d", bins)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Point metric, run %s (k=%g)", r.RunID, r.PenaltyWeight)
	p.X.Label.Text = "metric"
	p.Y.Label.Text = "frames"

	hist, err := plotter.NewHist(plotter.Values(metrics), bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save histogram %s: %w", path, err)
	}
	return nil
}

// WriteHTMLReport renders an HTML page with the per-frame metric and its
// split into displacement and cardinality penalty. Failed frames are shown
// with zero bars.
func WriteHTMLReport(r *Report, w io.Writer) error {
	if r.Summary.Scored == 0 {
		return ErrNoScores
	}

	ids := make([]string, len(r.Results))
	metric := make([]opts.BarData, len(r.Results))
	displacement := make([]opts.BarData, len(r.Results))
	penalty := make([]opts.BarData, len(r.Results))
	for i, res := range r.Results {
		ids[i] = res.FrameID
		s := res.Score
		metric[i] = opts.BarData{Value: s.Metric}
		displacement[i] = opts.BarData{Value: s.Displacement}
		penalty[i] = opts.BarData{Value: s.PenaltyWeight * float64(s.ExtraOrMissing)}
	}

	sum := r.Summary
	overview := charts.NewBar()
	overview.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Point metric report", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Point metric per frame",
			Subtitle: fmt.Sprintf("run=%s k=%g scored=%d failed=%d mean=%.3f p95=%.3f",
				r.RunID, r.PenaltyWeight, sum.Scored, sum.Failed, sum.MeanMetric, sum.P95Metric),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "metric"}),
	)
	overview.SetXAxis(ids).AddSeries("metric", metric)

	split := charts.NewBar()
	split.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Displacement vs cardinality penalty"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	split.SetXAxis(ids).
		AddSeries("displacement", displacement, charts.WithBarChartOpts(opts.BarChart{Stack: "total"})).
		AddSeries("penalty", penalty, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))

	page := components.NewPage()
	page.AddCharts(overview, split)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteArtifacts writes metrics.png and report.html for r into dir, creating
// it if needed. The histogram uses cfg's histogram_bins.
func WriteArtifacts(r *Report, cfg *config.TuningConfig, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := WriteHistogram(r, filepath.Join(dir, "metrics.png"), cfg.GetHistogramBins()); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "report.html"))
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteHTMLReport(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
