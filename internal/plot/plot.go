package plot

// Package plot renders run diagnostics as standalone echarts pages: heatmaps of the
// matrices of the linear-algebra step and line charts of the saturation trace.

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"gbf2/groebner"
)

// MatrixWriter writes every matrix it receives to <Dir>/<name>.html.
type MatrixWriter struct {
	Dir string

	mu      sync.Mutex
	written []string
}

// NewMatrixWriter creates the output directory if needed.
func NewMatrixWriter(dir string) (*MatrixWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	return &MatrixWriter{Dir: dir}, nil
}

// Written lists the files produced so far.
func (w *MatrixWriter) Written() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.written...)
}

func (w *MatrixWriter) WriteMatrix(name string, m *groebner.Matrix) error {
	path := filepath.Join(w.Dir, name+".html")
	page := components.NewPage().SetPageTitle(name)
	page.AddCharts(matrixHeatMap(name, m))
	if err := renderTo(path, page); err != nil {
		return err
	}
	w.mu.Lock()
	w.written = append(w.written, path)
	w.mu.Unlock()
	return nil
}

func matrixHeatMap(name string, m *groebner.Matrix) *charts.HeatMap {
	cols := make([]string, m.Cols)
	for c := range cols {
		cols[c] = m.Columns[c].String()
	}
	rows := make([]int, m.Rows)
	for r := range rows {
		rows[r] = r
	}
	var data []opts.HeatMapData
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if m.Get(r, c) {
				data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, 1}})
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: fmt.Sprintf("%d x %d, density %.3f", m.Rows, m.Cols, m.Density()),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "800px"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "term"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "row", Inverse: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     1,
			Show:    opts.Bool(false),
			InRange: &opts.VisualMapInRange{Color: []string{"#ffffff", "#1e3a8a"}},
		}),
	)
	hm.SetXAxis(cols).AddSeries("bits", data)
	return hm
}

// WriteTrace renders the pending-pair count, basis size and sugar of each iteration.
func WriteTrace(path, title string, trace []groebner.TracePoint) error {
	steps := make([]int, len(trace))
	pending := make([]opts.LineData, len(trace))
	gens := make([]opts.LineData, len(trace))
	sugar := make([]opts.LineData, len(trace))
	for i, p := range trace {
		steps[i] = p.Step
		pending[i] = opts.LineData{Value: p.Pending}
		gens[i] = opts.LineData{Value: p.Generators}
		sugar[i] = opts.LineData{Value: p.Sugar}
	}

	sizes := charts.NewLine()
	sizes.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d iterations", len(trace))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	sizes.SetXAxis(steps).
		AddSeries("pending pairs", pending).
		AddSeries("generators", gens)

	degree := charts.NewLine()
	degree.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "sugar"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
	)
	degree.SetXAxis(steps).AddSeries("sugar", sugar)

	page := components.NewPage().SetPageTitle(title)
	page.AddCharts(sizes, degree)
	return renderTo(path, page)
}

func renderTo(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("plot: render %s: %w", path, err)
	}
	return f.Close()
}
