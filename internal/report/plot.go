package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/MineClever/Maya-Mocap/internal/trc"
)

// RenderPlot writes an HTML line chart of per-frame marker speeds. One
// series per marker; the x axis is the frame index of each transition.
func RenderPlot(w io.Writer, header *trc.Header, table *trc.Table) error {
	if table.NumFrames() < 2 {
		return fmt.Errorf("report: need at least two frames to plot speeds")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Marker Speeds", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Marker Speeds",
			Subtitle: fmt.Sprintf("%d markers, %d frames at %g Hz (%s)", len(table.Labels()), table.NumFrames(), header.DataRate, header.Units),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("%s/s", header.Units)}),
	)

	frames := make([]string, 0, table.NumFrames()-1)
	for f := 1; f < table.NumFrames(); f++ {
		frames = append(frames, strconv.Itoa(f))
	}
	line.SetXAxis(frames)

	for i, label := range table.Labels() {
		speeds := markerSpeeds(table, i, header.DataRate)
		series := make([]opts.LineData, 0, len(speeds))
		for _, v := range speeds {
			series = append(series, opts.LineData{Value: v})
		}
		line.AddSeries(label, series)
	}

	return line.Render(w)
}
