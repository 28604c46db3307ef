package report

import (
	"fmt"
	"io"

	"CrashPulse/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxChartPoints caps the rendered series length; a 10 kHz trace has far
// more samples than a browser chart needs.
const maxChartPoints = 4000

// PulseChart renders an HTML line chart of the processed crash pulse
// (filtered acceleration, velocity, displacement over time) to w.
func PulseChart(sig *model.CrashSignal, title string, w io.Writer) error {
	stride := 1
	if sig.Len() > maxChartPoints {
		stride = sig.Len()/maxChartPoints + 1
	}

	var (
		xAxis  []string
		accel  []opts.LineData
		vel    []opts.LineData
		disp   []opts.LineData
	)
	for i := 0; i < sig.Len(); i += stride {
		xAxis = append(xAxis, fmt.Sprintf("%.1f", sig.TimeMS[i]))
		accel = append(accel, opts.LineData{Value: sig.FilteredAccelG[i]})
		vel = append(vel, opts.LineData{Value: sig.VelocityKPH[i]})
		disp = append(disp, opts.LineData{Value: sig.DisplacementM[i] * 1000})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("fs=%.0f Hz points=%d stride=%d", sig.SampleRate, len(xAxis), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (ms)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(xAxis).
		AddSeries("accel (g, CFC60)", accel).
		AddSeries("velocity (km/h)", vel).
		AddSeries("displacement (mm)", disp)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render pulse chart: %w", err)
	}
	return nil
}
