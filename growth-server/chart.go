package main

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/agrilabs/growthviz/lib/handler"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

// growthChartPNGHandler renders the same series as a static PNG for callers
// that cannot embed the interactive fragment.
func growthChartPNGHandler(e interface{}, w http.ResponseWriter, r *http.Request) error {
	env, ok := e.(*environment)
	if !ok {
		return errors.New("UNEXPECTED: could not convert interface to *environment")
	}
	log := env.log.WithRequest(r)

	lotID, err := lotIDFromRequest(r)
	if err != nil {
		return err
	}

	series, err := env.store.FetchGrowthSeries(r.Context(), lotID)
	if err != nil {
		log.Errorf("fetching growth series for lot %d: %+v", lotID, err)
		return handler.StatusError{Code: http.StatusInternalServerError, Err: err}
	}
	if len(series) == 0 {
		writeNoData(w)
		return nil
	}

	xv := make([]time.Time, len(series))
	yv := make([]float64, len(series))
	for i, rec := range series {
		xv[i] = rec.LogDate
		yv[i] = rec.HeightCM().InexactFloat64()
	}

	lineColor := drawing.ColorFromHex("2e7d32")
	graph := chart.Chart{
		Title:      fmt.Sprintf("Tomato Growth - Lot %d", lotID),
		TitleStyle: chart.StyleShow(),
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:      "Date",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name:      "Height (cm)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: fmt.Sprintf("Lot %d", lotID),
				Style: chart.Style{
					Show:        true,
					StrokeColor: lineColor,
					DotColor:    lineColor,
					DotWidth:    3,
				},
				XValues: xv,
				YValues: yv,
			},
		},
	}

	// Render to a buffer so a failed render never leaves a partial body.
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		log.Errorf("rendering growth PNG for lot %d: %+v", lotID, err)
		return handler.StatusError{
			Code: http.StatusInternalServerError,
			Err:  errors.Wrap(err, "could not render chart"),
		}
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
	return nil
}
