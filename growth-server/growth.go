package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrilabs/growthviz/lib/growthdb"
	"github.com/agrilabs/growthviz/lib/handler"
	"github.com/agrilabs/growthviz/lib/plotly"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

const rootMessage = "Plant Growth Visualization Service - Access /growth-data/{lot_id} for charts"

const noDataFragment = "<h2>No data found for this lot ID</h2>"

func rootHandler(e interface{}, w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": rootMessage})
	return nil
}

// lotIDFromRequest relies on the route pattern to admit digits only.
func lotIDFromRequest(r *http.Request) (int, error) {
	lotID, err := strconv.Atoi(mux.Vars(r)["lotId"])
	if err != nil {
		return 0, handler.StatusError{
			Code: http.StatusBadRequest,
			Err:  errors.Wrap(err, "lot id must be an integer"),
		}
	}
	return lotID, nil
}

// writeNoData signals an empty series distinctly from genuine failures.
func writeNoData(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, noDataFragment)
}

func growthChartHandler(e interface{}, w http.ResponseWriter, r *http.Request) error {
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
		log.Debugf("no growth records for lot %d", lotID)
		writeNoData(w)
		return nil
	}

	fig := growthFigure(lotID, series)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := fig.WriteHTMLFragment(w, fmt.Sprintf("growth-chart-%d", lotID)); err != nil {
		// Headers are already sent; log rather than rewrite the status.
		log.Errorf("rendering growth chart for lot %d: %+v", lotID, err)
	}
	return nil
}

// growthFigure builds the interactive line chart: one lines+markers trace,
// date x-axis with quick-range buttons and a slider, unified hover.
func growthFigure(lotID int, series []growthdb.GrowthRecord) plotly.Figure {
	x := make([]string, len(series))
	y := make([]float64, len(series))
	for i, rec := range series {
		x[i] = rec.LogDate.Format("2006-01-02")
		y[i] = rec.HeightCM().InexactFloat64()
	}
	return plotly.Figure{
		Data: []plotly.Trace{{
			Type: "scatter",
			Mode: "lines+markers",
			X:    x,
			Y:    y,
			Line: &plotly.Line{Color: "green"},
			HoverTemplate: "<b>Date:</b> %{x|%Y-%m-%d}<br>" +
				"<b>Height:</b> %{y:.1f} cm<br>" +
				"<extra></extra>",
		}},
		Layout: plotly.Layout{
			Title: &plotly.Title{Text: fmt.Sprintf("Tomato Growth - Lot %d", lotID)},
			XAxis: &plotly.XAxis{
				Title: &plotly.Title{Text: "Date"},
				Type:  "date",
				RangeSelector: &plotly.RangeSelector{
					Buttons: []plotly.RangeSelectorButton{
						{Count: 7, Label: "1w", Step: "day", StepMode: "backward"},
						{Count: 1, Label: "1m", Step: "month", StepMode: "backward"},
						{Step: "all"},
					},
				},
				RangeSlider: &plotly.RangeSlider{Visible: true},
			},
			YAxis:     &plotly.YAxis{Title: &plotly.Title{Text: "Height (cm)"}},
			HoverMode: "x unified",
		},
	}
}
