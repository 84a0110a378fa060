package main

import (
	"encoding/json"
	"net/http"

	"github.com/agrilabs/growthviz/lib/growthdb"
	"github.com/agrilabs/growthviz/lib/handler"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

type growthStatsResponse struct {
	LotID              int     `json:"lot_id"`
	Samples            int     `json:"samples"`
	FirstDate          string  `json:"first_date"`
	LastDate           string  `json:"last_date"`
	MinHeightCM        string  `json:"min_height_cm"`
	MaxHeightCM        string  `json:"max_height_cm"`
	GrowthRateCMPerDay float64 `json:"growth_rate_cm_per_day"`
}

// growthStatsHandler summarizes a lot's series: sample bounds and a linear
// growth-rate estimate. The chart itself stays a single undecorated trace.
func growthStatsHandler(e interface{}, w http.ResponseWriter, r *http.Request) error {
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

	resp := summarizeGrowth(lotID, series)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
	return nil
}

func summarizeGrowth(lotID int, series []growthdb.GrowthRecord) growthStatsResponse {
	minCM := series[0].HeightCM()
	maxCM := series[0].HeightCM()
	days := make([]float64, len(series))
	heights := make([]float64, len(series))
	for i, rec := range series {
		cm := rec.HeightCM()
		if cm.LessThan(minCM) {
			minCM = cm
		}
		if cm.GreaterThan(maxCM) {
			maxCM = cm
		}
		days[i] = rec.LogDate.Sub(series[0].LogDate).Hours() / 24
		heights[i] = cm.InexactFloat64()
	}

	var rate float64
	if len(series) > 1 {
		_, rate = stat.LinearRegression(days, heights, nil, false)
	}

	return growthStatsResponse{
		LotID:              lotID,
		Samples:            len(series),
		FirstDate:          series[0].LogDate.Format("2006-01-02"),
		LastDate:           series[len(series)-1].LogDate.Format("2006-01-02"),
		MinHeightCM:        minCM.StringFixed(1),
		MaxHeightCM:        maxCM.StringFixed(1),
		GrowthRateCMPerDay: rate,
	}
}
