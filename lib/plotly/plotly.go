// Package plotly builds Plotly.js figures as plain data and serializes them
// to self-contained HTML fragments that load the library from the CDN.
package plotly

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/pkg/errors"
)

// CDNScriptURL is the plotly.js bundle referenced by rendered fragments.
const CDNScriptURL = "https://cdn.plot.ly/plotly-2.32.0.min.js"

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name,omitempty"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Line          *Line     `json:"line,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
}

type Layout struct {
	Title     *Title `json:"title,omitempty"`
	XAxis     *XAxis `json:"xaxis,omitempty"`
	YAxis     *YAxis `json:"yaxis,omitempty"`
	HoverMode string `json:"hovermode,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type XAxis struct {
	Title         *Title         `json:"title,omitempty"`
	Type          string         `json:"type,omitempty"`
	RangeSelector *RangeSelector `json:"rangeselector,omitempty"`
	RangeSlider   *RangeSlider   `json:"rangeslider,omitempty"`
}

type YAxis struct {
	Title *Title `json:"title,omitempty"`
}

type RangeSelector struct {
	Buttons []RangeSelectorButton `json:"buttons"`
}

type RangeSelectorButton struct {
	Count    int    `json:"count,omitempty"`
	Label    string `json:"label,omitempty"`
	Step     string `json:"step"`
	StepMode string `json:"stepmode,omitempty"`
}

type RangeSlider struct {
	Visible bool `json:"visible"`
}

var fragmentTmpl = template.Must(template.New("fragment").Parse(
	`<div id="{{.DivID}}" class="plotly-graph-div" style="height:100%; width:100%;"></div>
<script src="{{.CDN}}" charset="utf-8"></script>
<script type="text/javascript">
	Plotly.newPlot("{{.DivID}}", {{.Data}}, {{.Layout}}, {"responsive": true});
</script>
`))

type fragmentParams struct {
	DivID  string
	CDN    string
	Data   template.JS
	Layout template.JS
}

// WriteHTMLFragment renders the figure as an HTML fragment (not a full
// document). The figure JSON is marshaled up front so a serialization
// failure never produces a partial response.
func (f Figure) WriteHTMLFragment(w io.Writer, divID string) error {
	data, err := json.Marshal(f.Data)
	if err != nil {
		return errors.Wrap(err, "marshal chart data")
	}
	layout, err := json.Marshal(f.Layout)
	if err != nil {
		return errors.Wrap(err, "marshal chart layout")
	}
	p := fragmentParams{
		DivID:  divID,
		CDN:    CDNScriptURL,
		Data:   template.JS(data),
		Layout: template.JS(layout),
	}
	return errors.Wrap(fragmentTmpl.Execute(w, p), "render chart fragment")
}
