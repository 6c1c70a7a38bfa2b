package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/preview/sink"
	"github.com/matzehuels/panelview/pkg/state"
)

func ExampleRenderSVG() {
	cfg := state.Config{
		Width: 24, Height: 12, Depth: 3, ZoomMode: state.ZoomNormal,
		Holes: []state.Hole{{Spec: state.Float(1.5), Selected: true}},
	}
	svg := string(sink.RenderSVG(layout.Build(cfg)))

	fmt.Println(strings.Count(svg, "class='front'"))
	fmt.Println(strings.Count(svg, "<circle"))
	fmt.Println(strings.Contains(svg, ">SPEC</text>"))
	// Output:
	// 1
	// 1
	// true
}

func ExampleRenderErrorSVG() {
	_, err := state.Decode([]byte(`{"width": 24`))
	fmt.Println(string(sink.RenderErrorSVG(err)))
	// Output:
	// <svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 480 360'><text x='4' y='14' fill='red'>state parse error: unexpected end of JSON input</text></svg>
}
