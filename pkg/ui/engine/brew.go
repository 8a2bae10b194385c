package engine

// brewDefaults are the properties of the Basic Rendering Engine for Widgets.
var brewDefaults = map[string]string{
	"*.color":              "#e6e6e6",
	"*.background-color":   "#3a3a3a",
	"*.border-color-light": "#bbbbbb",
	"*.border-color-dark":  "#444444",
	"*.padding":            "1",

	"Window.background-color":       "#888888",
	"Window.color":                  "#000000",
	"Window.border-width":           "1",
	"Window.title-background-color": "#aaaaaa",
	"Window.title-color":            "#000000",
	"Window.title-size":             "1",
	"Window.shadow-distance":        "1",
	"Window.shadow-color":           "#000000",
	"Window.shadow-alpha":           "50",

	"Button.background-color":          "#555555",
	"Button.background-color-prelight": "#6a6a6a",
	"Button.background-color-active":   "#2f2f2f",
	"Button.color":                     "#f0f0f0",

	"Entry.background-color": "#1e1e1e",
	"Entry.color":            "#f0f0f0",
	"Entry.cursor-color":     "#f0f0f0",
	"Entry.min-width":        "10",

	"Separator.color": "#444444",

	"ProgressBar.bar-color":   "#5fafd7",
	"ProgressBar.empty-color": "#5a5a5a",
	"ProgressBar.min-width":   "10",
}

// NewBREW returns an engine preloaded with the default properties.
func NewBREW() *Engine {
	e := New()
	for k, v := range brewDefaults {
		e.props[k] = v
	}
	return e
}
