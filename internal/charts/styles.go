package charts

// Style defaults applied when a config omits the option.
const (
	DefaultHeight      = 400
	DefaultColorScheme = "default"
)

// ResolvedStyle is a ChartConfig's display options with every default filled.
type ResolvedStyle struct {
	Height      int    `json:"height"`
	ShowGrid    bool   `json:"show_grid"`
	ShowLegend  bool   `json:"show_legend"`
	ShowValues  bool   `json:"show_values"`
	Animated    bool   `json:"animated"`
	ColorScheme string `json:"color_scheme"`
}

// colorSchemes maps a scheme name to its series palette. Series cycle
// through the palette when a chart has more datasets than colors.
var colorSchemes = map[string][]string{
	"default": {"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899", "#14B8A6", "#F97316"},
	"cool":    {"#0EA5E9", "#06B6D4", "#14B8A6", "#10B981", "#6366F1", "#8B5CF6"},
	"warm":    {"#F97316", "#F59E0B", "#EF4444", "#EC4899", "#D946EF", "#FBBF24"},
	"mono":    {"#1E293B", "#334155", "#475569", "#64748B", "#94A3B8", "#CBD5E1"},
}

// ResolveStyle fills the documented defaults for any option the config
// leaves unset: height 400, grid on, legend on, value labels off,
// animation on, "default" color scheme. Unknown scheme names fall back
// to the default palette at lookup time.
func ResolveStyle(config ChartConfig) ResolvedStyle {
	style := ResolvedStyle{
		Height:      DefaultHeight,
		ShowGrid:    true,
		ShowLegend:  true,
		ShowValues:  false,
		Animated:    true,
		ColorScheme: DefaultColorScheme,
	}
	if config.Height != nil {
		style.Height = *config.Height
	}
	if config.ShowGrid != nil {
		style.ShowGrid = *config.ShowGrid
	}
	if config.ShowLegend != nil {
		style.ShowLegend = *config.ShowLegend
	}
	if config.ShowValues != nil {
		style.ShowValues = *config.ShowValues
	}
	if config.Animated != nil {
		style.Animated = *config.Animated
	}
	if config.ColorScheme != "" {
		style.ColorScheme = config.ColorScheme
	}
	return style
}

// SchemeColor returns the color for the i-th series of the named scheme.
func SchemeColor(scheme string, i int) string {
	palette, ok := colorSchemes[scheme]
	if !ok {
		palette = colorSchemes[DefaultColorScheme]
	}
	return palette[i%len(palette)]
}
