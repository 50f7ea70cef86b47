package view

import (
	"fmt"
	"sort"

	"github.com/logrusorgru/aurora"
)

//Theme is the colour scheme of a front-end
type Theme struct {
	Name   string
	Live   aurora.Color
	Dead   aurora.Color
	Accent aurora.Color
	Alert  aurora.Color
	//glyphs of one cell
	LiveGlyph string
	DeadGlyph string
}

var themes = map[string]Theme{
	"teal": {
		Name:      "teal",
		Live:      aurora.CyanFg | aurora.CyanBg,
		Dead:      aurora.BlueFg,
		Accent:    aurora.CyanFg,
		Alert:     aurora.RedFg,
		LiveGlyph: "█",
		DeadGlyph: "░",
	},
	"green": {
		Name:      "green",
		Live:      aurora.GreenFg | aurora.GreenBg,
		Dead:      0,
		Accent:    aurora.GreenFg,
		Alert:     aurora.RedFg,
		LiveGlyph: "█",
		DeadGlyph: "░",
	},
	"mono": {
		Name:      "mono",
		LiveGlyph: "#",
		DeadGlyph: ".",
	},
}

//DefaultTheme is the scheme of the interactive front-end
const DefaultTheme = "teal"

//LookupTheme returns the theme by name
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

//ThemeNames returns the sorted theme names
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for k := range themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//glyphs returns the coloured live and dead cell strings
func (t Theme) glyphs(au aurora.Aurora) (live string, dead string) {
	return au.Colorize(t.LiveGlyph, t.Live).String(), au.Colorize(t.DeadGlyph, t.Dead).String()
}
