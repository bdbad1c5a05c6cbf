package config

import "sort"

type Preset struct {
	About string
	Code  string
}

var Presets = map[string]Preset{
	"column": {
		About: "three twists straight up",
		Code:  "(L, 3)",
	},
	"tower": {
		About: "six twists, slightly tapered",
		Code:  "(L, 6, S95)",
	},
	"mast": {
		About: "grows three twists up and three down from the seed",
		Code:  "(L, 0, A(3), a(3))",
	},
	"anchored-tower": {
		About: "four twists up with the seed ring anchored to the ground",
		Code:  "(L, 0, A(4), Ma1)",
	},
	"loop": {
		About: "two arms whose tips pull toward each other",
		Code:  "(L, 0, A(2, MA7), a(2, MA7))",
	},
}

// GetPreset resolves a preset into a full config, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Code = p.Code
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
