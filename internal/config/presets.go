package config

import "sort"

var Presets = map[string]*Config{
	"binary": {
		Scene: "binary", Dt: 0.01, G: 5.0, Duration: 60.0, SampleEvery: 5,
	},
	"solar": {
		Scene: "solar", Dt: 0.002, G: 5.0, Duration: 40.0, SampleEvery: 10,
	},
	"headon": {
		Scene: "headon", Dt: 0.01, G: 0.0, Duration: 30.0, SampleEvery: 1,
	},
	"cradle": {
		Scene: "newton", Dt: 0.01, G: 0.0, Duration: 20.0, SampleEvery: 2,
	},
	"collapse": {
		Scene: "cluster", Dt: 0.005, G: 5.0, Duration: 30.0, SampleEvery: 4,
	},
}

// GetPreset returns a copy of the named preset with default interaction
// tuning, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.ValidateState = true
	cfg.Interaction = DefaultInteraction()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
