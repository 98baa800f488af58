package config

var Presets = map[string]*Config{
	"reference": {
		Width: 800, Height: 600, Radius: 5, Dt: 1.0,
		Particles: 3000, MinSpeed: 1, MaxSpeed: 10, Steps: 1000,
	},
	"dilute": {
		Width: 800, Height: 600, Radius: 5, Dt: 1.0,
		Particles: 500, MinSpeed: 1, MaxSpeed: 10, Steps: 1000,
	},
	"dense": {
		Width: 800, Height: 600, Radius: 5, Dt: 0.5,
		Particles: 6000, MinSpeed: 1, MaxSpeed: 8, Steps: 2000,
	},
	"hot": {
		Width: 800, Height: 600, Radius: 5, Dt: 0.25,
		Particles: 2000, MinSpeed: 5, MaxSpeed: 25, Steps: 4000,
	},
	"slow": {
		Width: 800, Height: 600, Radius: 5, Dt: 1.0,
		Particles: 2000, MinSpeed: 0.5, MaxSpeed: 3, Steps: 1000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
