package config

var Presets = map[string]map[string]*Config{
	"fenton_karma": {
		"single": {
			Model: "fenton_karma", Integrator: "euler", Protocol: "pulse",
			Dt: 0.01, Steps: 40000, Threshold: 0.1,
			InitState: InitStateConfig{U: 0, V: 1, W: 1},
			Stim:      StimConfig{Amplitude: 1.0, Start: 0.1, Duration: 0.2},
		},
		"paced": {
			Model: "fenton_karma", Integrator: "euler", Protocol: "train",
			Dt: 0.01, Steps: 400000, Threshold: 0.1,
			InitState: InitStateConfig{U: 0, V: 1, W: 1},
			Stim:      StimConfig{Amplitude: 1.0, Start: 0.1, Duration: 0.2, Period: 1000, Beats: 4},
		},
		"premature": {
			Model: "fenton_karma", Integrator: "euler", Protocol: "s1s2",
			Dt: 0.01, Steps: 300000, Threshold: 0.1,
			InitState: InitStateConfig{U: 0, V: 1, W: 1},
			Stim:      StimConfig{Amplitude: 1.0, Start: 0.1, Duration: 0.2, Period: 1000, Beats: 3, Interval: 300},
		},
		"quiescent": {
			Model: "fenton_karma", Integrator: "euler", Protocol: "none",
			Dt: 0.01, Steps: 100000, Threshold: 0.1,
			InitState: InitStateConfig{U: 0, V: 1, W: 1},
		},
	},
	"aliev_panfilov": {
		"single": {
			Model: "aliev_panfilov", Integrator: "euler", Protocol: "pulse",
			Dt: 0.01, Steps: 10000, Threshold: 0.1,
			InitState: InitStateConfig{U: 0, V: 0},
			Stim:      StimConfig{Amplitude: 1.0, Start: 1.0, Duration: 1.0},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
