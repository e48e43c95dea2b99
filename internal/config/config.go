package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultSteps     = 40000
	DefaultAmplitude = 1.0
	DefaultStart     = 0.1
	DefaultDuration  = 0.2
	DefaultPeriod    = 1000.0
	DefaultBeats     = 4
	DefaultInterval  = 300.0
	DefaultThreshold = 0.1
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	Protocol   string          `yaml:"protocol"`
	Dt         float64         `yaml:"dt"`
	Steps      int             `yaml:"steps"`
	Threshold  float64         `yaml:"threshold"`
	InitState  InitStateConfig `yaml:"init_state"`
	Stim       StimConfig      `yaml:"stim"`
}

type InitStateConfig struct {
	U float64 `yaml:"u"`
	V float64 `yaml:"v"`
	W float64 `yaml:"w"`
}

type StimConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Start     float64 `yaml:"start"`
	Duration  float64 `yaml:"duration"`
	Period    float64 `yaml:"period"`
	Beats     int     `yaml:"beats"`
	Interval  float64 `yaml:"interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "fenton_karma",
		Integrator: "euler",
		Protocol:   "pulse",
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Threshold:  DefaultThreshold,
		InitState: InitStateConfig{
			U: 0.0,
			V: 1.0,
			W: 1.0,
		},
		Stim: StimConfig{
			Amplitude: DefaultAmplitude,
			Start:     DefaultStart,
			Duration:  DefaultDuration,
			Period:    DefaultPeriod,
			Beats:     DefaultBeats,
			Interval:  DefaultInterval,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "aliev_panfilov":
		return []float64{c.InitState.U, c.InitState.V}
	default:
		return []float64{c.InitState.U, c.InitState.V, c.InitState.W}
	}
}

func (c *Config) GetStimParams() map[string]float64 {
	return map[string]float64{
		"amplitude": c.Stim.Amplitude,
		"start":     c.Stim.Start,
		"duration":  c.Stim.Duration,
		"period":    c.Stim.Period,
		"count":     float64(c.Stim.Beats),
		"interval":  c.Stim.Interval,
	}
}
