package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psrsim/psrsim/internal/signal"
	"github.com/psrsim/psrsim/internal/telescope"
	"github.com/psrsim/psrsim/internal/units"
)

const (
	PresetGBT     = "GBT"
	PresetArecibo = "Arecibo"
)

// Config represents the main application configuration
type Config struct {
	Settings    Settings          `yaml:"settings"`
	Telescope   TelescopeConfig   `yaml:"telescope"`
	Signal      SignalConfig      `yaml:"signal"`
	Pulsar      PulsarConfig      `yaml:"pulsar"`
	Observation ObservationConfig `yaml:"observation"`
	Storage     StorageConfig     `yaml:"storage"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// TelescopeConfig selects a preset telescope or describes a custom one.
// When Preset is set, the remaining fields are ignored.
type TelescopeConfig struct {
	Preset   string         `yaml:"preset"`
	Name     string         `yaml:"name"`
	Aperture float64        `yaml:"aperture"` // m
	Area     float64        `yaml:"area"`     // m^2, optional
	Tsys     float64        `yaml:"tsys"`     // K, optional
	Systems  []SystemConfig `yaml:"systems"`
}

// SystemConfig describes one receiver/backend pair.
type SystemConfig struct {
	Name     string         `yaml:"name"`
	Receiver ReceiverConfig `yaml:"receiver"`
	Backend  BackendConfig  `yaml:"backend"`
}

type ReceiverConfig struct {
	Name      string  `yaml:"name"`
	Fcent     float64 `yaml:"fcent"`     // MHz
	Bandwidth float64 `yaml:"bandwidth"` // MHz
}

type BackendConfig struct {
	Name     string  `yaml:"name"`
	SampRate float64 `yaml:"samprate"` // MHz
}

// SignalConfig describes the shape and representation of the simulated
// signal.
type SignalConfig struct {
	Kind      string  `yaml:"kind"`      // voltage or intensity
	DType     string  `yaml:"dtype"`     // float32 or int8
	Nt        int     `yaml:"nt"`        // samples
	Nchan     int     `yaml:"nchan"`     // channels (intensity) or polarizations (voltage)
	ObsTime   float64 `yaml:"obstime"`   // ms
	SubintLen float64 `yaml:"subintlen"` // ms, optional
}

// PulsarConfig describes the synthetic pulsar.
type PulsarConfig struct {
	Period    float64 `yaml:"period"` // ms
	Width     float64 `yaml:"width"`  // fraction of the period
	Amplitude float64 `yaml:"amplitude"`
	Baseline  float64 `yaml:"baseline"`
	Seed      uint64  `yaml:"seed"` // 0 uses the global random source
}

// ObservationConfig selects the system and the pipeline switches.
type ObservationConfig struct {
	System string `yaml:"system"`
	Mode   string `yaml:"mode"`
	Noise  bool   `yaml:"noise"`
}

// StorageConfig represents storage settings
type StorageConfig struct {
	DataDirectory string `yaml:"dataDirectory"`
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Telescope.Preset {
	case "", PresetGBT, PresetArecibo:
	default:
		return fmt.Errorf("unknown telescope preset '%s'", c.Telescope.Preset)
	}
	if c.Telescope.Preset == "" {
		if c.Telescope.Aperture <= 0 {
			return fmt.Errorf("custom telescope needs a positive aperture")
		}
		if len(c.Telescope.Systems) == 0 {
			return fmt.Errorf("custom telescope needs at least one system")
		}
	}

	if _, err := parseKind(c.Signal.Kind); err != nil {
		return err
	}
	if _, err := parseDType(c.Signal.DType); err != nil {
		return err
	}
	if c.Signal.Nt <= 0 || c.Signal.Nchan <= 0 || c.Signal.ObsTime <= 0 {
		return fmt.Errorf("signal needs positive nt, nchan and obstime")
	}

	if c.Pulsar.Period <= 0 {
		return fmt.Errorf("pulsar needs a positive period")
	}

	if c.Observation.System == "" {
		return fmt.Errorf("observation needs a system name")
	}
	switch telescope.Mode(c.Observation.Mode) {
	case telescope.ModeSearch, telescope.ModeFold:
	default:
		return fmt.Errorf("unknown observing mode '%s'", c.Observation.Mode)
	}
	return nil
}

func parseKind(s string) (signal.Kind, error) {
	switch s {
	case "voltage":
		return signal.Voltage, nil
	case "intensity", "filterbank":
		return signal.Intensity, nil
	default:
		return 0, fmt.Errorf("unknown signal kind '%s'", s)
	}
}

func parseDType(s string) (signal.DType, error) {
	switch s {
	case "float32":
		return signal.Float32, nil
	case "int8":
		return signal.Int8, nil
	default:
		return 0, fmt.Errorf("unknown signal dtype '%s'", s)
	}
}

// BuildTelescope constructs the telescope described by the configuration.
func (c *Config) BuildTelescope() *telescope.Telescope {
	switch c.Telescope.Preset {
	case PresetGBT:
		return telescope.GBT()
	case PresetArecibo:
		return telescope.Arecibo()
	}

	var options []telescope.Option
	if c.Telescope.Area > 0 {
		options = append(options, telescope.WithArea(units.SquareMeters(c.Telescope.Area)))
	}
	if c.Telescope.Tsys > 0 {
		options = append(options, telescope.WithTsys(units.Kelvin(c.Telescope.Tsys)))
	}

	tel := telescope.New(c.Telescope.Name, units.Meters(c.Telescope.Aperture), options...)
	for _, sys := range c.Telescope.Systems {
		tel.AddSystem(sys.Name,
			telescope.Receiver{
				Name:      sys.Receiver.Name,
				Fcent:     units.Megahertz(sys.Receiver.Fcent),
				Bandwidth: units.Megahertz(sys.Receiver.Bandwidth),
			},
			telescope.Backend{
				Name:     sys.Backend.Name,
				SampRate: units.Megahertz(sys.Backend.SampRate),
			})
	}
	return tel
}

// BuildDescriptor constructs the signal descriptor described by the
// configuration.
func (c *Config) BuildDescriptor() (signal.Descriptor, error) {
	kind, err := parseKind(c.Signal.Kind)
	if err != nil {
		return signal.Descriptor{}, err
	}
	dtype, err := parseDType(c.Signal.DType)
	if err != nil {
		return signal.Descriptor{}, err
	}

	desc := signal.Descriptor{
		Kind:    kind,
		DType:   dtype,
		Nt:      c.Signal.Nt,
		ObsTime: units.Milliseconds(c.Signal.ObsTime),
	}
	if kind == signal.Voltage {
		desc.Npols = c.Signal.Nchan
	} else {
		desc.Nf = c.Signal.Nchan
	}
	if c.Signal.SubintLen > 0 {
		desc.SubintLen = units.Milliseconds(c.Signal.SubintLen)
	}
	return desc, desc.Validate()
}
