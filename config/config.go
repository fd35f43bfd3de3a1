// Package config provides configuration loading and access for the
// analysis tools and the demo simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all analyzer and demo-simulator parameters.
type Config struct {
	Results    ResultsConfig    `yaml:"results"`
	Plot       PlotConfig       `yaml:"plot"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	World      WorldConfig      `yaml:"world"`
	Field      FieldConfig      `yaml:"field"`
	Chemotaxis ChemotaxisConfig `yaml:"chemotaxis"`
	Agents     AgentsConfig     `yaml:"agents"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ResultsConfig locates the recorded dataset.
type ResultsConfig struct {
	Dir           string `yaml:"dir"`            // Directory written by the simulator
	SnapshotSteps []int  `yaml:"snapshot_steps"` // Steps with field/agent snapshots
}

// PlotConfig holds composite image geometry.
type PlotConfig struct {
	PanelWidth  int     `yaml:"panel_width"`  // Width of one subplot in pixels
	PanelHeight int     `yaml:"panel_height"` // Height of one subplot in pixels
	Extent      float64 `yaml:"extent"`       // Scatter axis range (0 = world width)
}

// ViewerConfig holds display settings.
type ViewerConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds demo simulation dimensions and run length.
type WorldConfig struct {
	Width  int     `yaml:"width"`  // Field width in cells
	Height int     `yaml:"height"` // Field height in cells
	Steps  int     `yaml:"steps"`
	DT     float64 `yaml:"dt"`
	Seed   int64   `yaml:"seed"`
}

// FieldConfig holds reaction-diffusion parameters.
type FieldConfig struct {
	DR      float64 `yaml:"d_r"`      // Resource diffusion coefficient
	DW      float64 `yaml:"d_w"`      // Waste diffusion coefficient
	SigmaR  float64 `yaml:"sigma_r"`  // Resource replenishment rate
	AlphaH  float64 `yaml:"alpha_h"`  // Grazing uptake rate
	BetaH   float64 `yaml:"beta_h"`   // Waste emission rate
	LambdaR float64 `yaml:"lambda_r"` // Resource decay rate
	LambdaW float64 `yaml:"lambda_w"` // Waste decay rate
	HScale  float64 `yaml:"h_scale"`  // Occupancy density scale factor
}

// ChemotaxisConfig holds agent movement and energy parameters.
type ChemotaxisConfig struct {
	ChiR  float64 `yaml:"chi_r"` // Resource attraction strength
	ChiW  float64 `yaml:"chi_w"` // Waste repulsion strength
	Kappa float64 `yaml:"kappa"` // Gradient saturation
	Gamma float64 `yaml:"gamma"` // Velocity damping
	VMax  float64 `yaml:"v_max"` // Maximum speed
	Eps0  float64 `yaml:"eps0"`  // Basal energy drain per second
	EtaR  float64 `yaml:"eta_r"` // Energy gain per unit resource per second
}

// AgentsConfig holds initial population parameters.
type AgentsConfig struct {
	Herbivores int     `yaml:"herbivores"`
	E0         float64 `yaml:"e0"` // Initial energy per agent
}

// TelemetryConfig holds output cadence parameters.
type TelemetryConfig struct {
	MetricsInterval int `yaml:"metrics_interval"` // Steps between metrics rows
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // World.DT as float32
	WorldW32 float32 // Field width as float32
	WorldH32 float32 // Field height as float32
	Extent   float64 // Effective scatter axis range
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration with a programmatically built
// one, recomputing derived values. Intended for tools that evaluate
// many configurations in one process.
func Set(cfg *Config) {
	cfg.computeDerived()
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.World.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)

	// Scatter extent defaults to the world width
	c.Derived.Extent = c.Plot.Extent
	if c.Derived.Extent == 0 {
		c.Derived.Extent = float64(c.World.Width)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
