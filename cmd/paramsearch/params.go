package main

import (
	"github.com/vireolab/vireoviz/config"
)

// ParamSpec defines a single searchable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all searchable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of searchable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Chemotaxis
			{Name: "chi_r", Path: "chemotaxis.chi_r", Min: 1.0, Max: 20.0},
			{Name: "chi_w", Path: "chemotaxis.chi_w", Min: 0.5, Max: 12.0},
			{Name: "kappa", Path: "chemotaxis.kappa", Min: 0.5, Max: 8.0},
			{Name: "gamma", Path: "chemotaxis.gamma", Min: 0.01, Max: 0.5},
			{Name: "v_max", Path: "chemotaxis.v_max", Min: 0.5, Max: 4.0},
			// Energy balance
			{Name: "eps0", Path: "chemotaxis.eps0", Min: 0.005, Max: 0.1},
			{Name: "eta_r", Path: "chemotaxis.eta_r", Min: 0.05, Max: 1.0},
			// Field dynamics
			{Name: "sigma_r", Path: "field.sigma_r", Min: 0.001, Max: 0.02},
			{Name: "alpha_h", Path: "field.alpha_h", Min: 0.02, Max: 0.5},
			{Name: "lambda_r", Path: "field.lambda_r", Min: 0.001, Max: 0.02},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	// Chemotaxis
	cfg.Chemotaxis.ChiR = clamped[i]; i++
	cfg.Chemotaxis.ChiW = clamped[i]; i++
	cfg.Chemotaxis.Kappa = clamped[i]; i++
	cfg.Chemotaxis.Gamma = clamped[i]; i++
	cfg.Chemotaxis.VMax = clamped[i]; i++

	// Energy balance
	cfg.Chemotaxis.Eps0 = clamped[i]; i++
	cfg.Chemotaxis.EtaR = clamped[i]; i++

	// Field dynamics
	cfg.Field.SigmaR = clamped[i]; i++
	cfg.Field.AlphaH = clamped[i]; i++
	cfg.Field.LambdaR = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		// Chemotaxis
		cfg.Chemotaxis.ChiR,
		cfg.Chemotaxis.ChiW,
		cfg.Chemotaxis.Kappa,
		cfg.Chemotaxis.Gamma,
		cfg.Chemotaxis.VMax,
		// Energy balance
		cfg.Chemotaxis.Eps0,
		cfg.Chemotaxis.EtaR,
		// Field dynamics
		cfg.Field.SigmaR,
		cfg.Field.AlphaH,
		cfg.Field.LambdaR,
	}
}
