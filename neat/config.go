package neat

import (
	"fmt"
	"strconv"
	"strings"

	goneat "github.com/yaricom/goNEAT/v4/neat"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"gopkg.in/ini.v1"

	"github.com/pthm-cable/dino/neural"
)

// Config holds every section of a neat-python style configuration file and
// the goNEAT options derived from it.
type Config struct {
	Neat         RunConfig
	Genome       GenomeConfig
	Reproduction ReproductionConfig
	SpeciesSet   SpeciesSetConfig
	Stagnation   StagnationConfig

	// Derived
	Options *goneat.Options
	Layout  neural.Layout
}

// RunConfig is the [NEAT] section.
type RunConfig struct {
	PopSize              int     `ini:"pop_size"`
	FitnessCriterion     string  `ini:"fitness_criterion"` // max, min or mean
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	ResetOnExtinction    bool    `ini:"reset_on_extinction"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
}

// GenomeConfig is the [DefaultGenome] section.
type GenomeConfig struct {
	NumInputs                        int      `ini:"num_inputs"`
	NumOutputs                       int      `ini:"num_outputs"`
	FeedForward                      bool     `ini:"feed_forward"`
	InitialConnection                string   `ini:"initial_connection"` // full or partial <fraction>
	ActivationDefault                string   `ini:"activation_default"`
	ActivationOptions                []string `ini:"activation_options" delim:" "`
	CompatibilityDisjointCoefficient float64  `ini:"compatibility_disjoint_coefficient"`
	CompatibilityWeightCoefficient   float64  `ini:"compatibility_weight_coefficient"`
	ConnAddProb                      float64  `ini:"conn_add_prob"`
	NodeAddProb                      float64  `ini:"node_add_prob"`
	EnabledMutateRate                float64  `ini:"enabled_mutate_rate"`
	WeightInitRange                  float64  `ini:"weight_init_range"`
	WeightMutatePower                float64  `ini:"weight_mutate_power"`
	WeightMutateRate                 float64  `ini:"weight_mutate_rate"`
}

// ReproductionConfig is the [DefaultReproduction] section.
type ReproductionConfig struct {
	Elitism           int     `ini:"elitism"`
	SurvivalThreshold float64 `ini:"survival_threshold"`
	MinSpeciesSize    int     `ini:"min_species_size"`
	MutateOnlyProb    float64 `ini:"mutate_only_prob"`
	MateOnlyProb      float64 `ini:"mate_only_prob"`
}

// SpeciesSetConfig is the [DefaultSpeciesSet] section.
type SpeciesSetConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold"`
}

// StagnationConfig is the [DefaultStagnation] section.
type StagnationConfig struct {
	SpeciesFitnessFunc string `ini:"species_fitness_func"`
	MaxStagnation      int    `ini:"max_stagnation"`
	SpeciesElitism     int    `ini:"species_elitism"`
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:         true,
	UnescapeValueCommentSymbols: true,
}

// LoadConfig reads a configuration file.
func LoadConfig(path string) (*Config, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("loading neat config %q: %w", path, err)
	}
	return parseConfig(file)
}

// ParseConfig reads a configuration from memory.
func ParseConfig(data []byte) (*Config, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parsing neat config: %w", err)
	}
	return parseConfig(file)
}

func parseConfig(file *ini.File) (*Config, error) {
	defaults := neural.DefaultNEATOptions()
	cfg := &Config{
		Genome: GenomeConfig{WeightInitRange: 1},
		Reproduction: ReproductionConfig{
			SurvivalThreshold: defaults.SurvivalThresh,
			MinSpeciesSize:    1,
			MutateOnlyProb:    defaults.MutateOnlyProb,
			MateOnlyProb:      defaults.MateOnlyProb,
		},
		Stagnation: StagnationConfig{SpeciesFitnessFunc: "mean", MaxStagnation: defaults.DropOffAge},
	}

	sections := []struct {
		name string
		dst  any
	}{
		{"NEAT", &cfg.Neat},
		{"DefaultGenome", &cfg.Genome},
		{"DefaultReproduction", &cfg.Reproduction},
		{"DefaultSpeciesSet", &cfg.SpeciesSet},
		{"DefaultStagnation", &cfg.Stagnation},
	}
	for _, s := range sections {
		if !file.HasSection(s.name) {
			return nil, fmt.Errorf("neat config: missing [%s] section", s.name)
		}
		if err := file.Section(s.name).MapTo(s.dst); err != nil {
			return nil, fmt.Errorf("neat config: mapping [%s]: %w", s.name, err)
		}
	}

	g := &cfg.Genome
	for _, p := range []*string{
		&g.ActivationDefault, &g.InitialConnection,
		&cfg.Neat.FitnessCriterion, &cfg.Stagnation.SpeciesFitnessFunc,
	} {
		*p = strings.ToLower(cleanValue(*p))
	}
	g.ActivationOptions = cleanList(g.ActivationOptions)
	setDefault(&g.ActivationDefault, "sigmoid")
	setDefault(&g.InitialConnection, "full")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.derive(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	g := &c.Genome
	switch {
	case c.Neat.PopSize <= 0:
		return fmt.Errorf("neat config: pop_size must be positive")
	case g.NumInputs <= 0:
		return fmt.Errorf("neat config: num_inputs must be positive")
	case g.NumOutputs <= 0:
		return fmt.Errorf("neat config: num_outputs must be positive")
	case !g.FeedForward:
		return fmt.Errorf("neat config: only feed_forward networks are supported")
	case len(g.ActivationOptions) == 0:
		return fmt.Errorf("neat config: activation_options must be specified")
	case g.WeightInitRange <= 0:
		return fmt.Errorf("neat config: weight_init_range must be positive")
	case c.SpeciesSet.CompatibilityThreshold <= 0:
		return fmt.Errorf("neat config: compatibility_threshold must be positive")
	case c.Reproduction.SurvivalThreshold < 0 || c.Reproduction.SurvivalThreshold > 1:
		return fmt.Errorf("neat config: survival_threshold must be in [0, 1]")
	case c.Reproduction.MinSpeciesSize <= 0:
		return fmt.Errorf("neat config: min_species_size must be positive")
	case c.Stagnation.MaxStagnation <= 0:
		return fmt.Errorf("neat config: max_stagnation must be positive")
	}

	for _, p := range []float64{
		g.ConnAddProb, g.NodeAddProb, g.EnabledMutateRate, g.WeightMutateRate,
		c.Reproduction.MutateOnlyProb, c.Reproduction.MateOnlyProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("neat config: mutation probabilities must be in [0, 1]")
		}
	}
	if _, ok := criteria[c.Neat.FitnessCriterion]; !ok {
		return fmt.Errorf("neat config: invalid fitness_criterion %q", c.Neat.FitnessCriterion)
	}
	if _, ok := statFuncs[c.Stagnation.SpeciesFitnessFunc]; !ok {
		return fmt.Errorf("neat config: invalid species_fitness_func %q", c.Stagnation.SpeciesFitnessFunc)
	}
	return nil
}

// derive builds the goNEAT options and genome layout.
func (c *Config) derive() error {
	g := &c.Genome

	output, err := neural.Activation(g.ActivationDefault)
	if err != nil {
		return fmt.Errorf("neat config: activation_default: %w", err)
	}
	hidden := make([]neatmath.NodeActivationType, 0, len(g.ActivationOptions))
	for _, name := range g.ActivationOptions {
		a, err := neural.Activation(name)
		if err != nil {
			return fmt.Errorf("neat config: activation_options: %w", err)
		}
		hidden = append(hidden, a)
	}

	prob, err := connectionProb(g.InitialConnection)
	if err != nil {
		return err
	}

	c.Layout = neural.Layout{
		Inputs:         g.NumInputs,
		Outputs:        g.NumOutputs,
		ConnectionProb: prob,
		WeightRange:    g.WeightInitRange,
		Output:         output,
		Hidden:         hidden,
	}

	opts := neural.DefaultNEATOptions()
	opts.PopSize = c.Neat.PopSize
	opts.WeightMutPower = g.WeightMutatePower
	opts.MutateLinkWeightsProb = g.WeightMutateRate
	opts.MutateAddNodeProb = g.NodeAddProb
	opts.MutateAddLinkProb = g.ConnAddProb
	opts.MutateToggleEnableProb = g.EnabledMutateRate
	opts.DisjointCoeff = g.CompatibilityDisjointCoefficient
	opts.ExcessCoeff = g.CompatibilityDisjointCoefficient
	opts.MutdiffCoeff = g.CompatibilityWeightCoefficient
	opts.CompatThreshold = c.SpeciesSet.CompatibilityThreshold
	opts.DropOffAge = c.Stagnation.MaxStagnation
	opts.SurvivalThresh = c.Reproduction.SurvivalThreshold
	opts.MutateOnlyProb = c.Reproduction.MutateOnlyProb
	opts.MateOnlyProb = c.Reproduction.MateOnlyProb
	c.Options = opts
	return nil
}

// connectionProb maps initial_connection onto the chance of each
// input-output link.
func connectionProb(value string) (float64, error) {
	fields := strings.Fields(value)
	switch fields[0] {
	case "full", "full_direct":
		return 1, nil
	case "partial", "partial_direct":
		if len(fields) != 2 {
			return 0, fmt.Errorf("neat config: %s connection needs a fraction", fields[0])
		}
		frac, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || frac < 0 || frac > 1 {
			return 0, fmt.Errorf("neat config: invalid connection fraction %q", fields[1])
		}
		return frac, nil
	}
	return 0, fmt.Errorf("neat config: invalid initial_connection %q", value)
}

func cleanValue(s string) string {
	if i := strings.IndexAny(s, "#;"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func cleanList(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setDefault(p *string, v string) {
	if *p == "" {
		*p = v
	}
}
