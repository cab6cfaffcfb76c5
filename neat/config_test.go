package neat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
)

const testConfig = `
[NEAT]
fitness_criterion     = max
fitness_threshold     = 1000
pop_size              = 20
reset_on_extinction   = True

[DefaultGenome]
activation_default      = sigmoid
activation_options      = sigmoid tanh
compatibility_disjoint_coefficient = 1.0
compatibility_weight_coefficient   = 0.5
conn_add_prob           = 0.5
enabled_mutate_rate     = 0.01
feed_forward            = True
initial_connection      = full
node_add_prob           = 0.2
num_inputs              = 6
num_outputs             = 2
weight_init_range       = 1.0
weight_mutate_power     = 0.5
weight_mutate_rate      = 0.8

[DefaultSpeciesSet]
compatibility_threshold = 3.0

[DefaultStagnation]
species_fitness_func = max
max_stagnation       = 20
species_elitism      = 2

[DefaultReproduction]
elitism            = 2
survival_threshold = 0.2
`

func mustConfig(t *testing.T, replace ...string) *Config {
	t.Helper()
	cfg, err := ParseConfig([]byte(strings.NewReplacer(replace...).Replace(testConfig)))
	require.NoError(t, err)
	return cfg
}

func TestParseConfig(t *testing.T) {
	cfg := mustConfig(t)

	assert.Equal(t, 20, cfg.Neat.PopSize)
	assert.Equal(t, "max", cfg.Neat.FitnessCriterion)
	assert.True(t, cfg.Neat.ResetOnExtinction)
	assert.True(t, cfg.Genome.FeedForward)
	assert.Equal(t, []string{"sigmoid", "tanh"}, cfg.Genome.ActivationOptions)
	assert.Equal(t, 2, cfg.Reproduction.Elitism)
	assert.Equal(t, 1, cfg.Reproduction.MinSpeciesSize, "default applied")

	assert.Equal(t, 6, cfg.Layout.Inputs)
	assert.Equal(t, 2, cfg.Layout.Outputs)
	assert.Equal(t, 1.0, cfg.Layout.ConnectionProb)
	assert.Equal(t, neatmath.SigmoidSteepenedActivation, cfg.Layout.Output)
	assert.Equal(t, []neatmath.NodeActivationType{
		neatmath.SigmoidSteepenedActivation, neatmath.TanhActivation,
	}, cfg.Layout.Hidden)
}

func TestConfigMapsOntoGoNEATOptions(t *testing.T) {
	opts := mustConfig(t).Options
	require.NotNil(t, opts)

	assert.Equal(t, 20, opts.PopSize)
	assert.Equal(t, 0.5, opts.MutateAddLinkProb)
	assert.Equal(t, 0.2, opts.MutateAddNodeProb)
	assert.Equal(t, 0.01, opts.MutateToggleEnableProb)
	assert.Equal(t, 0.5, opts.WeightMutPower)
	assert.Equal(t, 0.8, opts.MutateLinkWeightsProb)
	assert.Equal(t, 1.0, opts.DisjointCoeff)
	assert.Equal(t, 1.0, opts.ExcessCoeff)
	assert.Equal(t, 0.5, opts.MutdiffCoeff)
	assert.Equal(t, 3.0, opts.CompatThreshold)
	assert.Equal(t, 20, opts.DropOffAge)
	assert.Equal(t, 0.2, opts.SurvivalThresh)
	assert.Zero(t, opts.RecurOnlyProb)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"unknown activation", "activation_options      = sigmoid tanh", "activation_options      = bogus"},
		{"unknown default", "activation_default      = sigmoid", "activation_default      = bogus"},
		{"bad criterion", "fitness_criterion     = max", "fitness_criterion     = best"},
		{"bad connection", "initial_connection      = full", "initial_connection      = everything"},
		{"partial without fraction", "initial_connection      = full", "initial_connection      = partial_direct"},
		{"recurrent", "feed_forward            = True", "feed_forward            = False"},
		{"no inputs", "num_inputs              = 6", "num_inputs              = 0"},
		{"probability out of range", "conn_add_prob           = 0.5", "conn_add_prob           = 1.5"},
		{"missing section", "[DefaultSpeciesSet]", "[Other]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(strings.Replace(testConfig, tt.old, tt.new, 1)))
			assert.Error(t, err)
		})
	}
}

func TestParsePartialConnection(t *testing.T) {
	cfg := mustConfig(t, "initial_connection      = full", "initial_connection      = partial_direct 0.5")
	assert.InDelta(t, 0.5, cfg.Layout.ConnectionProb, 1e-12)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neat.ini")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Genome.NumInputs)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestRepositoryConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "neat_config.ini"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Genome.NumInputs)
	assert.Equal(t, 2, cfg.Genome.NumOutputs)
	assert.True(t, cfg.Genome.FeedForward)
}
