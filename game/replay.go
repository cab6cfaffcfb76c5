package game

import (
	"fmt"

	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/neat"
	"github.com/pthm-cable/dino/neural"
)

// NewReplay builds a one-agent generation driven by a saved genome. The
// session ends when the agent collides. The genome's fitness is rescored.
func NewReplay(cfg *config.Config, w *World, g *neat.Genome) (*Generation, error) {
	net, err := neural.NewBrain(g.Genotype)
	if err != nil {
		return nil, fmt.Errorf("replay genome %d: %w", g.Key, err)
	}
	ctrl, err := control.NewNeural(net)
	if err != nil {
		return nil, fmt.Errorf("replay genome %d: %w", g.Key, err)
	}
	return NewGeneration(cfg, w, 0, []Entrant{{Genome: g, Controller: ctrl}}), nil
}
