package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pthm-cable/dino/neat"
)

func TestReplayRescoresSavedGenome(t *testing.T) {
	cfg, w := newTestWorld(t)
	ncfg := loadNEATConfig(t)

	g := neat.NewGenome(7)
	g.ConfigureNew(ncfg, rand.New(rand.NewSource(3)))
	g.Fitness = 42

	session, err := NewReplay(cfg, w, g)
	if err != nil {
		t.Fatal(err)
	}
	if g.Fitness != 0 {
		t.Errorf("fitness = %v after NewReplay, want 0", g.Fitness)
	}
	dinos := session.Dinosaurs()
	if len(dinos) != 1 || dinos[0].ID != 7 {
		t.Fatalf("replay agents = %v, want one agent with ID 7", dinos)
	}

	// An obstacle on top of the agent ends the replay on the first tick
	w.AddObstacle(cactusAt(65, 50, 100, cfg.Obstacles.InitialVelocity))
	driver := &HeadlessDriver{DT: cfg.Physics.DT}
	if err := driver.Run(context.Background(), session); err != nil {
		t.Fatal(err)
	}
	if !session.Done() {
		t.Fatal("replay still running after collision")
	}
	if g.Fitness != -cfg.NEAT.CollisionPenalty {
		t.Errorf("fitness = %v, want %v", g.Fitness, -cfg.NEAT.CollisionPenalty)
	}
}
