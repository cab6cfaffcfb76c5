package neural

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Layout describes the fixed part of every genome in a run.
type Layout struct {
	Inputs         int
	Outputs        int
	ConnectionProb float64 // chance of each input-output link, 1 is fully connected
	WeightRange    float64 // initial weights lie in [-WeightRange, WeightRange]
	Output         neatmath.NodeActivationType
	Hidden         []neatmath.NodeActivationType
}

// Nodes returns the number of sensor and output nodes.
func (l Layout) Nodes() int {
	return l.Inputs + l.Outputs
}

// Links returns the number of possible input-output links.
func (l Layout) Links() int {
	return l.Inputs * l.Outputs
}

// CreateGenome creates a genome with the layout's inputs and outputs.
// Inputs take IDs 1..Inputs and outputs follow them. Every output gets at
// least one incoming link so the network always activates.
func CreateGenome(id int, layout Layout, rng *rand.Rand) *genetics.Genome {
	nodes := make([]*network.NNode, 0, layout.Nodes())

	for i := 1; i <= layout.Inputs; i++ {
		node := network.NewNNode(i, network.InputNeuron)
		node.ActivationType = neatmath.LinearActivation
		nodes = append(nodes, node)
	}
	for i := 1; i <= layout.Outputs; i++ {
		node := network.NewNNode(layout.Inputs+i, network.OutputNeuron)
		node.ActivationType = layout.Output
		nodes = append(nodes, node)
	}

	genes := make([]*genetics.Gene, 0, layout.Links())
	weight := func() float64 {
		return (rng.Float64()*2 - 1) * layout.WeightRange
	}
	for j := 0; j < layout.Outputs; j++ {
		out := nodes[layout.Inputs+j]
		connected := false
		for i := 0; i < layout.Inputs; i++ {
			// Innovation numbers are fixed per slot so all genomes align
			innov := int64(i*layout.Outputs + j + 1)
			if rng.Float64() < layout.ConnectionProb {
				genes = append(genes, genetics.NewGeneWithTrait(nil, weight(), nodes[i], out, false, innov, 0))
				connected = true
			}
		}
		if !connected {
			i := rng.Intn(layout.Inputs)
			innov := int64(i*layout.Outputs + j + 1)
			genes = append(genes, genetics.NewGeneWithTrait(nil, weight(), nodes[i], out, false, innov, 0))
		}
	}
	sortGenes(genes)

	return genetics.NewGenome(id, nil, nodes, genes)
}

// CloneGenome creates a deep copy of a genome with a new ID.
func CloneGenome(genome *genetics.Genome, newID int) (*genetics.Genome, error) {
	if genome == nil {
		return nil, fmt.Errorf("cannot clone nil genome")
	}

	nodeMap := make(map[int]*network.NNode, len(genome.Nodes))
	newNodes := make([]*network.NNode, 0, len(genome.Nodes))
	for _, node := range genome.Nodes {
		newNode := copyNode(node)
		nodeMap[node.Id] = newNode
		newNodes = append(newNodes, newNode)
	}

	newGenes := make([]*genetics.Gene, 0, len(genome.Genes))
	for _, gene := range genome.Genes {
		inNode := nodeMap[gene.Link.InNode.Id]
		outNode := nodeMap[gene.Link.OutNode.Id]
		if inNode == nil || outNode == nil {
			return nil, fmt.Errorf("genome %d: gene %d references a missing node", genome.Id, gene.InnovationNum)
		}
		newGene := genetics.NewGeneWithTrait(
			nil,
			gene.Link.ConnectionWeight,
			inNode,
			outNode,
			gene.Link.IsRecurrent,
			gene.InnovationNum,
			gene.MutationNum,
		)
		newGene.IsEnabled = gene.IsEnabled
		newGenes = append(newGenes, newGene)
	}

	return genetics.NewGenome(newID, nil, newNodes, newGenes), nil
}

func copyNode(node *network.NNode) *network.NNode {
	newNode := network.NewNNode(node.Id, node.NeuronType)
	newNode.ActivationType = node.ActivationType
	return newNode
}

// Size returns the number of nodes and enabled links.
func Size(genome *genetics.Genome) (nodes, enabled int) {
	for _, gene := range genome.Genes {
		if gene.IsEnabled {
			enabled++
		}
	}
	return len(genome.Nodes), enabled
}

// ensureConnected re-enables one incoming link of every non-sensor node
// that lost all of them. goNEAT fails to activate a network whose outputs
// cannot be reached.
func ensureConnected(genome *genetics.Genome) {
	incoming := make(map[int][]*genetics.Gene)
	for _, gene := range genome.Genes {
		id := gene.Link.OutNode.Id
		incoming[id] = append(incoming[id], gene)
	}
	for _, genes := range incoming {
		if !anyEnabled(genes) {
			genes[0].IsEnabled = true
		}
	}
}

func anyEnabled(genes []*genetics.Gene) bool {
	for _, g := range genes {
		if g.IsEnabled {
			return true
		}
	}
	return false
}

func sortGenes(genes []*genetics.Gene) {
	sort.Slice(genes, func(i, j int) bool { return genes[i].InnovationNum < genes[j].InnovationNum })
}

// NodeData is the stored form of one node.
type NodeData struct {
	ID         int
	Type       network.NodeNeuronType
	Activation neatmath.NodeActivationType
}

// GeneData is the stored form of one link gene.
type GeneData struct {
	In, Out    int
	Weight     float64
	Enabled    bool
	Recurrent  bool
	Innovation int64
}

// GenomeData is a genome without the pointer graph goNEAT builds, so it can
// be written with encoding/gob.
type GenomeData struct {
	ID    int
	Nodes []NodeData
	Genes []GeneData
}

// EncodeGenome flattens genome.
func EncodeGenome(genome *genetics.Genome) GenomeData {
	data := GenomeData{
		ID:    genome.Id,
		Nodes: make([]NodeData, 0, len(genome.Nodes)),
		Genes: make([]GeneData, 0, len(genome.Genes)),
	}
	for _, node := range genome.Nodes {
		data.Nodes = append(data.Nodes, NodeData{
			ID:         node.Id,
			Type:       node.NeuronType,
			Activation: node.ActivationType,
		})
	}
	for _, gene := range genome.Genes {
		data.Genes = append(data.Genes, GeneData{
			In:         gene.Link.InNode.Id,
			Out:        gene.Link.OutNode.Id,
			Weight:     gene.Link.ConnectionWeight,
			Enabled:    gene.IsEnabled,
			Recurrent:  gene.Link.IsRecurrent,
			Innovation: gene.InnovationNum,
		})
	}
	return data
}

// DecodeGenome rebuilds a genome written by EncodeGenome.
func DecodeGenome(data GenomeData) (*genetics.Genome, error) {
	nodeMap := make(map[int]*network.NNode, len(data.Nodes))
	nodes := make([]*network.NNode, 0, len(data.Nodes))
	for _, nd := range data.Nodes {
		if _, dup := nodeMap[nd.ID]; dup {
			return nil, fmt.Errorf("genome %d: duplicate node %d", data.ID, nd.ID)
		}
		node := network.NewNNode(nd.ID, nd.Type)
		node.ActivationType = nd.Activation
		nodeMap[nd.ID] = node
		nodes = append(nodes, node)
	}

	genes := make([]*genetics.Gene, 0, len(data.Genes))
	for _, gd := range data.Genes {
		in, out := nodeMap[gd.In], nodeMap[gd.Out]
		if in == nil || out == nil {
			return nil, fmt.Errorf("genome %d: link %d->%d references a missing node", data.ID, gd.In, gd.Out)
		}
		gene := genetics.NewGeneWithTrait(nil, gd.Weight, in, out, gd.Recurrent, gd.Innovation, 0)
		gene.IsEnabled = gd.Enabled
		genes = append(genes, gene)
	}

	return genetics.NewGenome(data.ID, nil, nodes, genes), nil
}
