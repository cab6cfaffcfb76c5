package neural

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Mutation constants
const (
	perturbProb         = 0.9 // Probability of perturbing vs replacing weights
	maxConnectionWeight = 8.0 // Maximum absolute connection weight
	maxLinkAttempts     = 20  // Maximum attempts to find a new connection
	disableInheritProb  = 0.75
)

// Innovations hands out node IDs and innovation numbers. Within one
// generation the same structural mutation gets the same numbers in every
// genome, so crossover lines them up.
type Innovations struct {
	nextNode  int
	nextInnov int64
	links     map[[2]int]int64
	splits    map[int64]splitInnovation
}

type splitInnovation struct {
	node            int
	inLink, outLink int64
}

// NewInnovations starts numbering after the layout's fixed nodes and links.
func NewInnovations(layout Layout) *Innovations {
	in := &Innovations{
		nextNode:  layout.Nodes() + 1,
		nextInnov: int64(layout.Links()) + 1,
	}
	in.NextGeneration()
	return in
}

// NextGeneration forgets this generation's structural mutations.
func (in *Innovations) NextGeneration() {
	in.links = make(map[[2]int]int64)
	in.splits = make(map[int64]splitInnovation)
}

func (in *Innovations) innovation() int64 {
	num := in.nextInnov
	in.nextInnov++
	return num
}

func (in *Innovations) link(from, to int) int64 {
	key := [2]int{from, to}
	if num, ok := in.links[key]; ok {
		return num
	}
	num := in.innovation()
	in.links[key] = num
	return num
}

func (in *Innovations) split(innov int64) splitInnovation {
	if s, ok := in.splits[innov]; ok {
		return s
	}
	s := splitInnovation{node: in.nextNode, inLink: in.innovation(), outLink: in.innovation()}
	in.nextNode++
	in.splits[innov] = s
	return s
}

// CrossoverGenomes performs NEAT-style crossover between two parent genomes.
// Genes are aligned by innovation number. The child keeps the topology of
// the fitter parent, or of parent1 on a tie; matching genes take either
// parent's weight.
func CrossoverGenomes(parent1, parent2 *genetics.Genome, fitness1, fitness2 float64, childID int, rng *rand.Rand) (*genetics.Genome, error) {
	if parent1 == nil || parent2 == nil {
		return nil, fmt.Errorf("cannot crossover nil genomes")
	}

	primary, secondary := parent1, parent2
	if fitness2 > fitness1 {
		primary, secondary = parent2, parent1
	}

	secondaryGenes := make(map[int64]*genetics.Gene, len(secondary.Genes))
	for _, gene := range secondary.Genes {
		secondaryGenes[gene.InnovationNum] = gene
	}

	childNodeMap := make(map[int]*network.NNode, len(primary.Nodes))
	childNodes := make([]*network.NNode, 0, len(primary.Nodes))
	for _, node := range primary.Nodes {
		childNode := copyNode(node)
		childNodeMap[childNode.Id] = childNode
		childNodes = append(childNodes, childNode)
	}
	sort.Slice(childNodes, func(i, j int) bool { return childNodes[i].Id < childNodes[j].Id })

	childGenes := make([]*genetics.Gene, 0, len(primary.Genes))
	for _, pGene := range primary.Genes {
		selected := pGene
		enabled := pGene.IsEnabled
		if sGene, ok := secondaryGenes[pGene.InnovationNum]; ok {
			if rng.Float64() < 0.5 {
				selected = sGene
			}
			if !pGene.IsEnabled || !sGene.IsEnabled {
				enabled = rng.Float64() >= disableInheritProb
			}
		}

		childGene := genetics.NewGeneWithTrait(
			nil,
			selected.Link.ConnectionWeight,
			childNodeMap[pGene.Link.InNode.Id],
			childNodeMap[pGene.Link.OutNode.Id],
			pGene.Link.IsRecurrent,
			pGene.InnovationNum,
			selected.MutationNum,
		)
		childGene.IsEnabled = enabled
		childGenes = append(childGenes, childGene)
	}

	child := genetics.NewGenome(childID, nil, childNodes, childGenes)
	ensureConnected(child)
	return child, nil
}

func mutateWeights(genome *genetics.Genome, power float64, rng *rand.Rand) {
	for _, gene := range genome.Genes {
		if rng.Float64() < perturbProb {
			gene.Link.ConnectionWeight += (rng.Float64()*2 - 1) * power
		} else {
			gene.Link.ConnectionWeight = rng.Float64()*4 - 2
		}
		gene.Link.ConnectionWeight = clampWeight(gene.Link.ConnectionWeight)
	}
}

// clampWeight clamps a connection weight to the valid range.
func clampWeight(w float64) float64 {
	return math.Max(-maxConnectionWeight, math.Min(maxConnectionWeight, w))
}

func addNode(genome *genetics.Genome, innov *Innovations, activators []neatmath.NodeActivationType, rng *rand.Rand) bool {
	enabledGenes := make([]*genetics.Gene, 0, len(genome.Genes))
	for _, gene := range genome.Genes {
		if gene.IsEnabled {
			enabledGenes = append(enabledGenes, gene)
		}
	}
	if len(enabledGenes) == 0 {
		return false
	}

	geneToSplit := enabledGenes[rng.Intn(len(enabledGenes))]
	s := innov.split(geneToSplit.InnovationNum)
	for _, node := range genome.Nodes {
		if node.Id == s.node {
			// Already split this link in an earlier mutation
			return false
		}
	}
	geneToSplit.IsEnabled = false

	newNode := network.NewNNode(s.node, network.HiddenNeuron)
	newNode.ActivationType = activators[rng.Intn(len(activators))]

	// old_in -> new_node keeps the signal, new_node -> old_out keeps the weight
	gene1 := genetics.NewGeneWithTrait(nil, 1.0, geneToSplit.Link.InNode, newNode, false, s.inLink, 0)
	gene2 := genetics.NewGeneWithTrait(nil, geneToSplit.Link.ConnectionWeight, newNode, geneToSplit.Link.OutNode, false, s.outLink, 0)

	genome.Nodes = append(genome.Nodes, newNode)
	genome.Genes = append(genome.Genes, gene1, gene2)
	return true
}

func addLink(genome *genetics.Genome, innov *Innovations, rng *rand.Rand) bool {
	var inputs, outputs, hidden []*network.NNode
	for _, node := range genome.Nodes {
		switch node.NeuronType {
		case network.InputNeuron, network.BiasNeuron:
			inputs = append(inputs, node)
		case network.OutputNeuron:
			outputs = append(outputs, node)
		case network.HiddenNeuron:
			hidden = append(hidden, node)
		}
	}

	sources := append(inputs, hidden...)
	targets := append(append([]*network.NNode(nil), hidden...), outputs...)
	if len(sources) == 0 || len(targets) == 0 {
		return false
	}

	existing := make(map[int64]bool, len(genome.Genes))
	for _, gene := range genome.Genes {
		existing[connectionKey(gene.Link.InNode.Id, gene.Link.OutNode.Id)] = true
	}

	for attempt := 0; attempt < maxLinkAttempts; attempt++ {
		source := sources[rng.Intn(len(sources))]
		target := targets[rng.Intn(len(targets))]

		if source.Id == target.Id || existing[connectionKey(source.Id, target.Id)] {
			continue
		}
		// Keep the network feed-forward
		if reaches(genome, target.Id, source.Id) {
			continue
		}

		newGene := genetics.NewGeneWithTrait(
			nil,
			rng.Float64()*4-2,
			source,
			target,
			false,
			innov.link(source.Id, target.Id),
			0,
		)
		genome.Genes = append(genome.Genes, newGene)
		return true
	}
	return false
}

// reaches reports whether a path of links, enabled or not, leads from one
// node to another.
func reaches(genome *genetics.Genome, from, to int) bool {
	next := make(map[int][]int)
	for _, gene := range genome.Genes {
		next[gene.Link.InNode.Id] = append(next[gene.Link.InNode.Id], gene.Link.OutNode.Id)
	}
	seen := map[int]bool{from: true}
	stack := []int{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		for _, n := range next[id] {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return false
}

// connectionKey creates a unique key for a connection between two nodes.
func connectionKey(inID, outID int) int64 {
	return int64(inID)<<32 | int64(outID)
}

func toggleEnable(genome *genetics.Genome, rng *rand.Rand) {
	if len(genome.Genes) == 0 {
		return
	}
	gene := genome.Genes[rng.Intn(len(genome.Genes))]
	gene.IsEnabled = !gene.IsEnabled

	// A node must keep one enabled incoming link
	if !gene.IsEnabled {
		outID := gene.Link.OutNode.Id
		for _, g := range genome.Genes {
			if g.Link.OutNode.Id == outID && g.IsEnabled {
				return
			}
		}
		gene.IsEnabled = true
	}
}

// MutateGenome applies weight and structural mutations with the rates in
// opts. Hidden nodes draw their activator from activators.
func MutateGenome(genome *genetics.Genome, opts *neat.Options, innov *Innovations, activators []neatmath.NodeActivationType, rng *rand.Rand) (bool, error) {
	if genome == nil {
		return false, fmt.Errorf("cannot mutate nil genome")
	}
	if len(activators) == 0 {
		return false, fmt.Errorf("no hidden node activators")
	}

	mutated := false
	if rng.Float64() < opts.MutateLinkWeightsProb {
		mutateWeights(genome, opts.WeightMutPower, rng)
		mutated = true
	}
	if rng.Float64() < opts.MutateAddNodeProb && addNode(genome, innov, activators, rng) {
		mutated = true
	}
	if rng.Float64() < opts.MutateAddLinkProb && addLink(genome, innov, rng) {
		mutated = true
	}
	if rng.Float64() < opts.MutateToggleEnableProb {
		toggleEnable(genome, rng)
		mutated = true
	}
	return mutated, nil
}

// GenomeCompatibility calculates the compatibility distance between two genomes.
func GenomeCompatibility(g1, g2 *genetics.Genome, opts *neat.Options) float64 {
	if g1 == nil || g2 == nil {
		return math.MaxFloat64
	}

	genes1 := make(map[int64]*genetics.Gene, len(g1.Genes))
	maxInnov1 := int64(0)
	for _, gene := range g1.Genes {
		genes1[gene.InnovationNum] = gene
		maxInnov1 = max(maxInnov1, gene.InnovationNum)
	}
	genes2 := make(map[int64]*genetics.Gene, len(g2.Genes))
	maxInnov2 := int64(0)
	for _, gene := range g2.Genes {
		genes2[gene.InnovationNum] = gene
		maxInnov2 = max(maxInnov2, gene.InnovationNum)
	}

	matching, disjoint, excess := 0, 0, 0
	weightDiff := 0.0
	for innov, gene1 := range genes1 {
		if gene2, exists := genes2[innov]; exists {
			matching++
			weightDiff += math.Abs(gene1.Link.ConnectionWeight - gene2.Link.ConnectionWeight)
		} else if innov > maxInnov2 {
			excess++
		} else {
			disjoint++
		}
	}
	for innov := range genes2 {
		if _, exists := genes1[innov]; !exists {
			if innov > maxInnov1 {
				excess++
			} else {
				disjoint++
			}
		}
	}

	// Small genomes are not normalized
	n := float64(max(len(g1.Genes), len(g2.Genes)))
	if n < 20 {
		n = 1
	}

	avgWeightDiff := 0.0
	if matching > 0 {
		avgWeightDiff = weightDiff / float64(matching)
	}

	return (opts.ExcessCoeff*float64(excess)+opts.DisjointCoeff*float64(disjoint))/n +
		opts.MutdiffCoeff*avgWeightDiff
}
