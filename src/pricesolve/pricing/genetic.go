package pricing

import (
	"math"
	"math/rand"
	"runtime"

	"github.com/tomcraven/goga"
	"gonum.org/v1/gonum/floats"
)

const (
	populationSize = 200
	maximumRounds  = 2000
)

// Genomes use one bit per (product, level); the first set bit in a
// product's segment is its pick, defaulting to level 0.
func (inst *Instance) numBits() int {
	n := 0
	for _, p := range inst.Products {
		n += len(p.Levels)
	}
	return n
}

func (inst *Instance) picksFromGenome(g goga.Genome) []int {
	bits := g.GetBits().GetAll()
	picks := make([]int, len(inst.Products))
	offset := 0
	for i, p := range inst.Products {
		picks[i] = 0
		for l := 0; l < len(p.Levels); l++ {
			if bits[offset+l] > 0 {
				picks[i] = l
				break
			}
		}
		offset += len(p.Levels)
	}
	return picks
}

func (inst *Instance) fitness(picks []int) int {
	demand := make([]float64, len(picks))
	margin := 0.0
	for i, l := range picks {
		demand[i] = inst.Products[i].Levels[l].Demand
		margin += inst.Products[i].margin(l)
	}
	if floats.Sum(demand) > inst.Capacity {
		return math.MinInt
	}
	return int(margin)
}

type pricingSimulator struct {
	ElapsedRounds int
	MaximumRounds int
	Instance      *Instance
}

func (ps *pricingSimulator) OnBeginSimulation() {
}

func (ps *pricingSimulator) OnEndSimulation() {
	ps.ElapsedRounds++
}

func (ps *pricingSimulator) Simulate(g goga.Genome) {
	g.SetFitness(ps.Instance.fitness(ps.Instance.picksFromGenome(g)))
}

func (ps *pricingSimulator) ExitFunc(g goga.Genome) bool {
	return true
}

type pricingBitsetCreate struct {
	Instance *Instance
}

func (bc *pricingBitsetCreate) Go() goga.Bitset {
	b := goga.Bitset{}
	b.Create(bc.Instance.numBits())
	for i := range bc.Instance.numBits() {
		b.Set(i, rand.Intn(2))
	}
	return b
}

type pricingEliteConsumer struct {
	BestGenome goga.Genome
	Instance   *Instance
}

func (ec *pricingEliteConsumer) OnElite(g goga.Genome) {
	if g.GetFitness() == math.MinInt {
		return
	}
	if ec.BestGenome == nil || ec.BestGenome.GetFitness() < g.GetFitness() {
		ec.BestGenome = g
	}
}

// SolveGenetic searches the pick space with a genetic algorithm, stopping
// after the elite fitness stalls for the given number of rounds. Returns
// nil when no feasible genome was ever seen.
func (inst *Instance) SolveGenetic(rounds int) *Plan {
	mutate := func(g1, g2 goga.Genome) (goga.Genome, goga.Genome) {
		g1BitsOrig := g1.GetBits()
		g1Bits := g1BitsOrig.CreateCopy()
		randomBit := rand.Intn(inst.numBits())
		g1Bits.Set(randomBit, 1-g1Bits.Get(randomBit))
		return goga.NewGenome(g1Bits), goga.NewGenome(*g2.GetBits())
	}

	genAlgo := goga.NewGeneticAlgorithm()
	genAlgo.Simulator = &pricingSimulator{
		MaximumRounds: maximumRounds,
		Instance:      inst,
	}
	genAlgo.BitsetCreate = &pricingBitsetCreate{Instance: inst}
	eliteConsumer := &pricingEliteConsumer{Instance: inst}
	genAlgo.EliteConsumer = eliteConsumer
	genAlgo.Mater = goga.NewMater(
		[]goga.MaterFunctionProbability{
			{P: 0.9, F: goga.TwoPointCrossover, UseElite: true},
			{P: 0.9, F: goga.TwoPointCrossover},
			{P: 0.9, F: mutate},
			{P: 0.9, F: mutate},
			{P: 0.9, F: goga.UniformCrossover},
		},
	)
	genAlgo.Selector = goga.NewSelector(
		[]goga.SelectorFunctionProbability{
			{P: 0.9, F: goga.Roulette},
		},
	)
	genAlgo.Init(populationSize, runtime.NumCPU())

	noImprovRounds := 0
	lastFitness := math.MinInt
	genAlgo.SimulateUntil(func(g goga.Genome) bool {
		if g.GetFitness() == math.MinInt {
			return false
		}
		if g.GetFitness() == lastFitness {
			noImprovRounds++
		} else {
			noImprovRounds = 0
			lastFitness = g.GetFitness()
		}
		return noImprovRounds == rounds
	})

	if eliteConsumer.BestGenome == nil {
		return nil
	}
	picks := inst.picksFromGenome(eliteConsumer.BestGenome)
	pl := inst.planFor("genetic", picks)
	return pl
}
