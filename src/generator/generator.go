package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"ambiguity_crops/src/pricesolve/pricing"
)

// GeneratePricingInstance draws a random pricing instance: every product
// gets an ascending price ladder whose predicted demand decreases with
// price, with lognormal noise on the base demand.
func GeneratePricingInstance(rng *rand.Rand, numProducts, numLevels int, capacityRatio float64) *pricing.Instance {
	inst := &pricing.Instance{
		Products: make([]pricing.Product, numProducts),
	}

	maxDemand := 0.0
	for i := range inst.Products {
		unitCost := 1 + 9*rng.Float64()
		baseDemand := 100 * math.Exp(0.5*rng.NormFloat64())
		basePrice := unitCost * (1.2 + rng.Float64())

		levels := make([]pricing.PriceLevel, numLevels)
		for l := range levels {
			price := basePrice * (1 + 0.15*float64(l))
			slope := 1 - float64(l)/float64(numLevels+1)
			levels[l] = pricing.PriceLevel{
				Price:  math.Round(price*100) / 100,
				Demand: math.Round(baseDemand * slope),
			}
		}
		inst.Products[i] = pricing.Product{
			Name:     fmt.Sprintf("product_%d", i),
			UnitCost: math.Round(unitCost*100) / 100,
			Levels:   levels,
		}
		maxDemand += levels[0].Demand
	}

	inst.Capacity = math.Round(maxDemand * capacityRatio)
	return inst
}

func main() {
	var outPath string
	var numProducts, numLevels int
	var capacityRatio float64
	var seed int64

	flag.StringVar(&outPath, "out", "out.yaml", "The output file")
	flag.IntVar(&numProducts, "products", 10, "The number of products")
	flag.IntVar(&numLevels, "levels", 5, "The number of price levels per product")
	flag.Float64Var(&capacityRatio, "capacity-ratio", 0.7,
		"Order capacity as a fraction of the maximum total demand")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.Parse()

	if numProducts <= 0 || numLevels <= 0 {
		fmt.Fprintln(os.Stderr, "products and levels must be positive")
		os.Exit(1)
	}

	inst := GeneratePricingInstance(rand.New(rand.NewSource(seed)), numProducts, numLevels, capacityRatio)
	data, err := yaml.Marshal(inst)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d products to %v\n", numProducts, outPath)
}
