package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	hll "github.com/sawmills/go-hll"
	"github.com/sawmills/go-hll/hllfmt"
)

func main() {
	// Create a shared configuration so the sketches below can be merged.
	config, err := hll.NewConfig(12)
	if err != nil {
		panic(err)
	}

	// Count distinct visitors across two overlapping traffic shards.
	shardA := hll.NewSketch[string](config)
	for i := 0; i < 60000; i++ {
		shardA.Insert(fmt.Sprintf("visitor-%d", i))
	}

	shardB := hll.NewSketch[string](config)
	for i := 40000; i < 100000; i++ {
		shardB.Insert(fmt.Sprintf("visitor-%d", i))
	}

	estimate, kind := shardA.Estimate()
	fmt.Printf("shard A: ~%s distinct visitors (%s)\n",
		humanize.CommafWithDigits(estimate, 0), kind)

	estimate, kind = shardB.Estimate()
	fmt.Printf("shard B: ~%s distinct visitors (%s)\n",
		humanize.CommafWithDigits(estimate, 0), kind)

	// Merge shard B into shard A to estimate the union.
	if err := shardA.Merge(shardB); err != nil {
		panic(err)
	}

	fmt.Println(hllfmt.Summary(shardA))
	fmt.Println()

	// Dump the register rank distribution of the merged sketch.
	if err := hllfmt.Histogram(os.Stdout, shardA); err != nil {
		panic(err)
	}
}
