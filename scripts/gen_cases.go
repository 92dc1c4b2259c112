// gen_cases.go — standalone script to generate a random batch input file for
// the fuzzdx CLI.
//
// Usage:
//
//	go run scripts/gen_cases.go -n 100 -out cases.txt -seed 42
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

func main() {
	n := flag.Int("n", 50, "number of cases to generate")
	out := flag.String("out", "cases.txt", "output file")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < *n; i++ {
		heartRate := 60 + rng.Float64()*60 // [60,120]
		worry := rng.Float64() * 10
		sleep := rng.Float64() * 10
		tension := rng.Float64() * 10
		fmt.Fprintf(w, "%.1f,%.1f,%.1f,%.1f\n", heartRate, worry, sleep, tension)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("wrote %d cases to %s\n", *n, *out)
}
