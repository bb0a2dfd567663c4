package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/kr/pretty"
	"github.com/rhartert/gatescan/gates"
	"github.com/rhartert/gatescan/parsers"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagGzipped = flag.Bool(
	"gzip",
	false,
	"read the instance as a gzipped DIMACS file",
)

var flagRounds = flag.Int(
	"rounds",
	4096,
	"number of random simulation rounds",
)

var flagVerbose = flag.Bool(
	"v",
	false,
	"dump the recovered gate structure and the conjectures",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	if *flagRounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1")
	}
	return &config{
		instanceFile: flag.Arg(0),
		gzipped:      *flagGzipped,
		rounds:       *flagRounds,
		verbose:      *flagVerbose,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

type config struct {
	instanceFile string
	gzipped      bool
	rounds       int
	verbose      bool
	memProfile   bool
	cpuProfile   bool
}

func run(cfg *config) error {
	formula, err := parsers.LoadDIMACS(cfg.instanceFile, cfg.gzipped)
	if err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	fmt.Printf("c variables:    %d\n", formula.Variables)
	fmt.Printf("c clauses:      %d\n", len(formula.Clauses))

	fns := gates.IntClauses{}

	t := time.Now()
	structure := gates.Scan(fns, formula.Clauses)
	scanElapsed := time.Since(t)

	fmt.Printf("c gates:        %d\n", len(structure.Gates))
	fmt.Printf("c roots:        %d\n", len(structure.Roots))
	fmt.Printf("c inputs:       %d\n", len(structure.InputVarIndices()))
	fmt.Printf("c scan (sec):   %f\n", scanElapsed.Seconds())

	t = time.Now()
	partitioning := gates.Simulate(fns, &structure, cfg.rounds)
	simElapsed := time.Since(t)

	fmt.Printf("c backbones:    %d\n", len(partitioning.Backbones))
	fmt.Printf("c equivalences: %d\n", len(partitioning.Equivalences))
	fmt.Printf("c sim (sec):    %f\n", simElapsed.Seconds())

	if cfg.verbose {
		fmt.Printf("c structure: %s\n", structure.String())
		pretty.Printf("c partitioning: %# v\n", partitioning)
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
