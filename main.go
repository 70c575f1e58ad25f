// Command chalk decides the satisfiability of a CNF formula given in DIMACS
// format. On satisfiable instances it prints "sat" followed by the
// assignment literals and exits with code 1; on unsatisfiable instances it
// prints "unsat" and exits with code 0. Input errors exit with a negative
// code.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/mrushyendra/chalk/internal/sat"
	"github.com/mrushyendra/chalk/parsers"
)

const exitInputError = -1

var flagVerbose = flag.Bool(
	"v",
	false,
	"print search statistics as DIMACS comment lines on stderr",
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

type config struct {
	instanceFile string
	verbose      bool
	memProfile   bool
	cpuProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		verbose:      *flagVerbose,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

// run solves the instance and returns the process exit code.
func run(cfg *config) (int, error) {
	instance, err := parsers.LoadFile(cfg.instanceFile)
	if err != nil {
		return exitInputError, fmt.Errorf("could not parse instance: %w", err)
	}

	s := sat.NewSolver(instance.Variables, sat.DefaultOptions)
	if err := parsers.Instantiate(s, instance); err != nil {
		return exitInputError, fmt.Errorf("could not load instance: %w", err)
	}

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "c variables:  %d\n", instance.Variables)
		fmt.Fprintf(os.Stderr, "c clauses:    %d\n", len(instance.Clauses))
		fmt.Fprintf(os.Stderr, "c time (sec): %f\n", elapsed.Seconds())
		fmt.Fprintf(os.Stderr, "c decisions:  %d\n", s.TotalDecisions)
		fmt.Fprintf(os.Stderr, "c conflicts:  %d\n", s.TotalConflicts)
		fmt.Fprintf(os.Stderr, "c learnts:    %d\n", s.NumLearnts())
		fmt.Fprintf(os.Stderr, "c status:     %s\n", status)
	}

	if status != sat.True {
		fmt.Println("unsat")
		return 0, nil
	}

	parts := make([]string, 0, instance.Variables+1)
	parts = append(parts, "sat")
	for _, l := range s.Model() {
		parts = append(parts, l.String())
	}
	fmt.Println(strings.Join(parts, " "))
	return 1, nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInputError)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
	}

	code, err := run(cfg)

	// Exiting through os.Exit skips deferred calls, so the profile is
	// stopped explicitly before any exit path.
	if cfg.cpuProfile {
		pprof.StopCPUProfile()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	os.Exit(code)
}
