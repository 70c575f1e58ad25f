// Package parsers reads DIMACS CNF instances. It performs the trivial
// preprocessing the solver's contract expects from its input: duplicate
// literals are dropped, and tautological clauses (containing a literal and
// its negation) are discarded entirely.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/mrushyendra/chalk/internal/sat"
)

// Instance is a parsed CNF formula over variables 1..Variables.
type Instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadFile parses the DIMACS CNF file. Files ending in ".gz" are
// decompressed on the fly.
func LoadFile(filename string) (*Instance, error) {
	rc, err := reader(filename, strings.HasSuffix(filename, ".gz"))
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer rc.Close()
	return Load(rc)
}

// Load parses a DIMACS CNF formula from r.
func Load(r io.Reader) (*Instance, error) {
	b := &builder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return &b.instance, nil
}

// Instantiate loads the instance's clauses into the given solver. The
// solver must have been created for inst.Variables variables.
func Instantiate(s *sat.Solver, inst *Instance) error {
	for _, c := range inst.Clauses {
		if err := s.AddClause(c); err != nil {
			return err
		}
	}
	return nil
}

// builder accumulates an Instance to implement dimacs.Builder.
type builder struct {
	instance Instance
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	b.instance.Variables = nVars
	b.instance.Clauses = make([][]sat.Literal, 0, nClauses)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	// Deduplicate literals and detect tautologies. Clauses containing a
	// complementary pair are always true and never reach the solver.
	seen := make(map[int]struct{}, len(tmpClause))
	clause := make([]sat.Literal, 0, len(tmpClause))
	for _, l := range tmpClause {
		if l == 0 {
			return fmt.Errorf("zero literal inside clause")
		}
		if v := abs(l); v > b.instance.Variables {
			return fmt.Errorf("literal %d out of range [1, %d]", l, b.instance.Variables)
		}
		if _, ok := seen[-l]; ok {
			return nil // tautology
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		clause = append(clause, sat.Literal(l))
	}

	b.instance.Clauses = append(b.instance.Clauses, clause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
