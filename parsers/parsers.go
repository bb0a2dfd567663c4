// Package parsers loads DIMACS CNF instances into the clause
// representation consumed by the gates package. It is a client-side
// convenience: the library core itself never parses anything and only
// references clause handles supplied to it.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"
	"github.com/rhartert/gatescan/gates"
)

// Formula is a parsed CNF instance. Clause storage is owned by the
// formula; the gates package only references it by handle.
type Formula struct {
	Variables int
	Clauses   []*gates.IntClause
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

// LoadDIMACS parses the DIMACS CNF file and returns its formula.
func LoadDIMACS(filename string, gzipped bool) (*Formula, error) {
	reader, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer reader.Close()

	b := &builder{formula: &Formula{}}
	if err := dimacs.ReadBuilder(reader, b); err != nil {
		return nil, err
	}
	return b.formula, nil
}

// builder accumulates clauses to implement dimacs.Builder.
type builder struct {
	formula *Formula
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem")
	}
	b.formula.Variables = nVars
	b.formula.Clauses = make([]*gates.IntClause, 0, nClauses)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make(gates.IntClause, len(tmpClause))
	for i, l := range tmpClause {
		clause[i] = gates.FromDimacs(l)
	}
	b.formula.Clauses = append(b.formula.Clauses, &clause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}
