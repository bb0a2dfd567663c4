package gates

import (
	"fmt"
	"sort"
	"strings"
)

// Gate is the CNF encoding of a functional relationship between input
// variables and an output variable, i.e. a constraint `output <-> F` for
// some formula F over the inputs.
//
// For an in-depth formal treatment of gates and gate structures, see
//
// Iser M., Manthey N., Sinz C. (2015): Recognition of Nested Gates in
// CNF Formulas. In: Theory and Applications of Satisfiability Testing --
// SAT 2015. https://doi.org/10.1007/978-3-319-24318-4_19
type Gate[C comparable] struct {
	// The clauses encoding the gate. Clauses is partitioned: the NumFwd
	// forward clauses (each containing the opposite of Output, encoding
	// `output -> F`) precede the backward clauses (each containing
	// Output). If the gate is nested monotonically, the backward clauses
	// may be omitted; see
	//
	// David A. Plaisted, Steven Greenbaum: A Structure-preserving Clause
	// Form Translation. Journal of Symbolic Computation 2(3), 1986.
	// https://doi.org/10.1016/S0747-7171(86)80028-1
	Clauses []C

	// The gate input literals, distinct, in order of first appearance in
	// the forward clauses. For nonmonotonically nested gates, each
	// literal in this list is an input, as well as its opposite.
	Inputs []Literal

	// The gate output literal. All forward clauses contain its opposite.
	Output Literal

	// The number of forward clauses at the front of Clauses.
	NumFwd int

	// True iff the gate is contained in a gate structure where it is
	// nested monotonically.
	IsNestedMonotonically bool
}

// Structure is a collection of gates recovered from a clause set. It can
// be interpreted as a DAG: gates (and the special root constraints) are
// nodes, and an edge X -> Y exists iff the output of X (or its opposite)
// is an input of Y. Root constraints have no outgoing edges.
type Structure[C comparable] struct {
	// Gates in reverse topological order of discovery: the output
	// variable of Gates[n] does not appear in the inputs of Gates[m] for
	// any m > n. This ordering is a contractual output of Scan.
	Gates []Gate[C]

	// Root constraints, one literal group per unit clause that anchored
	// at least one gate. May be empty.
	Roots [][]Literal
}

// MaxVarIndex returns the maximum variable index occurring in the gate,
// or 0 if the gate is empty.
func (g *Gate[C]) MaxVarIndex(fns ClauseFuncs[C]) int {
	result := g.Output.VarID()
	for _, c := range g.Clauses {
		for i := 0; i < fns.Size(c); i++ {
			if v := fns.Lit(c, i).VarID(); v > result {
				result = v
			}
		}
	}
	return result
}

// MaxVarIndex returns the maximum variable index occurring in the
// structure, or 0 if the structure is empty.
func (s *Structure[C]) MaxVarIndex(fns ClauseFuncs[C]) int {
	result := 0
	for i := range s.Gates {
		if v := s.Gates[i].MaxVarIndex(fns); v > result {
			result = v
		}
	}
	return result
}

// InputVarIndices returns the indices of all variables occurring in some
// gate's inputs but defined by no gate, sorted in ascending order. These
// are the structure's primary inputs.
func (s *Structure[C]) InputVarIndices() []int {
	outputs := map[int]struct{}{}
	vars := map[int]struct{}{}

	for i := range s.Gates {
		outputs[s.Gates[i].Output.VarID()] = struct{}{}
		for _, in := range s.Gates[i].Inputs {
			vars[in.VarID()] = struct{}{}
		}
	}

	result := []int{}
	for v := range vars {
		if _, isOutput := outputs[v]; !isOutput {
			result = append(result, v)
		}
	}
	sort.Ints(result)
	return result
}

// String returns a JSON object representation of the gate, without the
// clause contents (which require a ClauseFuncs to read).
func (g *Gate[C]) String() string {
	return fmt.Sprintf(
		"{\"output\": %d, \"inputs\": %s, \"num_fwd_clauses\": %d, \"is_nested_monotonically\": %t}",
		g.Output.Dimacs(), litsToString(g.Inputs), g.NumFwd, g.IsNestedMonotonically,
	)
}

// String returns a JSON object representation of the structure.
func (s *Structure[C]) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\"gates\": [")
	for i := range s.Gates {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.Gates[i].String())
	}
	sb.WriteString("], \"roots\": [")
	for i, root := range s.Roots {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(litsToString(root))
	}
	sb.WriteString("]}")
	return sb.String()
}

func litsToString(lits []Literal) string {
	sb := strings.Builder{}
	sb.WriteByte('[')
	for i, l := range lits {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", l.Dimacs())
	}
	sb.WriteByte(']')
	return sb.String()
}
