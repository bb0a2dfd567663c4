package gates

import (
	"sort"
	"strings"
)

// Test factories for gate encodings. Gates are built over *IntClause
// handles with DIMACS-style integer literals; the Inputs field is
// derived from the forward clauses exactly like the scanner derives it,
// so factory gates compare equal to scanned gates.

var testFns = IntClauses{}

func newGate(fwd, bwd []*IntClause, output int) Gate[*IntClause] {
	g := Gate[*IntClause]{
		Output:  FromDimacs(output),
		NumFwd:  len(fwd),
		Clauses: append(append([]*IntClause{}, fwd...), bwd...),
	}
	g.Inputs = gateInputs(testFns, &g)
	return g
}

// andGate returns the standard encoding of output <-> AND(inputs).
func andGate(inputs []int, output int) Gate[*IntClause] {
	fwd := []*IntClause{}
	bwdLits := []int{output}
	for _, in := range inputs {
		fwd = append(fwd, NewIntClause(in, -output))
		bwdLits = append(bwdLits, -in)
	}
	return newGate(fwd, []*IntClause{NewIntClause(bwdLits...)}, output)
}

// orGate returns the standard encoding of output <-> OR(inputs).
func orGate(inputs []int, output int) Gate[*IntClause] {
	fwdLits := []int{-output}
	bwd := []*IntClause{}
	for _, in := range inputs {
		fwdLits = append(fwdLits, in)
		bwd = append(bwd, NewIntClause(output, -in))
	}
	return newGate([]*IntClause{NewIntClause(fwdLits...)}, bwd, output)
}

// xorGate returns the full encoding of output <-> lhs XOR rhs.
func xorGate(lhs, rhs, output int) Gate[*IntClause] {
	fwd := []*IntClause{
		NewIntClause(-output, -lhs, -rhs),
		NewIntClause(-output, lhs, rhs),
	}
	bwd := []*IntClause{
		NewIntClause(output, -lhs, rhs),
		NewIntClause(output, lhs, -rhs),
	}
	return newGate(fwd, bwd, output)
}

// mono marks the gate as monotonically nested and drops its backward
// clauses, as a Plaisted-Greenbaum style encoding would.
func mono(g Gate[*IntClause]) Gate[*IntClause] {
	g.Clauses = g.Clauses[:g.NumFwd]
	g.IsNestedMonotonically = true
	return g
}

// monoFull marks the gate as monotonically nested but keeps the full
// encoding, as happens when the containing structure never needed the
// backward clauses but the encoder emitted them anyway.
func monoFull(g Gate[*IntClause]) Gate[*IntClause] {
	g.IsNestedMonotonically = true
	return g
}

// structureOf assembles a Structure from gates and DIMACS root groups.
func structureOf(gs []Gate[*IntClause], roots [][]int) Structure[*IntClause] {
	s := Structure[*IntClause]{Gates: gs}
	for _, root := range roots {
		lits := make([]Literal, len(root))
		for i, l := range root {
			lits[i] = FromDimacs(l)
		}
		s.Roots = append(s.Roots, lits)
	}
	return s
}

// clausesOf returns the scanner input for a structure: every gate's
// clauses followed by one unit clause per root literal and any
// additional clauses.
func clausesOf(s Structure[*IntClause], additional ...*IntClause) []*IntClause {
	result := []*IntClause{}
	for i := range s.Gates {
		result = append(result, s.Gates[i].Clauses...)
	}
	for _, root := range s.Roots {
		for _, l := range root {
			result = append(result, NewIntClause(l.Dimacs()))
		}
	}
	return append(result, additional...)
}

// clauseKey is a content-based sort key for clause handles.
func clauseKey(c *IntClause) string {
	parts := []string{}
	for _, l := range *c {
		parts = append(parts, l.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// normalizeGate sorts the permutation-stable fields of a gate so that
// factory gates and scanned gates can be compared structurally. The
// forward/backward split is preserved.
func normalizeGate(g Gate[*IntClause]) Gate[*IntClause] {
	g.Clauses = append([]*IntClause{}, g.Clauses...)
	fwd := g.Clauses[:g.NumFwd]
	bwd := g.Clauses[g.NumFwd:]
	sort.Slice(fwd, func(i, j int) bool { return clauseKey(fwd[i]) < clauseKey(fwd[j]) })
	sort.Slice(bwd, func(i, j int) bool { return clauseKey(bwd[i]) < clauseKey(bwd[j]) })

	g.Inputs = append([]Literal{}, g.Inputs...)
	sort.Slice(g.Inputs, func(i, j int) bool { return g.Inputs[i] < g.Inputs[j] })
	return g
}

// normalizeStructure sorts gates by output literal (discovery order is
// checked separately via the reverse-topological-order invariant).
func normalizeStructure(s Structure[*IntClause]) Structure[*IntClause] {
	gs := make([]Gate[*IntClause], len(s.Gates))
	for i := range s.Gates {
		gs[i] = normalizeGate(s.Gates[i])
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].Output < gs[j].Output })
	return Structure[*IntClause]{Gates: gs, Roots: s.Roots}
}
