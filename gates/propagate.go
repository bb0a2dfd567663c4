package gates

import "github.com/rhartert/gatescan/internal/bitvec"

// Propagate evaluates every gate of the structure on the assignment
// columns in assignment, one bit position per simulated assignment.
//
// Gates are evaluated in reverse discovery order. Since Scan appends
// gates in reverse topological order, iterating backwards guarantees
// that every gate's input columns are settled before its output column
// is computed. The assignment map must be sized past the structure's
// maximum variable index.
func Propagate[C comparable](fns ClauseFuncs[C], assignment *bitvec.Map, s *Structure[C]) {
	for i := len(s.Gates) - 1; i >= 0; i-- {
		propagateGate(fns, assignment, &s.Gates[i])
	}
}

// propagateGate computes the output column of a single gate.
//
// The forward clauses (or the backward clauses, whichever side is
// smaller) are checked for being satisfied under the current assignment,
// disregarding the output variable. If the n-th bit of the resulting
// vector is set, the *other* side must unit-propagate the gate's output
// literal under the n-th input assignment; otherwise the checked side
// propagates its own output literal.
//
// Monotonically nested gates always check the forward clauses, since
// they need not carry a full backward side. The output still takes the
// forced value even when it is unconstrained (the simulation uses binary
// assignments, so indeterminacy cannot be expressed); this does not
// violate the gate semantics.
func propagateGate[C comparable](fns ClauseFuncs[C], assignment *bitvec.Map, g *Gate[C]) {
	outVar := g.Output.VarID()

	var side []C
	iteratingFwd := g.IsNestedMonotonically || len(g.Clauses)-g.NumFwd <= g.NumFwd
	if iteratingFwd {
		side = g.Clauses[:g.NumFwd]
	} else {
		side = g.Clauses[g.NumFwd:]
	}

	forcedByOtherSide := bitvec.Ones()

	var satisfied bitvec.Vector
	for _, c := range side {
		satisfied = bitvec.Zeros()
		for i := 0; i < fns.Size(c); i++ {
			lit := fns.Lit(c, i)
			if lit.VarID() == outVar {
				continue
			}
			column := assignment.At(lit.VarID())
			if lit.IsPositive() {
				satisfied.Or(&satisfied, column)
			} else {
				satisfied.OrNot(&satisfied, column)
			}
		}
		forcedByOtherSide.And(&forcedByOtherSide, &satisfied)
	}

	// Forward clauses contain the opposite of the output literal, so if
	// the forward side forces the output, a set bit means the output
	// *literal* is negative; invert accordingly to obtain the value of
	// the output variable.
	fwdForcesOutput := !iteratingFwd
	out := assignment.At(outVar)
	if fwdForcesOutput != g.Output.IsPositive() {
		*out = forcedByOtherSide
	} else {
		out.Not(&forcedByOtherSide)
	}
}
