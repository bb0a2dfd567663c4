package gates

import "github.com/rhartert/yagh"

// Scan recovers a gate structure from the given clause handles.
//
// Discovery is breadth-first from the unit-clause literals: whenever a
// candidate literal turns out to be a gate output, the gate's clauses
// are removed from the occurrence list and its inputs become the next
// round's candidates. Clause removal is what makes nested gates
// recognizable at all: a literal used as input by a not-yet-recovered
// gate is not blocked until that gate's clauses are gone.
//
// The clause handles must reference clauses with at least one literal
// and no duplicate or complementary literal pairs.
func Scan[C comparable](fns ClauseFuncs[C], clauses []C) Structure[C] {
	occs := newOccList(fns, clauses)
	sc := &scanner[C]{
		fns:   fns,
		occs:  occs,
		order: yagh.New[int](occs.MaxLitIndex() + 1),
	}

	result := Structure[C]{}
	roots := append([]Literal(nil), occs.Unaries()...)
	for _, root := range roots {
		occs.RemoveUnary(root)
		sc.extend(&result, root)
	}
	return result
}

type scanner[C comparable] struct {
	fns  ClauseFuncs[C]
	occs *occList[C]

	// Candidates of the current BFS round, keyed by literal index and
	// prioritized by estimated occurrence lookup cost.
	order *yagh.IntMap[int]
}

// extend grows the structure with all gates reachable from root.
//
// If no gate is found for a candidate X, then either X really is not a
// gate output (ignored), or its gate cannot be recognized by the
// implemented matchers (also ignored), or X is still used as input of
// another gate whose clauses pollute the occurrence lists of X and its
// opposite. In the last case X automatically becomes a candidate again
// when the last gate having X or its opposite as input is recovered.
func (sc *scanner[C]) extend(result *Structure[C], root Literal) {
	current := []Literal{root}
	next := newLitSet(sc.occs.MaxLitIndex() + 1)
	inputs := newLitSet(sc.occs.MaxLitIndex() + 1)

	foundAny := false

	for len(current) > 0 {
		// Visit cheap literals first, so that removals are reconciled
		// in the occurrence list while they are cheap. This makes the
		// frequent cheap lookups even cheaper and concentrates the
		// pending-buffer work on the rare expensive literals.
		for _, candidate := range current {
			sc.order.Put(candidate.Index(), sc.occs.EstimatedLookupCost(candidate))
		}

		for {
			entry, ok := sc.order.Pop()
			if !ok {
				break
			}
			candidate := Literal(entry.Elem)

			isNonMono := inputs.Contains(candidate) && inputs.Contains(candidate.Opposite())

			gate, ok := sc.tryGetGate(candidate, !isNonMono)
			if !ok {
				continue
			}

			sc.occs.RemoveGateRoot(gate.Output)

			for _, in := range gate.Inputs {
				next.Add(in)
				inputs.Add(in)
				if !gate.IsNestedMonotonically {
					inputs.Add(in.Opposite())
				}
			}

			result.Gates = append(result.Gates, gate)
			foundAny = true
		}

		current = append(current[:0], next.Literals()...)
		next.Clear()
	}

	if foundAny {
		result.Roots = append(result.Roots, []Literal{root})
	}
}

// tryGetGate probes output and, on success, assembles the gate record
// from the occurrence list's current clause lists.
func (sc *scanner[C]) tryGetGate(output Literal, isNestedMonotonically bool) (Gate[C], bool) {
	if !isGateOutput(sc.fns, output, sc.occs, isNestedMonotonically) {
		return Gate[C]{}, false
	}

	fwd := sc.occs.Clauses(output.Opposite())
	gate := Gate[C]{
		Output:                output,
		NumFwd:                len(fwd),
		Clauses:               append([]C(nil), fwd...),
		IsNestedMonotonically: isNestedMonotonically,
	}
	gate.Clauses = append(gate.Clauses, sc.occs.Clauses(output)...)
	gate.Inputs = gateInputs(sc.fns, &gate)
	return gate, true
}

// gateInputs returns the distinct non-output literals of the gate's
// forward clauses, in order of first appearance.
func gateInputs[C comparable](fns ClauseFuncs[C], g *Gate[C]) []Literal {
	outputVar := g.Output.VarID()

	var result []Literal
	for _, c := range g.Clauses[:g.NumFwd] {
		for i := 0; i < fns.Size(c); i++ {
			lit := fns.Lit(c, i)
			if lit.VarID() == outputVar {
				continue
			}
			if !containsLit(result, lit) {
				result = append(result, lit)
			}
		}
	}
	return result
}

func containsLit(s []Literal, v Literal) bool {
	for _, l := range s {
		if l == v {
			return true
		}
	}
	return false
}
