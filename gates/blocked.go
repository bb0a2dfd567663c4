package gates

// isResolventTautologic reports whether the resolvent of lhs and rhs on
// resolutionLit is a tautology, i.e. whether some literal other than the
// resolution literal occurs in lhs and negated in rhs.
func isResolventTautologic[C comparable](fns ClauseFuncs[C], lhs, rhs C, resolutionLit Literal) bool {
	resolutionVar := resolutionLit.VarID()

	for i := 0; i < fns.Size(lhs); i++ {
		lhsLit := fns.Lit(lhs, i)
		if lhsLit.VarID() == resolutionVar {
			continue
		}
		for j := 0; j < fns.Size(rhs); j++ {
			if lhsLit == fns.Lit(rhs, j).Opposite() {
				return true
			}
		}
	}

	return false
}

// isBlocked reports whether l is blocked in the current clause set:
// every resolvent of a clause containing the opposite of l with a clause
// containing l must be tautological. CNF gate encodings are blocked sets
// with the output literal blocked, so this is the scanner's primary
// filter. The check short-circuits on the first non-tautological pair.
func isBlocked[C comparable](fns ClauseFuncs[C], l Literal, occs *occList[C]) bool {
	for _, fwd := range occs.Clauses(l.Opposite()) {
		for _, bwd := range occs.Clauses(l) {
			if !isResolventTautologic(fns, fwd, bwd, l) {
				return false
			}
		}
	}
	return true
}
