package gates

import (
	"math"
	"sort"
)

// tryGetGateInputs returns the sorted input variable indices of a
// potential gate with the given output literal, or nil if the variable
// sets of the forward and backward clauses differ.
//
// Assumption: output is blocked. This check rarely fails once
// blockedness holds (well under 2% of all calls), but it may only err on
// the side of rejecting.
func tryGetGateInputs[C comparable](fns ClauseFuncs[C], output Literal, occs *occList[C]) []int {
	outputVar := output.VarID()

	collect := func(clauses []C) []int {
		var vars []int
		for _, c := range clauses {
			for i := 0; i < fns.Size(c); i++ {
				v := fns.Lit(c, i).VarID()
				if v != outputVar && !containsInt(vars, v) {
					vars = append(vars, v)
				}
			}
		}
		return vars
	}

	fwdVars := collect(occs.Clauses(output.Opposite()))
	bwdVars := collect(occs.Clauses(output))

	if len(fwdVars) != len(bwdVars) {
		return nil
	}
	sort.Ints(fwdVars)
	sort.Ints(bwdVars)
	for i, v := range fwdVars {
		if bwdVars[i] != v {
			return nil
		}
	}
	return fwdVars
}

// numCoveredInputCombinations sums, over the given clauses, the number
// of input assignments under which the clause propagates the output.
// A clause of size s leaves numInputs+1-s variables unconstrained.
func numCoveredInputCombinations[C comparable](fns ClauseFuncs[C], clauses []C, numInputs int) uint64 {
	var result uint64
	for _, c := range clauses {
		result += uint64(1) << (numInputs + 1 - fns.Size(c))
	}
	return result
}

// isJoinedClauseTaut reports whether the union of lhs and rhs contains a
// complementary literal pair.
func isJoinedClauseTaut[C comparable](fns ClauseFuncs[C], lhs, rhs C) bool {
	for i := 0; i < fns.Size(lhs); i++ {
		l := fns.Lit(lhs, i)
		for j := 0; j < fns.Size(rhs); j++ {
			if l == fns.Lit(rhs, j).Opposite() {
				return true
			}
		}
	}
	return false
}

// arePairwiseJoinedClausesAllTaut checks that any two distinct clauses
// of the same side cover disjoint input assignments. Clauses of full
// length numInputs+1 cover a single assignment each and are already
// accounted for by the covering count, so they are skipped.
func arePairwiseJoinedClausesAllTaut[C comparable](fns ClauseFuncs[C], clauses []C, numInputs int) bool {
	for i, lhs := range clauses {
		if fns.Size(lhs) == numInputs+1 {
			continue
		}
		for j, rhs := range clauses {
			if i == j || fns.Size(rhs) == numInputs+1 {
				continue
			}
			if !isJoinedClauseTaut(fns, lhs, rhs) {
				return false
			}
		}
	}
	return true
}

// isFullGateOrSSROptimized detects gates in which each input assignment
// causes exactly one clause to propagate the output. XOR and ITE gates,
// and gates with one clause per possible input assignment, are special
// cases of this class.
//
// The matcher also recognizes encodings in which literals were omitted
// from clauses via self-subsuming resolution (because they are
// don't-cares relative to some partial input assignment), like
//
//	( a,  b, -o)
//	    (-b, -o)
//	(-a,  b,  o)
//
// where the assignment of a is irrelevant for o when b is true.
//
// The check computes the number of input assignments covered by each
// clause and compares the total to the number of possible input
// assignments. If additionally the union of any two distinct clauses on
// a side is tautologic, each assignment is covered by exactly one clause
// per side. The two sides can be checked separately because blockedness
// already guarantees right-uniqueness.
func isFullGateOrSSROptimized[C comparable](fns ClauseFuncs[C], output Literal, occs *occList[C], inputs []int) bool {
	n := len(inputs)
	if n > 63 {
		return false
	}

	fwd := occs.Clauses(output.Opposite())
	bwd := occs.Clauses(output)

	total := uint64(1) << n
	covered := numCoveredInputCombinations(fns, fwd, n) +
		numCoveredInputCombinations(fns, bwd, n)

	return covered == total &&
		arePairwiseJoinedClausesAllTaut(fns, fwd, n) &&
		arePairwiseJoinedClausesAllTaut(fns, bwd, n)
}

// clauseSizesIfSameLength returns the common size of the given clauses,
// or 0 if the list is empty or the sizes differ.
func clauseSizesIfSameLength[C comparable](fns ClauseFuncs[C], clauses []C) int {
	if len(clauses) == 0 {
		return 0
	}
	size := fns.Size(clauses[0])
	for _, c := range clauses[1:] {
		if fns.Size(c) != size {
			return 0
		}
	}
	return size
}

// isAtLeastKGate detects at-least-k gates over n inputs: the backward
// side must hold one clause of size k+1 per k-subset of the inputs, and
// the forward side one clause of size n-k+2 per (n-k+1)-subset. AND and
// OR gates are the k = n and k = 1 special cases, and at-most-k gates
// are at-least-(n-k) gates on negated inputs.
func isAtLeastKGate[C comparable](fns ClauseFuncs[C], output Literal, occs *occList[C], inputs []int) bool {
	fwd := occs.Clauses(output.Opposite())
	bwd := occs.Clauses(output)

	fwdSize := clauseSizesIfSameLength(fns, fwd)
	if fwdSize == 0 {
		return false
	}
	bwdSize := clauseSizesIfSameLength(fns, bwd)
	if bwdSize == 0 {
		return false
	}

	n := len(inputs)
	k := bwdSize - 1
	antiK := n - k + 1

	if fwdSize != antiK+1 {
		return false
	}

	return nChooseK(n, k) == uint64(len(bwd)) &&
		nChooseK(n, antiK) == uint64(len(fwd))
}

// isGateOutput reports whether output is the output literal of a gate
// encoding in the clauses currently held by the occurrence list.
func isGateOutput[C comparable](fns ClauseFuncs[C], output Literal, occs *occList[C], isNestedMonotonically bool) bool {
	if len(occs.Clauses(output.Opposite())) == 0 {
		// Not a gate output: the possible inputs cannot constrain it.
		return false
	}

	if !isBlocked(fns, output, occs) {
		// The remaining clauses are not a gate encoding. Note that as
		// long as the output variable is used as input of some other
		// gate G whose clauses are still in the occurrence list, this
		// check fails even if output really is a gate output: G must be
		// recovered first, so that its clauses no longer pollute the
		// occurrence lists of output and its opposite.
		return false
	}

	if isNestedMonotonically {
		// Monotonically nested gates only need the clauses containing
		// the opposite of output; any backward clauses are irrelevant
		// for the functional relationship between input and output.
		return true
	}

	inputs := tryGetGateInputs(fns, output, occs)
	if len(inputs) == 0 {
		return false
	}
	return isAtLeastKGate(fns, output, occs, inputs) ||
		isFullGateOrSSROptimized(fns, output, occs, inputs)
}

// nChooseK returns the binomial coefficient, saturating at MaxUint64 on
// overflow so that a huge coefficient can never alias a clause count.
func nChooseK(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 1; i <= k; i++ {
		f := uint64(n - k + i)
		if result > math.MaxUint64/f {
			return math.MaxUint64
		}
		result = result * f / uint64(i)
	}
	return result
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
