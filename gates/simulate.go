package gates

import "github.com/rhartert/gatescan/internal/bitvec"

// Simulate runs bit-parallel random simulation rounds on the structure
// and returns the resulting variable partitioning: backbone conjectures
// and equivalence conjectures. maxRounds is the number of simulated
// assignments; each bit-parallel step covers bitvec.Bits of them, and at
// least one step is always executed.
//
// The conjectures may be refuted by further rounds and are not verified
// against the clause encoding; callers are expected to check them, e.g.
// with SAT calls.
func Simulate[C comparable](fns ClauseFuncs[C], s *Structure[C], maxRounds int) Partitioning {
	maxVar := s.MaxVarIndex(fns)
	inputs := s.InputVarIndices()

	assignment := bitvec.NewMap(maxVar + 1)
	partition := newSignaturePartition(maxVar + 1)
	randomizer := bitvec.NewRandomizer()

	// Randomize all variable assignments once, including variables not
	// occurring in the structure. Variables left at a constant column
	// would otherwise show up as spurious backbone and equivalence
	// conjectures, and sorting those out later would be costlier than
	// randomizing here.
	for v := 0; v < assignment.Size(); v++ {
		randomizer.Randomize(assignment.At(v), 1)
	}

	steps := (maxRounds + bitvec.Bits - 1) / bitvec.Bits
	if steps < 1 {
		steps = 1
	}
	for step := 0; step < steps; step++ {
		if step%2 == 0 {
			// Rotate the ones-density of the inputs over seven biases.
			bias := (step/2)%7 + 1
			for _, v := range inputs {
				randomizer.Randomize(assignment.At(v), bias)
			}
		} else {
			// Anti-correlated follow-up round: complement the inputs.
			for _, v := range inputs {
				column := assignment.At(v)
				column.Not(column)
			}
		}

		Propagate(fns, assignment, s)
		partition.add(assignment)
	}

	return partition.partitions()
}
