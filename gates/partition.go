package gates

import "github.com/rhartert/gatescan/internal/bitvec"

// Partitioning groups variables by their behavior over the simulated
// rounds: backbone candidates (literals stuck at one value in every
// round) and equivalence candidates (variables whose signature history
// matches some other variable's, possibly complemented).
type Partitioning struct {
	Backbones    []Literal
	Equivalences [][]Literal
}

// sigEntry tracks one variable's simulation signatures: a running hash
// of its assignment columns, a running hash of their complements, and
// two sticky stuck-at flags.
type sigEntry struct {
	index    int
	posHash  bitvec.Hash
	negHash  bitvec.Hash
	stuckPos bool
	stuckNeg bool
}

// signaturePartition maintains the per-variable signature entries across
// simulation rounds and derives the final partitioning.
type signaturePartition struct {
	entries []sigEntry
}

func newSignaturePartition(size int) *signaturePartition {
	p := &signaturePartition{entries: make([]sigEntry, size)}
	for i := range p.entries {
		p.entries[i] = sigEntry{index: i, stuckPos: true, stuckNeg: true}
	}
	return p
}

// add folds the current assignment columns into the signatures. The
// assignment map must have exactly one column per tracked variable.
func (p *signaturePartition) add(assignment *bitvec.Map) {
	if assignment.Size() != len(p.entries) {
		panic("gates: assignment size does not match partition size")
	}
	for i := range p.entries {
		e := &p.entries[i]
		column := assignment.At(e.index)
		e.posHash = e.posHash.Add(column)
		e.negHash = e.negHash.AddNot(column)
		e.stuckPos = e.stuckPos && column.AllOne()
		e.stuckNeg = e.stuckNeg && column.AllZero()
	}
}

// compress drops entries that can no longer contribute a conjecture:
// non-stuck variables whose signature is a singleton. Stuck entries are
// always kept, they are backbone candidates.
//
// posHash and negHash occur equally often across entries unless a hash
// collision happened, which is rare enough that a faulty partitioning is
// acceptable. Both hashes are counted together, and checking the count
// of posHash alone is therefore sufficient.
func (p *signaturePartition) compress() {
	counters := make(map[bitvec.Hash]int, 2*len(p.entries))
	for i := range p.entries {
		counters[p.entries[i].posHash]++
		counters[p.entries[i].negHash]++
	}

	w := 0
	for i := range p.entries {
		e := p.entries[i]
		if !e.stuckPos && !e.stuckNeg && counters[e.posHash] == 1 {
			continue
		}
		p.entries[w] = e
		w++
	}
	p.entries = p.entries[:w]
}

// partitions compresses the entries and groups what remains: stuck
// entries become backbone literals, and entries sharing a signature
// (directly or complemented) become equivalence classes.
func (p *signaturePartition) partitions() Partitioning {
	p.compress()

	result := Partitioning{}
	classes := make(map[bitvec.Hash][]Literal)

	for i := range p.entries {
		e := &p.entries[i]
		if e.stuckPos || e.stuckNeg {
			if e.stuckPos {
				result.Backbones = append(result.Backbones, PositiveLiteral(e.index))
			} else {
				result.Backbones = append(result.Backbones, NegativeLiteral(e.index))
			}
			continue
		}

		if _, ok := classes[e.posHash]; ok {
			classes[e.posHash] = append(classes[e.posHash], PositiveLiteral(e.index))
		} else if _, ok := classes[e.negHash]; ok {
			classes[e.negHash] = append(classes[e.negHash], NegativeLiteral(e.index))
		} else {
			classes[e.posHash] = []Literal{PositiveLiteral(e.index)}
		}
	}

	// Emit classes in entry order to keep the result deterministic.
	for i := range p.entries {
		if class, ok := classes[p.entries[i].posHash]; ok {
			result.Equivalences = append(result.Equivalences, class)
			delete(classes, p.entries[i].posHash)
		}
	}

	return result
}
