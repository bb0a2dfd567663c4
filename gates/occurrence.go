package gates

import (
	"sort"

	"github.com/rhartert/gatescan/internal/bitvec"
)

// occSlot holds the clause handles of a single literal. Removals are not
// applied immediately: they accumulate in pending and are reconciled on
// the next read of the slot. Once a slot has been reconciled, live stays
// sorted by handle hash so that later reconciliations are linear merges.
type occSlot[C comparable] struct {
	live    []C
	pending []C
	sorted  bool
}

// occList maps literals to the clauses containing them, with lazy bulk
// deletion. Eagerly erasing a recovered gate's clauses from every
// literal's list is O(sum of clause sizes) per gate and trashes the
// cache on large instances; deferring the erase to the next read keeps
// the scan near-linear in practice.
type occList[C comparable] struct {
	fns     ClauseFuncs[C]
	slots   []occSlot[C]
	unaries []Literal

	// hashes gives each handle a fixed pseudo-random sort key. Keys are
	// derived from dense construction-time IDs via xorshift*, so they
	// are unique in practice; the reconciliation merge nevertheless
	// tolerates equal keys for distinct handles.
	hashes map[C]uint64
}

// newOccList builds the occurrence list from the given clause handles.
// Construction is two-pass: occurrence counts are gathered first so that
// every slot can be allocated at its final capacity.
func newOccList[C comparable](fns ClauseFuncs[C], clauses []C) *occList[C] {
	counts := []int{}
	for _, c := range clauses {
		for i := 0; i < fns.Size(c); i++ {
			idx := fns.Lit(c, i).Index()
			for len(counts) <= idx {
				counts = append(counts, 0)
			}
			counts[idx]++
		}
	}

	o := &occList[C]{
		fns:    fns,
		slots:  make([]occSlot[C], len(counts)),
		hashes: make(map[C]uint64, len(clauses)),
	}
	for i, n := range counts {
		o.slots[i].live = make([]C, 0, n)
	}

	for i, c := range clauses {
		o.hashes[c] = bitvec.XorshiftStar(uint64(i) + 1)
		for j := 0; j < fns.Size(c); j++ {
			idx := fns.Lit(c, j).Index()
			o.slots[idx].live = append(o.slots[idx].live, c)
		}
		if fns.Size(c) == 1 {
			o.unaries = append(o.unaries, fns.Lit(c, 0))
		}
	}

	return o
}

// Clauses returns the clauses currently containing l. The result may be
// empty if l was never seen. Reading a slot reconciles its pending
// removals; the returned slice is owned by the list and invalidated by
// any subsequent removal affecting l.
func (o *occList[C]) Clauses(l Literal) []C {
	idx := l.Index()
	if idx >= len(o.slots) {
		return nil
	}
	s := &o.slots[idx]
	if len(s.pending) > 0 {
		o.reconcile(s)
	}
	return s.live
}

// reconcile applies a slot's pending removals with a hash-sorted linear
// merge: both lists are ordered by handle hash, and a live element is
// dropped iff it occurs in the band of pending elements sharing its
// hash.
func (o *occList[C]) reconcile(s *occSlot[C]) {
	if !s.sorted {
		sort.Slice(s.live, func(i, j int) bool {
			return o.hashes[s.live[i]] < o.hashes[s.live[j]]
		})
		s.sorted = true
	}
	sort.Slice(s.pending, func(i, j int) bool {
		return o.hashes[s.pending[i]] < o.hashes[s.pending[j]]
	})

	w, p := 0, 0
	for _, c := range s.live {
		h := o.hashes[c]
		for p < len(s.pending) && o.hashes[s.pending[p]] < h {
			p++
		}
		dropped := false
		for q := p; q < len(s.pending) && o.hashes[s.pending[q]] == h; q++ {
			if s.pending[q] == c {
				dropped = true
				break
			}
		}
		if !dropped {
			s.live[w] = c
			w++
		}
	}
	s.live = s.live[:w]
	s.pending = s.pending[:0]
}

// Remove schedules the removal of c from every literal's clause list.
// The unary list is updated eagerly so that Unaries never reports a
// removed unit clause.
func (o *occList[C]) Remove(c C) {
	for i := 0; i < o.fns.Size(c); i++ {
		idx := o.fns.Lit(c, i).Index()
		o.slots[idx].pending = append(o.slots[idx].pending, c)
	}
	if o.fns.Size(c) == 1 {
		unstableEraseFirst(&o.unaries, o.fns.Lit(c, 0))
	}
}

// RemoveAll schedules the removal of every clause in cs.
func (o *occList[C]) RemoveAll(cs []C) {
	for _, c := range cs {
		o.Remove(c)
	}
}

// RemoveGateRoot purges all clauses containing out or its opposite from
// every literal's list. The two purged literals' slots are emptied
// immediately, pending buffers included.
func (o *occList[C]) RemoveGateRoot(out Literal) {
	for _, l := range []Literal{out, out.Opposite()} {
		for _, c := range o.Clauses(l) {
			o.removeExceptRoot(c, out)
		}
		s := &o.slots[l.Index()]
		s.live = s.live[:0]
		s.pending = s.pending[:0]
		s.sorted = true
	}
}

// removeExceptRoot schedules removal of c from the slots of all its
// literals except those of the root variable, whose slots are cleared
// wholesale by RemoveGateRoot.
func (o *occList[C]) removeExceptRoot(c C, root Literal) {
	rootVar := root.VarID()
	for i := 0; i < o.fns.Size(c); i++ {
		lit := o.fns.Lit(c, i)
		if lit.VarID() == rootVar {
			continue
		}
		idx := lit.Index()
		o.slots[idx].pending = append(o.slots[idx].pending, c)
	}
	if o.fns.Size(c) == 1 {
		unstableEraseFirst(&o.unaries, o.fns.Lit(c, 0))
	}
}

// RemoveUnary removes the unit clause asserting l, if present.
func (o *occList[C]) RemoveUnary(l Literal) {
	for _, c := range o.Clauses(l) {
		if o.fns.Size(c) == 1 {
			o.Remove(c)
			return
		}
	}
}

// Unaries returns the literals of the current unit clauses. The slice is
// owned by the list.
func (o *occList[C]) Unaries() []Literal {
	return o.unaries
}

// EstimatedLookupCost is a cheap proxy for the cost of reading the slots
// of l's variable: the size of the pending-removal buffers at l and its
// opposite. The scanner visits cheap candidates first, which drains
// small buffers before expensive literals are touched.
func (o *occList[C]) EstimatedLookupCost(l Literal) int {
	cost := 0
	if idx := l.Index(); idx < len(o.slots) {
		cost += len(o.slots[idx].pending)
	}
	if idx := l.Opposite().Index(); idx < len(o.slots) {
		cost += len(o.slots[idx].pending)
	}
	return cost
}

// MaxLitIndex returns the upper bound of the literal index space seen at
// construction.
func (o *occList[C]) MaxLitIndex() int {
	if len(o.slots) == 0 {
		return 0
	}
	return len(o.slots) - 1
}

// Empty reports whether no clause occurrence remains.
func (o *occList[C]) Empty() bool {
	for i := range o.slots {
		if len(o.Clauses(Literal(i))) > 0 {
			return false
		}
	}
	return true
}

// unstableEraseFirst removes the first occurrence of v by swapping it
// with the last element.
func unstableEraseFirst(lits *[]Literal, v Literal) {
	s := *lits
	for i, l := range s {
		if l == v {
			s[i] = s[len(s)-1]
			*lits = s[:len(s)-1]
			return
		}
	}
}
