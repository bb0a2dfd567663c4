package gates

import "testing"

func TestIsGateOutput(t *testing.T) {
	testCases := []struct {
		desc    string
		clauses []*IntClause
		output  int
		mono    bool
		want    bool
	}{
		{
			desc:    "unary literal is not gate",
			clauses: []*IntClause{NewIntClause(1)},
			output:  1,
			mono:    true,
			want:    false,
		},
		{
			desc: "lone AND gate is gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, 2),
				NewIntClause(-1, 3),
			},
			output: 1,
			mono:   false,
			want:   true,
		},
		{
			desc:    "monotonically nested, optimized AND gate is gate (fwd side only)",
			clauses: []*IntClause{NewIntClause(1, -2, -3)},
			output:  -1,
			mono:    true,
			want:    true,
		},
		{
			desc: "monotonically nested, optimized AND gate is gate (bwd side absent)",
			clauses: []*IntClause{
				NewIntClause(-1, 2),
				NewIntClause(-1, -3),
			},
			output: 1,
			mono:   true,
			want:   true,
		},
		{
			desc: "monotonically nested, unoptimized AND gate is gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, 2),
				NewIntClause(-1, 3),
			},
			output: 1,
			mono:   true,
			want:   true,
		},
		{
			desc: "nonmonotonically nested, optimized AND gate is not gate (1)",
			clauses: []*IntClause{
				NewIntClause(-1, 2),
				NewIntClause(-1, -3),
			},
			output: 1,
			mono:   false,
			want:   false,
		},
		{
			desc:    "nonmonotonically nested, optimized AND gate is not gate (2)",
			clauses: []*IntClause{NewIntClause(1, -2, -3)},
			output:  -1,
			mono:    false,
			want:    false,
		},
		{
			desc: "lone AND gate minus 1 literal is not gate",
			clauses: []*IntClause{
				NewIntClause(1, -3),
				NewIntClause(-1, 2),
				NewIntClause(-1, 3),
			},
			output: 1,
			mono:   false,
			want:   false,
		},
		{
			desc: "lone AND gate minus 1 clause is not gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, 2),
			},
			output: 1,
			mono:   false,
			want:   false,
		},
		{
			desc: "lone AND gate with additional output unary is not gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, 2),
				NewIntClause(-1, 3),
				NewIntClause(1),
			},
			output: 1,
			mono:   false,
			want:   false,
		},
		{
			desc: "lone AND gate with additional input unary is gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, 2),
				NewIntClause(-1, 3),
				NewIntClause(-3),
			},
			output: 1,
			mono:   false,
			want:   true,
		},
		{
			desc:    "monotonically nested, optimized AND gate with flipped output is not gate",
			clauses: []*IntClause{NewIntClause(1, -2, -3)},
			output:  1,
			mono:    true,
			want:    false,
		},
		{
			desc: "nonmonotonically nested XOR gate is gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, 3),
				NewIntClause(-1, 2, 3),
				NewIntClause(-1, -2, -3),
				NewIntClause(1, 2, -3),
			},
			output: 3,
			mono:   false,
			want:   true,
		},
		{
			desc: "full gate simplified with self-subsuming resolution is gate",
			clauses: []*IntClause{
				NewIntClause(-3, -4, -5),
				NewIntClause(4, -5),
				NewIntClause(3, -4, 5),
			},
			output: 5,
			mono:   false,
			want:   true,
		},
		{
			desc: "full gate simplified with self-subsuming resolution, but missing a clause is not gate",
			clauses: []*IntClause{
				NewIntClause(-3, -4, -5),
				NewIntClause(3, -4, 5),
			},
			output: 5,
			mono:   false,
			want:   false,
		},
		{
			desc: "ternary at-least-2 gate is gate",
			clauses: []*IntClause{
				NewIntClause(-1, -2, 4),
				NewIntClause(-1, -3, 4),
				NewIntClause(-2, -3, 4),
				NewIntClause(1, 2, -4),
				NewIntClause(1, 3, -4),
				NewIntClause(2, 3, -4),
			},
			output: 4,
			mono:   false,
			want:   true,
		},
		{
			desc: "nonmonotonically nested if-then-else gate is gate",
			clauses: []*IntClause{
				NewIntClause(-1, -2, 3),
				NewIntClause(-1, 2, -3),
				NewIntClause(1, -2, 3),
				NewIntClause(1, 2, -3),
			},
			output: 3,
			mono:   false,
			want:   true,
		},
		{
			desc: "half a gate is not gate",
			clauses: []*IntClause{
				NewIntClause(1, -2, -3),
				NewIntClause(-1, -2, 3),
			},
			output: 3,
			mono:   false,
			want:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			occs := newTestOccList(tc.clauses...)
			got := isGateOutput[*IntClause](testFns, FromDimacs(tc.output), occs, tc.mono)
			if got != tc.want {
				t.Errorf("isGateOutput(%d, mono=%t): got %t, want %t", tc.output, tc.mono, got, tc.want)
			}
		})
	}
}

func TestNChooseK(t *testing.T) {
	testCases := []struct {
		n, k int
		want uint64
	}{
		{0, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
		{4, 2, 6},
		{5, 3, 10},
		{10, 1, 10},
		{10, 10, 1},
		{3, 4, 0},
		{3, -1, 0},
		{60, 30, 118264581564861424},
	}
	for _, tc := range testCases {
		if got := nChooseK(tc.n, tc.k); got != tc.want {
			t.Errorf("nChooseK(%d, %d): got %d, want %d", tc.n, tc.k, got, tc.want)
		}
	}
}
