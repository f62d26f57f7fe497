package perft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qbbchego/quadchego"
)

func TestMain(m *testing.M) {
	quadchego.InitAttackTables()
	quadchego.InitZobristKeys()
	m.Run()
}

// TestNodes checks Nodes against the industry-standard perft reference
// values. Depths are kept small enough to run quickly; the deeper reference
// values (depth 5/6) are not exercised by this package's tests.
func TestNodes(t *testing.T) {
	testcases := []struct {
		name  string
		fen   string
		depth int
		want  int64
	}{
		{"startpos depth 1", quadchego.StartFEN, 1, 20},
		{"startpos depth 2", quadchego.StartFEN, 2, 400},
		{"startpos depth 3", quadchego.StartFEN, 3, 8902},
		{"startpos depth 4", quadchego.StartFEN, 4, 197281},
		{"kiwipete depth 1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"kiwipete depth 2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"endgame rook depth 1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"endgame rook depth 4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}

	for _, tc := range testcases {
		pos, err := quadchego.ParseFEN(tc.fen)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.want, Nodes(pos, tc.depth), "%s: Nodes(depth=%d)", tc.name, tc.depth)
	}
}

func TestNodesBaseCases(t *testing.T) {
	pos, err := quadchego.ParseFEN(quadchego.StartFEN)
	require.NoError(t, err)
	require.Equal(t, int64(1), Nodes(pos, 0))
	require.Equal(t, int64(len(quadchego.LegalPlies(pos))), Nodes(pos, 1))
}

// TestNodesParallelAgreesWithSequential checks that the depth>=4 parallel
// fan-out path in Nodes produces the same result as manual sequential
// summation over the same root plies (invariant 6: perft is monoidal).
func TestNodesParallelAgreesWithSequential(t *testing.T) {
	pos, err := quadchego.ParseFEN(quadchego.StartFEN)
	require.NoError(t, err)

	var sequential int64
	for _, ply := range quadchego.LegalPlies(pos) {
		sequential += Nodes(quadchego.UnsafeApply(pos, ply), 3)
	}

	require.Equal(t, sequential, Nodes(pos, 4), "Nodes(depth=4) should equal sum of depth-3 subtrees")
}

func TestParseEPD(t *testing.T) {
	input := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - ;D1 20 ;D2 400\n" +
		"# a comment line\n\n" +
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - ;D1 14\n"

	cases, err := ParseEPD(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Len(t, cases[0].Assertions, 2)
	require.Equal(t, Assertion{Depth: 1, Nodes: 20}, cases[0].Assertions[0])
}

func TestRunSuite(t *testing.T) {
	input := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - ;D1 20 ;D2 400\n"
	cases, err := ParseEPD(strings.NewReader(input))
	require.NoError(t, err)

	results, ok := RunSuite(cases)
	require.True(t, ok)
	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.Pass, "assertion D%d failed: want %d, got %d", r.Assertion.Depth, r.Assertion.Nodes, r.Actual)
	}
}

func TestRunSuiteShortCircuitsOnFailure(t *testing.T) {
	input := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - ;D1 999 ;D2 400\n"
	cases, err := ParseEPD(strings.NewReader(input))
	require.NoError(t, err)

	results, ok := RunSuite(cases)
	require.False(t, ok)
	require.Len(t, results, 1, "short-circuit after first failure")
}
