package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProblemKeyAndLabel(t *testing.T) {
	p := Problem{ContestID: "4", Index: "A", Name: "Watermelon", SolvedCount: 15000}
	require.Equal(t, "4/A", p.Key())
	require.Equal(t, "4/A: Watermelon (solved=15000)", p.Label())
}

func TestCatalogueProblemCount(t *testing.T) {
	c := Catalogue{
		Source: "Codeforces",
		Contests: []Contest{
			{ID: "1", Problems: []Problem{{Index: "A"}, {Index: "B"}}},
			{ID: "2"},
			{ID: "3", Problems: []Problem{{Index: "A"}}},
		},
	}
	require.Equal(t, 3, c.ProblemCount())
}
