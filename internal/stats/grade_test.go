package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     string
	}{
		{95, "A+"},
		{90.0, "A+"}, // boundary
		{89.99, "A"},
		{85, "A"},
		{80.0, "A"},
		{75, "B"},
		{70.0, "B"},
		{69.99, "C"},
		{65, "C"},
		{60.0, "C"},
		{50, "D"},
		{0, "D"},
		{-10, "D"},
		{100, "A+"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Grade(tc.accuracy), "accuracy %v", tc.accuracy)
	}
}
