package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	content := "Here you go:\n[{\"pattern_type\":\"rushing\"}]\nThanks"
	got, err := ExtractJSONArray(content)
	require.NoError(t, err)
	assert.Equal(t, `[{"pattern_type":"rushing"}]`, got)
}

func TestExtractJSONArray_BareArray(t *testing.T) {
	got, err := ExtractJSONArray(`[1,2,3]`)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, got)
}

func TestExtractJSONArray_NestedBrackets(t *testing.T) {
	// Last ] wins, so trailing nested arrays stay intact.
	got, err := ExtractJSONArray("x [[1],[2]] y")
	require.NoError(t, err)
	assert.Equal(t, `[[1],[2]]`, got)
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	_, err := ExtractJSONArray("I could not produce any patterns.")
	assert.ErrorIs(t, err, ErrNoJSONArray)
}

func TestExtractJSONArray_ClosedBeforeOpen(t *testing.T) {
	_, err := ExtractJSONArray("] oops [")
	assert.ErrorIs(t, err, ErrNoJSONArray)
}
