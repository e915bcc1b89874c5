package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens(" \n\t "))
	assert.Equal(t, 1, EstimateTokens("Go"))
	assert.Equal(t, 13, EstimateTokens("one two three four five six seven eight nine ten"))
}
