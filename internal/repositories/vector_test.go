package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", VectorLiteral(nil))
	assert.Equal(t, "[0.5]", VectorLiteral([]float64{0.5}))
	assert.Equal(t, "[0.1,-0.25,1]", VectorLiteral([]float64{0.1, -0.25, 1}))
}
