package wrand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	weights := []float64{1, 2, 7}

	// Границы кумулятивных долей: 0.1 и 0.3
	assert.Equal(t, 0, Pick(weights, 0))
	assert.Equal(t, 0, Pick(weights, 0.05))
	assert.Equal(t, 1, Pick(weights, 0.1))
	assert.Equal(t, 1, Pick(weights, 0.25))
	assert.Equal(t, 2, Pick(weights, 0.3))
	assert.Equal(t, 2, Pick(weights, 0.999999))
}

func TestPickSkipsInvalidWeights(t *testing.T) {
	weights := []float64{0, math.NaN(), 3, -1, 1}

	// Валидные индексы 2 и 4 с долями 0.75 и 0.25
	assert.Equal(t, 2, Pick(weights, 0))
	assert.Equal(t, 2, Pick(weights, 0.5))
	assert.Equal(t, 4, Pick(weights, 0.8))
}

func TestPickUniformFallback(t *testing.T) {
	weights := []float64{0, math.NaN(), -5}

	// Сумма весов негодная: равномерный выбор по всем индексам
	assert.Equal(t, 0, Pick(weights, 0))
	assert.Equal(t, 1, Pick(weights, 0.5))
	assert.Equal(t, 2, Pick(weights, 0.99))
}

func TestPickEmpty(t *testing.T) {
	assert.Equal(t, -1, Pick(nil, 0.5))
}
