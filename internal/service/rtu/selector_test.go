package rtu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lootcase_backend/internal/model"
)

func TestSelectNeverBreachesCeiling(t *testing.T) {
	rewards := rewardsOf(1, 5, 20)
	rnd := rand.New(rand.NewSource(1*1000 + 2))

	const (
		price      = 10.0
		rtuPercent = 96.0
		tokenPrice = 1.0
		buffer     = 20.0
	)

	st := model.LedgerState{}
	for i := 0; i < 2000; i++ {
		sel := Select(rewards, price, rtuPercent, tokenPrice, buffer, st, rnd.Float64)
		st.SpentUsdt += price
		st.TokenIssued += sel.Reward.TokenValue

		allowed := st.SpentUsdt * rtuPercent / 100 / tokenPrice
		require.LessOrEqual(t, st.TokenIssued, allowed+epsilon,
			"issued tokens breach declared ceiling on open %d", i)
	}
}

func TestSelectConvergesToOpenTarget(t *testing.T) {
	rewards := rewardsOf(1, 5, 20)
	rnd := rand.New(rand.NewSource(7*1000 + 11))

	const (
		price      = 10.0
		rtuPercent = 96.0
		tokenPrice = 1.0
		buffer     = 20.0
	)
	openTarget := rtuPercent - buffer

	st := model.LedgerState{}
	for i := 0; i < 2000; i++ {
		sel := Select(rewards, price, rtuPercent, tokenPrice, buffer, st, rnd.Float64)
		st.SpentUsdt += price
		st.TokenIssued += sel.Reward.TokenValue
	}

	realized := st.TokenIssued * tokenPrice / st.SpentUsdt * 100
	assert.InDelta(t, openTarget, realized, 15,
		"realized open rtu %.2f drifted from target %.2f", realized, openTarget)
}

func TestSelectCheapestFallback(t *testing.T) {
	rewards := rewardsOf(3, 5, 20)

	// Выдача уже далеко за потолком: безопасных кандидатов нет
	st := model.LedgerState{SpentUsdt: 10, TokenIssued: 1000}
	sel := Select(rewards, 10, 96, 1, 20, st, func() float64 { return 0.5 })

	assert.Equal(t, 3.0, sel.Reward.TokenValue)
	assert.Zero(t, sel.MaxSafeDropToken)
}

func TestSelectExcludesUnsafeRewards(t *testing.T) {
	rewards := rewardsOf(1, 8, 100)
	rnd := rand.New(rand.NewSource(3*1000 + 5))

	// На свежем учете maxSafe = 10*0.96 = 9.6: награда 100 недоступна
	for i := 0; i < 500; i++ {
		sel := Select(rewards, 10, 96, 1, 20, model.LedgerState{}, rnd.Float64)
		require.NotEqual(t, 100.0, sel.Reward.TokenValue)
	}
}

func TestSelectBiasTowardsIdeal(t *testing.T) {
	rewards := rewardsOf(1, 8, 100)
	rnd := rand.New(rand.NewSource(13*1000 + 17))

	// Недовыдача: идеальный дроп 7.6 токена, награда 8 должна доминировать
	counts := map[float64]int{}
	for i := 0; i < 1000; i++ {
		sel := Select(rewards, 10, 96, 1, 20, model.LedgerState{}, rnd.Float64)
		counts[sel.Reward.TokenValue]++
	}
	assert.Greater(t, counts[8.0], counts[1.0])
}

func TestSelectBiasLowerOnOvershoot(t *testing.T) {
	rewards := rewardsOf(1, 5, 20)
	rnd := rand.New(rand.NewSource(19*1000 + 23))

	// Выдача выше таргета: выбор уходит в дешевый край
	st := model.LedgerState{SpentUsdt: 100, TokenIssued: 100}
	counts := map[float64]int{}
	for i := 0; i < 1000; i++ {
		sel := Select(rewards, 10, 96, 1, 20, st, rnd.Float64)
		counts[sel.Reward.TokenValue]++
	}
	assert.Greater(t, counts[1.0], counts[5.0])
}

func TestSelectReportsDebugValues(t *testing.T) {
	rewards := rewardsOf(1, 5, 20)

	sel := Select(rewards, 10, 96, 1, 20, model.LedgerState{}, func() float64 { return 0 })

	assert.InDelta(t, 7.6, sel.IdealDropToken, 1e-9)
	assert.InDelta(t, 9.6, sel.MaxSafeDropToken, 1e-9)
	assert.InDelta(t, 76, sel.TargetRtuPercent, 1e-9)
}

func TestSelectOpenTargetFloor(t *testing.T) {
	rewards := rewardsOf(1, 5)

	// Буфер больше заявленного RTU: таргет упирается в нижний порог 1%
	sel := Select(rewards, 10, 15, 1, 20, model.LedgerState{}, func() float64 { return 0 })
	assert.Equal(t, 1.0, sel.TargetRtuPercent)
}

func TestSelectStored(t *testing.T) {
	rewards := []model.Reward{
		{ID: 1, TokenValue: 1, Probability: 0},
		{ID: 2, TokenValue: 5, Probability: 100},
		{ID: 3, TokenValue: 20, Probability: 0},
	}

	for _, u := range []float64{0, 0.5, 0.999} {
		rw := SelectStored(rewards, func() float64 { return u })
		assert.Equal(t, 5.0, rw.TokenValue)
	}
}

func TestSelectStoredDegenerate(t *testing.T) {
	// Вероятности не заполнены: равномерный выбор вместо паники
	rewards := rewardsOf(1, 5, 20)

	assert.Equal(t, 1.0, SelectStored(rewards, func() float64 { return 0 }).TokenValue)
	assert.Equal(t, 5.0, SelectStored(rewards, func() float64 { return 0.5 }).TokenValue)
	assert.Equal(t, 20.0, SelectStored(rewards, func() float64 { return 0.99 }).TokenValue)
}
