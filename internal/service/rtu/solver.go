package rtu

import (
	"fmt"
	"math"

	"lootcase_backend/internal/model"
)

const (
	// epsilon Допуск числовых сравнений
	epsilon = 1e-9
	// evTolerance Допуск контрольной проверки матожидания
	evTolerance = 1e-4
)

// Solve подбирает статические вероятности наград так, чтобы матожидание
// денежной выплаты кейса совпало с заявленным RTU. Вызывается один раз,
// при создании кейса; результат хранится как fallback для кейсов,
// выпавших из динамического режима
func Solve(rewards []model.Reward, casePriceUsdt, rtuPercent, tokenPriceUsdt float64) ([]model.Reward, error) {
	if len(rewards) == 0 {
		return nil, fmt.Errorf("%w: reward list is empty", model.ErrInvalidInput)
	}
	if !(casePriceUsdt > 0) || math.IsInf(casePriceUsdt, 1) {
		return nil, fmt.Errorf("%w: case price must be positive and finite, got %v", model.ErrInvalidInput, casePriceUsdt)
	}
	if !(rtuPercent > 0) || rtuPercent > 100 {
		return nil, fmt.Errorf("%w: rtu percent must be in (0,100], got %v", model.ErrInvalidInput, rtuPercent)
	}
	if !(tokenPriceUsdt > 0) || math.IsInf(tokenPriceUsdt, 1) {
		return nil, fmt.Errorf("%w: token price must be positive and finite, got %v", model.ErrInvalidInput, tokenPriceUsdt)
	}

	seen := make(map[float64]struct{}, len(rewards))
	for _, rw := range rewards {
		if !(rw.TokenValue > 0) || math.IsInf(rw.TokenValue, 1) || math.IsNaN(rw.TokenValue) {
			return nil, fmt.Errorf("%w: reward value must be positive and finite, got %v", model.ErrInvalidInput, rw.TokenValue)
		}
		if _, ok := seen[rw.TokenValue]; ok {
			return nil, fmt.Errorf("%w: duplicate reward value %v", model.ErrInvalidInput, rw.TokenValue)
		}
		seen[rw.TokenValue] = struct{}{}
	}

	// Таргет и денежные номиналы наград
	target := casePriceUsdt * rtuPercent / 100
	monetary := make([]float64, len(rewards))
	minM, maxM := math.Inf(1), math.Inf(-1)
	for i, rw := range rewards {
		monetary[i] = rw.TokenValue * tokenPriceUsdt
		minM = math.Min(minM, monetary[i])
		maxM = math.Max(maxM, monetary[i])
	}

	if target < minM-epsilon || target > maxM+epsilon {
		return nil, fmt.Errorf("%w: target %.6f outside reward range [%.6f, %.6f]",
			model.ErrRtuUnreachable, target, minM, maxM)
	}

	out := make([]model.Reward, len(rewards))
	copy(out, rewards)
	for i := range out {
		out[i].Probability = 0
	}

	// Точное попадание: вся вероятность делится поровну между совпавшими,
	// матожидание равно таргету без подбора
	var exact []int
	for i, m := range monetary {
		if math.Abs(m-target) <= epsilon {
			exact = append(exact, i)
		}
	}
	if len(exact) > 0 {
		share := 100 / float64(len(exact))
		for _, i := range exact {
			out[i].Probability = share
		}
		roundProbabilities(out, exact[0])
		return out, nil
	}

	// Разделяем награды на проигрышные и выигрышные относительно таргета
	var loss, win []int
	for i, m := range monetary {
		if m < target {
			loss = append(loss, i)
		} else {
			win = append(win, i)
		}
	}
	if len(loss) == 0 || len(win) == 0 {
		return nil, fmt.Errorf("%w: rewards do not straddle target %.6f", model.ErrRtuUnreachable, target)
	}

	// Вес 1/номинал: дешевые награды вероятнее
	weight := make([]float64, len(rewards))
	for i, m := range monetary {
		weight[i] = 1 / m
	}

	avgLoss, sumWLoss := weightedAvg(monetary, weight, loss)
	avgWin, sumWWin := weightedAvg(monetary, weight, win)

	// Линейная интерполяция между средними двух групп
	denom := avgWin - avgLoss
	if denom <= 0 {
		return nil, fmt.Errorf("%w: degenerate group averages (loss %.6f, win %.6f)",
			model.ErrSolverInconsistency, avgLoss, avgWin)
	}
	pWin := (target - avgLoss) / denom
	pLoss := 1 - pWin
	if pWin < -epsilon || pLoss < -epsilon {
		return nil, fmt.Errorf("%w: interpolation out of range (pWin %.6f)", model.ErrSolverInconsistency, pWin)
	}
	pWin = clamp01(pWin)
	pLoss = clamp01(pLoss)

	// Раздаем вероятность групп пропорционально доле веса внутри группы
	for _, i := range loss {
		out[i].Probability = pLoss * weight[i] / sumWLoss * 100
	}
	for _, i := range win {
		out[i].Probability = pWin * weight[i] / sumWWin * 100
	}

	// Нормируем в сумму 100
	total := 0.0
	for i := range out {
		total += out[i].Probability
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: zero total probability", model.ErrSolverInconsistency)
	}
	scale := 100 / total
	for i := range out {
		out[i].Probability *= scale
	}

	// Контрольная проверка матожидания
	ev := 0.0
	for i := range out {
		ev += out[i].Probability / 100 * monetary[i]
	}
	if math.Abs(ev-target) > evTolerance {
		return nil, fmt.Errorf("%w: expected value %.8f differs from target %.8f",
			model.ErrSolverInconsistency, ev, target)
	}

	roundProbabilities(out, maxProbIndex(out))
	return out, nil
}

func weightedAvg(monetary, weight []float64, idx []int) (avg, sumW float64) {
	var sumWM float64
	for _, i := range idx {
		sumW += weight[i]
		sumWM += weight[i] * monetary[i]
	}
	return sumWM / sumW, sumW
}

// roundProbabilities округляет вероятности до 4 знаков процента,
// остаток округления оседает на награде residueIdx
func roundProbabilities(rewards []model.Reward, residueIdx int) {
	total := 0.0
	for i := range rewards {
		rewards[i].Probability = math.Round(rewards[i].Probability*10000) / 10000
		total += rewards[i].Probability
	}
	rewards[residueIdx].Probability += 100 - total
}

func maxProbIndex(rewards []model.Reward) int {
	idx := 0
	for i := range rewards {
		if rewards[i].Probability > rewards[idx].Probability {
			idx = i
		}
	}
	return idx
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
