package rtu

import (
	"math"
	"sort"

	"lootcase_backend/internal/model"
	"lootcase_backend/pkg/wrand"
)

const (
	// minSelectWeight Нижняя граница веса кандидата
	minSelectWeight = 1e-6
	// rankBonus Сила ранговой добавки при рулежке к краю списка
	rankBonus = 1.5
)

// Select выбирает одну награду для одного события трат, уводя суммарную
// выдачу к таргету ниже заявленного потолка RTU. Чистая функция своих
// аргументов: дельту к учету применяет вызывающий код, атомарно с выдачей.
// Предусловия (награды непусты, цена токена > 0) гарантирует вызывающий
func Select(rewards []model.Reward, priceDeltaUsdt, rtuPercent, tokenPriceUsdt, steeringBufferPercent float64,
	st model.LedgerState, u func() float64) model.Selection {
	// Таргет открытий ниже заявленного потолка: остается запас
	// под более щедрые режимы выдачи (апгрейды, батлы)
	openTarget := rtuPercent - steeringBufferPercent
	if openTarget < 1 {
		openTarget = 1
	}

	nextSpent := st.SpentUsdt + priceDeltaUsdt
	// Сколько токенов было бы выдано на таргете и на заявленном потолке
	targetIssued := nextSpent * openTarget / 100 / tokenPriceUsdt
	allowedIssued := nextSpent * rtuPercent / 100 / tokenPriceUsdt

	ideal := math.Max(0, targetIssued-st.TokenIssued)
	maxSafe := math.Max(0, allowedIssued-st.TokenIssued)

	// Кандидаты - награды, не пробивающие заявленный потолок,
	// по возрастанию номинала
	candidates := make([]model.Reward, 0, len(rewards))
	for _, rw := range rewards {
		if rw.TokenValue <= maxSafe+epsilon {
			candidates = append(candidates, rw)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].TokenValue < candidates[j].TokenValue
	})

	// Потолок исчерпан - отдаем самую дешевую награду,
	// дальше неизбежного потолок не нарушаем
	if len(candidates) == 0 {
		candidates = append(candidates, cheapest(rewards))
	}

	// Выдача уже на таргете или выше - уводим выбор в дешевый край,
	// иначе в дорогой
	biasLower := st.TokenIssued >= targetIssued

	n := float64(len(candidates))
	weights := make([]float64, len(candidates))
	for i, rw := range candidates {
		base := 1 / (1 + math.Abs(rw.TokenValue-ideal))

		var rank float64
		if biasLower {
			rank = (n - float64(i)) / n
		} else {
			rank = float64(i+1) / n
		}

		w := base * (1 + rankBonus*rank)
		if w < minSelectWeight {
			w = minSelectWeight
		}
		weights[i] = w
	}

	idx := wrand.Pick(weights, u())

	return model.Selection{
		Reward:           candidates[idx],
		IdealDropToken:   ideal,
		MaxSafeDropToken: maxSafe,
		TargetRtuPercent: openTarget,
	}
}

// SelectStored выбирает награду по сохраненным статическим вероятностям.
// Деградация (сумма весов ноль или не-числа) дает равномерный выбор
func SelectStored(rewards []model.Reward, u func() float64) model.Reward {
	weights := make([]float64, len(rewards))
	for i, rw := range rewards {
		weights[i] = rw.Probability
	}
	return rewards[wrand.Pick(weights, u())]
}

func cheapest(rewards []model.Reward) model.Reward {
	min := rewards[0]
	for _, rw := range rewards[1:] {
		if rw.TokenValue < min.TokenValue {
			min = rw
		}
	}
	return min
}
