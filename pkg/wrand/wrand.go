// Package wrand - взвешенный случайный выбор.
// Не знает о доменных типах, используется и открытием кейса, и батлами
package wrand

import "math"

// Pick возвращает индекс элемента, выбранного пропорционально весам.
// u - равномерное число из [0,1). Невалидные веса (NaN, Inf, <=0)
// из розыгрыша исключаются; если валидных весов нет - равномерный выбор
func Pick(weights []float64, u float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if valid(w) {
			total += w
		}
	}

	// Сумма весов не годится для розыгрыша - выбираем равномерно
	if !valid(total) {
		idx := int(u * float64(len(weights)))
		if idx >= len(weights) {
			idx = len(weights) - 1
		}
		return idx
	}

	target := u * total
	cumulative := 0.0
	last := 0
	for i, w := range weights {
		if !valid(w) {
			continue
		}
		cumulative += w
		last = i
		if target < cumulative {
			return i
		}
	}

	// Сюда попадаем только из-за накопленной погрешности float
	return last
}

func valid(w float64) bool {
	return w > 0 && !math.IsNaN(w) && !math.IsInf(w, 1)
}
