package rtu_stats_repo

import (
	"sync"

	"lootcase_backend/internal/model"
	"lootcase_backend/internal/repository"
)

const (
	// windowSize Размер окна последних открытий для расчета RTU в окне
	windowSize = 500
)

// Открытие для окна
type openResult struct {
	spent  float64
	payout float64
}

// Состояние статистики одного кейса
type caseState struct {
	totalOpens  int
	totalSpent  float64
	totalPayout float64
	window      []openResult
}

// Реализация репозитория для хранения статистики фактического RTU.
// Живет в памяти процесса: источник правды - ledger в БД,
// здесь только быстрая наблюдаемость
type StatsRepo struct {
	mtx    sync.RWMutex
	states map[int]*caseState
}

// NewRtuStatsRepository Конструктор репозитория статистики
func NewRtuStatsRepository() repository.RtuStatsRepository {
	return &StatsRepo{
		states: make(map[int]*caseState),
	}
}

// Record Фиксирует одно открытие кейса: трату и денежный номинал выдачи
func (r *StatsRepo) Record(caseID int, spentUsdt, payoutUsdt float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.states[caseID]
	if !ok {
		st = &caseState{}
		r.states[caseID] = st
	}

	st.totalOpens++
	st.totalSpent += spentUsdt
	st.totalPayout += payoutUsdt

	// Добавляем открытие в окно
	st.window = append(st.window, openResult{spent: spentUsdt, payout: payoutUsdt})

	// Поддерживаем размер окна
	if len(st.window) > windowSize {
		st.window = st.window[1:]
	}
}

// Stats Возвращает копию статистики кейса
func (r *StatsRepo) Stats(caseID int) model.CaseStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.states[caseID]
	if !ok {
		return model.CaseStats{WindowSize: windowSize}
	}

	out := model.CaseStats{
		TotalOpens:      st.totalOpens,
		TotalSpentUsdt:  st.totalSpent,
		TotalPayoutUsdt: st.totalPayout,
		WindowSize:      windowSize,
	}

	if st.totalSpent > 0 {
		out.RealizedRtu = st.totalPayout / st.totalSpent * 100
	}

	// Пересчитываем RTU в окне
	var windowSpent, windowPayout float64
	for _, o := range st.window {
		windowSpent += o.spent
		windowPayout += o.payout
	}
	if windowSpent > 0 {
		out.WindowRtu = windowPayout / windowSpent * 100
	}

	return out
}
