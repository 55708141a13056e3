package model

import "errors"

// Ошибки RTU-движка. Все восстановимые: вызывающий код откатывает
// транзакцию и отдает пользователю осмысленный ответ
var (
	// ErrInvalidInput - невалидные цена/RTU/цена токена или список наград
	ErrInvalidInput = errors.New("invalid input")
	// ErrRtuUnreachable - заявленный RTU недостижим на данном наборе наград
	ErrRtuUnreachable = errors.New("rtu target unreachable")
	// ErrSolverInconsistency - рассчитанное распределение не сошлось с таргетом
	ErrSolverInconsistency = errors.New("solver inconsistency")
	// ErrLedgerUnavailable - у кейса нет цены токена, динамический режим недоступен
	ErrLedgerUnavailable = errors.New("rtu ledger unavailable")
	// ErrCaseUnavailable - кейс не найден, неактивен или непригоден для батла
	ErrCaseUnavailable = errors.New("case unavailable")

	ErrNotEnoughBalance = errors.New("not enough balance")
	ErrItemUnavailable  = errors.New("inventory item unavailable")
)
