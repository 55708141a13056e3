package model

import "github.com/google/uuid"

type BattleMode string

const (
	// BattleModeBot - соперник симулируется, его траты не идут в учет
	BattleModeBot BattleMode = "BOT"
	// BattleModePvp - соперник платит как второй участник
	BattleModePvp BattleMode = "PVP"
)

// BattleRound - результат одного кейса внутри батла
type BattleRound struct {
	CaseID       int
	UserPick     Selection
	OpponentPick Selection
	Ledger       RtuLedger // снапшот учета после обоих выборов
}

// BattleResult - результат всего батла
type BattleResult struct {
	ID     uuid.UUID
	Mode   BattleMode
	Rounds []BattleRound
}
