package converter

import (
	"lootcase_backend/internal/api/dto/battle"
	"lootcase_backend/internal/model"
)

func ToBattleResponse(res model.BattleResult) battle.BattleResponse {
	rounds := make([]battle.RoundResponse, len(res.Rounds))
	for i, r := range res.Rounds {
		rounds[i] = battle.RoundResponse{
			CaseID:       r.CaseID,
			UserPick:     ToPickResponse(r.UserPick),
			OpponentPick: ToPickResponse(r.OpponentPick),
			Ledger: battle.LedgerResponse{
				CaseID:           r.Ledger.CaseID,
				TokenSymbol:      r.Ledger.TokenSymbol,
				TotalSpentUsdt:   r.Ledger.TotalSpentUsdt,
				TotalTokenIssued: r.Ledger.TotalTokenIssued,
				BufferDebtToken:  r.Ledger.BufferDebtToken,
			},
		}
	}

	return battle.BattleResponse{
		BattleID: res.ID.String(),
		Mode:     string(res.Mode),
		Rounds:   rounds,
	}
}
