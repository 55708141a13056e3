package converter

import (
	"lootcase_backend/internal/api/dto/rtu"
	"lootcase_backend/internal/model"
)

func ToLedgerResponse(led model.RtuLedger, events []model.RtuEvent) rtu.LedgerResponse {
	evs := make([]rtu.EventResponse, len(events))
	for i, e := range events {
		evs[i] = rtu.EventResponse{
			ID:             e.ID.String(),
			Kind:           string(e.Kind),
			DeltaSpentUsdt: e.DeltaSpentUsdt,
			DeltaToken:     e.DeltaToken,
			Metadata:       e.Metadata,
			CreatedAt:      e.CreatedAt,
		}
	}

	return rtu.LedgerResponse{
		CaseID:           led.CaseID,
		TokenSymbol:      led.TokenSymbol,
		TotalSpentUsdt:   led.TotalSpentUsdt,
		TotalTokenIssued: led.TotalTokenIssued,
		BufferDebtToken:  led.BufferDebtToken,
		TokenPriceUsdt:   led.TokenPriceUsdt,
		RtuPercent:       led.RtuPercent,
		Events:           evs,
	}
}

func ToStatsResponse(caseID int, st model.CaseStats) rtu.StatsResponse {
	return rtu.StatsResponse{
		CaseID:          caseID,
		TotalOpens:      st.TotalOpens,
		TotalSpentUsdt:  st.TotalSpentUsdt,
		TotalPayoutUsdt: st.TotalPayoutUsdt,
		RealizedRtu:     st.RealizedRtu,
		WindowRtu:       st.WindowRtu,
	}
}
