package converter

import (
	"lootcase_backend/internal/api/dto/open"
	"lootcase_backend/internal/model"
)

func ToOpenResponse(res model.OpenResult) open.OpenResponse {
	return open.OpenResponse{
		RewardValue: res.Reward.TokenValue,
		ItemID:      res.Item.ID.String(),
		TokenSymbol: res.Item.TokenSymbol,
		Balance:     res.BalanceUsdt,
		Dynamic:     res.Dynamic,
		Pick:        toPickResponse(res.Pick),
	}
}

func toPickResponse(sel *model.Selection) *open.PickResponse {
	if sel == nil {
		return nil
	}
	p := ToPickResponse(*sel)
	return &p
}

func ToPickResponse(sel model.Selection) open.PickResponse {
	return open.PickResponse{
		IdealDrop:   sel.IdealDropToken,
		MaxSafeDrop: sel.MaxSafeDropToken,
		TargetRtu:   sel.TargetRtuPercent,
		ChosenValue: sel.Reward.TokenValue,
	}
}
