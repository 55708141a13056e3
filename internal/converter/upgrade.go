package converter

import (
	"lootcase_backend/internal/api/dto/upgrade"
	"lootcase_backend/internal/model"
)

func ToUpgradeResponse(res model.UpgradeResult) upgrade.UpgradeResponse {
	out := upgrade.UpgradeResponse{
		Success: res.Success,
		Chance:  res.Chance,
	}
	if res.Item != nil {
		out.ItemID = res.Item.ID.String()
		out.TokenValue = res.Item.TokenValue
		out.TokenSymbol = res.Item.TokenSymbol
	}
	return out
}
