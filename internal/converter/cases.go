package converter

import (
	"lootcase_backend/internal/api/dto/cases"
	"lootcase_backend/internal/model"
)

func ToCaseInput(req cases.CreateCaseRequest) model.CaseInput {
	return model.CaseInput{
		Name:           req.Name,
		PriceUsdt:      req.PriceUsdt,
		RtuPercent:     req.RtuPercent,
		TokenSymbol:    req.TokenSymbol,
		TokenPriceUsdt: req.TokenPriceUsdt,
		RewardValues:   req.RewardValues,
	}
}

func ToCaseResponse(c model.Case) cases.CaseResponse {
	return cases.CaseResponse{
		ID:             c.ID,
		Name:           c.Name,
		PriceUsdt:      c.PriceUsdt,
		RtuPercent:     c.RtuPercent,
		TokenSymbol:    c.TokenSymbol,
		TokenPriceUsdt: c.TokenPriceUsdt,
		Active:         c.Active,
		Rewards:        toRewardResponses(c.Rewards),
	}
}

func ToCaseResponses(cs []model.Case) []cases.CaseResponse {
	result := make([]cases.CaseResponse, len(cs))
	for i, c := range cs {
		result[i] = ToCaseResponse(c)
	}
	return result
}

func toRewardResponses(rewards []model.Reward) []cases.RewardResponse {
	result := make([]cases.RewardResponse, len(rewards))
	for i, rw := range rewards {
		result[i] = cases.RewardResponse{
			ID:          rw.ID,
			TokenValue:  rw.TokenValue,
			Probability: rw.Probability,
		}
	}
	return result
}
