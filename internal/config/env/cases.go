package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lootcase_backend/internal/config"
)

type caseYAML struct {
	Cases []struct {
		Name           string    `yaml:"name"`
		PriceUsdt      float64   `yaml:"price_usdt"`
		RtuPercent     float64   `yaml:"rtu_percent"`
		TokenSymbol    string    `yaml:"token_symbol"`
		TokenPriceUsdt float64   `yaml:"token_price_usdt"`
		RewardValues   []float64 `yaml:"reward_values"`
	} `yaml:"cases"`
}

type caseConfig struct {
	name           string
	priceUsdt      float64
	rtuPercent     float64
	tokenSymbol    string
	tokenPriceUsdt float64
	rewardValues   []float64
}

// NewCaseConfigFromYAML читает сид-кейсы из yaml-файла
func NewCaseConfigFromYAML(path string) ([]config.CaseConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case config: %w", err)
	}

	var parsed caseYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse case config: %w", err)
	}

	cfgs := make([]config.CaseConfig, 0, len(parsed.Cases))
	for _, c := range parsed.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case config: name is required")
		}
		cfgs = append(cfgs, &caseConfig{
			name:           c.Name,
			priceUsdt:      c.PriceUsdt,
			rtuPercent:     c.RtuPercent,
			tokenSymbol:    c.TokenSymbol,
			tokenPriceUsdt: c.TokenPriceUsdt,
			rewardValues:   c.RewardValues,
		})
	}

	return cfgs, nil
}

func (cfg *caseConfig) Name() string            { return cfg.name }
func (cfg *caseConfig) PriceUsdt() float64      { return cfg.priceUsdt }
func (cfg *caseConfig) RtuPercent() float64     { return cfg.rtuPercent }
func (cfg *caseConfig) TokenSymbol() string     { return cfg.tokenSymbol }
func (cfg *caseConfig) TokenPriceUsdt() float64 { return cfg.tokenPriceUsdt }
func (cfg *caseConfig) RewardValues() []float64 { return cfg.rewardValues }
