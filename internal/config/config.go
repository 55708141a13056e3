package config

import (
	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}

// RtuConfig - политика RTU-движка. Константы рулежки вынесены в конфиг,
// а не зашиты в селектор
type RtuConfig interface {
	// SteeringBufferPercent - отступ от заявленного RTU вниз (п.п.),
	// к которому селектор ведет выдачу при открытиях
	SteeringBufferPercent() float64
	// ReservePercent - резерв под апгрейды и батлы (п.п.)
	ReservePercent() float64
	// UpgradeRtuPercent - RTU попыток апгрейда
	UpgradeRtuPercent() float64
	// MaxRtuPercent - потолок заявленного RTU при создании кейса
	MaxRtuPercent() float64
}

// CaseConfig - сид-кейс из config.yaml, заводится при старте, если его еще нет
type CaseConfig interface {
	Name() string
	PriceUsdt() float64
	RtuPercent() float64
	TokenSymbol() string
	TokenPriceUsdt() float64
	RewardValues() []float64
}
