package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lootcase_backend/internal/config"
)

// Дефолты политики, если секция rtu в yaml не заполнена
const (
	defaultSteeringBuffer = 20.0
	defaultReserve        = 10.0
	defaultUpgradeRtu     = 90.0
	defaultMaxRtu         = 98.0
)

type rtuYAML struct {
	Rtu struct {
		SteeringBufferPercent *float64 `yaml:"steering_buffer_percent"`
		ReservePercent        *float64 `yaml:"reserve_percent"`
		UpgradeRtuPercent     *float64 `yaml:"upgrade_rtu_percent"`
		MaxRtuPercent         *float64 `yaml:"max_rtu_percent"`
	} `yaml:"rtu"`
}

type rtuConfig struct {
	steeringBuffer float64
	reserve        float64
	upgradeRtu     float64
	maxRtu         float64
}

// NewRtuConfigFromYAML читает политику RTU из yaml-файла
func NewRtuConfigFromYAML(path string) (config.RtuConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rtu config: %w", err)
	}

	var parsed rtuYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse rtu config: %w", err)
	}

	cfg := &rtuConfig{
		steeringBuffer: defaultSteeringBuffer,
		reserve:        defaultReserve,
		upgradeRtu:     defaultUpgradeRtu,
		maxRtu:         defaultMaxRtu,
	}

	if v := parsed.Rtu.SteeringBufferPercent; v != nil {
		cfg.steeringBuffer = *v
	}
	if v := parsed.Rtu.ReservePercent; v != nil {
		cfg.reserve = *v
	}
	if v := parsed.Rtu.UpgradeRtuPercent; v != nil {
		cfg.upgradeRtu = *v
	}
	if v := parsed.Rtu.MaxRtuPercent; v != nil {
		cfg.maxRtu = *v
	}

	if cfg.steeringBuffer < 0 || cfg.reserve < 0 {
		return nil, fmt.Errorf("rtu config: buffer and reserve must be non-negative")
	}
	if cfg.maxRtu <= 0 || cfg.maxRtu > 100 {
		return nil, fmt.Errorf("rtu config: max rtu must be in (0,100]")
	}

	return cfg, nil
}

func (cfg *rtuConfig) SteeringBufferPercent() float64 { return cfg.steeringBuffer }
func (cfg *rtuConfig) ReservePercent() float64        { return cfg.reserve }
func (cfg *rtuConfig) UpgradeRtuPercent() float64     { return cfg.upgradeRtu }
func (cfg *rtuConfig) MaxRtuPercent() float64         { return cfg.maxRtu }
