// Package config loads server and rule settings from an optional file and
// GOVERNOR_* environment variables.
package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"governor/internal/engine"
)

const envPrefix = "GOVERNOR"

type Config struct {
	Server ServerConf `mapstructure:"server"`
	Log    LogConf    `mapstructure:"log"`
	Rules  RulesConf  `mapstructure:"rules"`
}

type ServerConf struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metricsPort"` // 0 disables the statsviz listener
	Mode        string `mapstructure:"mode"`        // gin mode: debug, release or test
	BaseURL     string `mapstructure:"baseURL"`     // used in join links; empty means detect
	BotDelayMs  int    `mapstructure:"botDelayMs"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type RulesConf struct {
	HandSize               int    `mapstructure:"handSize"`
	EndBuildingCount       int    `mapstructure:"endBuildingCount"`
	MarketSize             int    `mapstructure:"marketSize"`
	MinPlayers             int    `mapstructure:"minPlayers"`
	MaxPlayers             int    `mapstructure:"maxPlayers"`
	CouncilDiscardFromHand bool   `mapstructure:"councilDiscardFromHand"`
	ProduceForAllSeats     bool   `mapstructure:"produceForAllSeats"`
	OneTradePerGoodType    bool   `mapstructure:"oneTradePerGoodType"`
	TieBreak               string `mapstructure:"tieBreak"`
}

// GameRules converts the rule section to engine rules.
func (c Config) GameRules() engine.Rules {
	r := c.Rules
	return engine.Rules{
		HandSize:               r.HandSize,
		EndBuildingCount:       r.EndBuildingCount,
		MarketSize:             r.MarketSize,
		MinPlayers:             r.MinPlayers,
		MaxPlayers:             r.MaxPlayers,
		CouncilDiscardFromHand: r.CouncilDiscardFromHand,
		ProduceForAllSeats:     r.ProduceForAllSeats,
		OneTradePerGoodType:    r.OneTradePerGoodType,
		TieBreak:               engine.TieBreak(r.TieBreak),
	}
}

func setDefaults(v *viper.Viper) {
	rules := engine.DefaultRules()
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metricsPort", 0)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.baseURL", "")
	v.SetDefault("server.botDelayMs", 600)
	v.SetDefault("log.level", "info")
	v.SetDefault("rules.handSize", rules.HandSize)
	v.SetDefault("rules.endBuildingCount", rules.EndBuildingCount)
	v.SetDefault("rules.marketSize", rules.MarketSize)
	v.SetDefault("rules.minPlayers", rules.MinPlayers)
	v.SetDefault("rules.maxPlayers", rules.MaxPlayers)
	v.SetDefault("rules.councilDiscardFromHand", rules.CouncilDiscardFromHand)
	v.SetDefault("rules.produceForAllSeats", rules.ProduceForAllSeats)
	v.SetDefault("rules.oneTradePerGoodType", rules.OneTradePerGoodType)
	v.SetDefault("rules.tieBreak", string(rules.TieBreak))
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.GameRules().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file, if any, and applies the environment on top.
func Load(configFile string) (*Config, error) {
	v := newViper(configFile)
	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return decode(v)
}

// Watch calls onChange with the reloaded config whenever the file changes.
// Invalid edits are reported through onError and otherwise ignored.
func Watch(configFile string, onChange func(*Config), onError func(error)) error {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			onError(err)
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
