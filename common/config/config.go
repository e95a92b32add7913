package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"riichi/engine/mahjong"
)

// SettleNodeConfig 结算节点的全局配置，Load 成功后可用
var SettleNodeConfig SettleConfiguration

var mu sync.RWMutex

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	ServerType string `mapstructure:"serverType"`
	MetricPort int    `mapstructure:"metricPort"`
}

type SettleConfiguration struct {
	BaseConfig  `mapstructure:",squash"`
	LogConf     `mapstructure:"log"`
	NatsConfig  `mapstructure:"nats"`
	MongoConf   `mapstructure:"mongo"`
	RulesetConf `mapstructure:"ruleset"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type NatsConfig struct {
	URL string `json:"url" mapstructure:"url"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

// RulesetConf 规则开关，缺省值向标准规则对齐
type RulesetConf struct {
	RenhouPolicy        string `mapstructure:"renhouPolicy"`
	PinfuRequireRyanmen *bool  `mapstructure:"pinfuRequireRyanmen"`
	ChantaEnabled       *bool  `mapstructure:"chantaEnabled"`
	SuuankouTankiDouble *bool  `mapstructure:"suuankouTankiDouble"`
	ChuurenPureDouble   *bool  `mapstructure:"chuurenPureDouble"`
	KiriageMangan       *bool  `mapstructure:"kiriageMangan"`
	UseRedFives         *bool  `mapstructure:"useRedFives"`
}

// Ruleset 把配置项套到标准规则上，未配置的开关保持默认
func (rc *RulesetConf) Ruleset() *mahjong.Ruleset {
	rules := mahjong.StandardRuleset()
	if rc.RenhouPolicy != "" {
		rules.RenhouPolicy = mahjong.RenhouPolicy(rc.RenhouPolicy)
	}
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&rules.PinfuRequireRyanmen, rc.PinfuRequireRyanmen)
	apply(&rules.ChantaEnabled, rc.ChantaEnabled)
	apply(&rules.SuuankouTankiDouble, rc.SuuankouTankiDouble)
	apply(&rules.ChuurenPureDouble, rc.ChuurenPureDouble)
	apply(&rules.KiriageMangan, rc.KiriageMangan)
	apply(&rules.UseRedFives, rc.UseRedFives)
	return rules
}

func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := unmarshal(v); err != nil {
		return err
	}

	// 热更新只覆盖规则和日志级别，节点身份不变
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		var cfg SettleConfiguration
		if err := v.Unmarshal(&cfg); err != nil {
			return
		}
		SettleNodeConfig.RulesetConf = cfg.RulesetConf
		SettleNodeConfig.LogConf = cfg.LogConf
	})
	return nil
}

func unmarshal(v *viper.Viper) error {
	var cfg SettleConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	if cfg.ServerType != "settle" {
		return fmt.Errorf("unknown server type: %s", cfg.ServerType)
	}
	if nodeID := os.Getenv("NODE_ID"); nodeID != "" {
		cfg.ID = nodeID
	}
	if cfg.ID == "" {
		return fmt.Errorf("node id is required, set it in config or NODE_ID")
	}

	mu.Lock()
	SettleNodeConfig = cfg
	mu.Unlock()
	return nil
}

// Ruleset 取当前生效的规则，热更新后拿到新值
func Ruleset() *mahjong.Ruleset {
	mu.RLock()
	defer mu.RUnlock()
	return SettleNodeConfig.RulesetConf.Ruleset()
}
