package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PlanDisplay is the operator-tunable presentation of one plan on the
// upgrade page: ordering, marketing name and call-to-action copy.
type PlanDisplay struct {
	Code     string `mapstructure:"code"`
	Name     string `mapstructure:"name"`
	Tagline  string `mapstructure:"tagline"`
	Position int    `mapstructure:"position"`
}

type PlanConfig struct {
	Plans      []PlanDisplay `mapstructure:"plans"`
	UpgradeURL string        `mapstructure:"upgradeUrl"`
}

func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		Plans: []PlanDisplay{
			{Code: "starter", Name: "Starter", Tagline: "People and households", Position: 1},
			{Code: "growth", Name: "Growth", Tagline: "Groups, events and announcements", Position: 2},
			{Code: "flourish", Name: "Flourish", Tagline: "Everything, including kids check-in and giving", Position: 3},
		},
		UpgradeURL: "/admin/upgrade",
	}
}

// PlanConfigHolder hot-reloads the plan presentation config so the upgrade
// page copy can change without a restart.
type PlanConfigHolder struct {
	current atomic.Value // holds PlanConfig
}

func NewPlanConfigHolder() (*PlanConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("plans")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/steeple/config")
	v.AddConfigPath("/etc/steeple")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STEEPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPlanConfig()
		v.SetDefault("plans.plans", defaults.Plans)
		v.SetDefault("plans.upgradeUrl", defaults.UpgradeURL)
	}

	var cfg PlanConfig
	if err := v.UnmarshalKey("plans", &cfg); err != nil {
		return nil, err
	}
	if err := validatePlanConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PlanConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PlanConfig
		if err := v.UnmarshalKey("plans", &updated); err != nil {
			log.Printf("[plan-config] reload failed: %v", err)
			return
		}
		if err := validatePlanConfig(updated); err != nil {
			log.Printf("[plan-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[plan-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PlanConfigHolder) Get() PlanConfig {
	return h.current.Load().(PlanConfig)
}

func validatePlanConfig(cfg PlanConfig) error {
	seen := map[string]bool{}
	for _, p := range cfg.Plans {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return errors.New("plan config: empty plan code")
		}
		if seen[code] {
			return errors.New("plan config: duplicate plan code " + code)
		}
		seen[code] = true
	}
	return nil
}
