// Package rconfig loads the RIPPER learner's tunables from a YAML file via
// viper, with hot-reload on file change, adapted from the teacher's
// rock-share/base/config/conf.go.
package rconfig

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LearnerSection mirrors ripper.Config's field names so it can be
// unmarshalled directly from a "learner_config" YAML section.
type LearnerSection struct {
	NumOptimizations int     `mapstructure:"num_optimizations"`
	Seed             int64   `mapstructure:"seed"`
	NumFolds         int     `mapstructure:"num_folds"`
	MinNo            float64 `mapstructure:"min_no"`
	CheckErr         bool    `mapstructure:"check_err"`
	UsePruning       bool    `mapstructure:"use_pruning"`
}

// LoggerSection mirrors pkg/logging.Config.
type LoggerSection struct {
	Path         string `mapstructure:"path"`
	MaxAge       int64  `mapstructure:"max_age"`
	RotationTime int64  `mapstructure:"rotation_time"`
	RotationSize uint32 `mapstructure:"rotation_size"`
}

// ServerSection configures cmd/ripperserver.
type ServerSection struct {
	HTTPPort string `mapstructure:"http_port"`
}

// AllConfig is the top-level document loaded from config.yml.
type AllConfig struct {
	Learner LearnerSection `mapstructure:"learner_config"`
	Logger  LoggerSection  `mapstructure:"logger_config"`
	Server  ServerSection  `mapstructure:"server_config"`
}

// Load reads configPath (directory) for a "config.yml" and unmarshals it
// into an AllConfig. When onChange is non-nil it also watches the file and
// invokes onChange with the re-read config on every write; otherwise the
// file is not watched.
func Load(configPath string, onChange func(*AllConfig)) (*AllConfig, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetDefault("learner_config.seed", 1)
	v.SetDefault("learner_config.check_err", true)
	v.SetDefault("learner_config.use_pruning", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	all := &AllConfig{}
	if err := v.Unmarshal(all); err != nil {
		return nil, err
	}
	applyDefaults(all)

	if onChange != nil {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("rconfig: config file changed: %s", e.Name)
			reloaded := &AllConfig{}
			if err := v.Unmarshal(reloaded); err != nil {
				log.Printf("rconfig: reload failed: %v", err)
				return
			}
			applyDefaults(reloaded)
			onChange(reloaded)
		})
	}

	return all, nil
}

func applyDefaults(c *AllConfig) {
	if c.Learner.NumOptimizations == 0 {
		c.Learner.NumOptimizations = 2
	}
	if c.Learner.NumFolds == 0 {
		c.Learner.NumFolds = 3
	}
	if c.Learner.MinNo == 0 {
		c.Learner.MinNo = 2.0
	}
	if c.Logger.Path == "" {
		c.Logger.Path = "./log"
	}
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = ":8080"
	}
}
