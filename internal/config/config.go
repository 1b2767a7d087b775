package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full service configuration. Values come from
// config.yaml when present, with SANDBOX_* environment variables
// taking precedence.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
}

type ServerConfig struct {
	Port               int `mapstructure:"port"`
	ReadTimeoutSec     int `mapstructure:"readTimeoutSec"`
	WriteTimeoutSec    int `mapstructure:"writeTimeoutSec"`
	ShutdownTimeoutSec int `mapstructure:"shutdownTimeoutSec"`
}

type ExecutorConfig struct {
	WorkspaceRoot   string `mapstructure:"workspaceRoot"`
	CompileTimeout  int    `mapstructure:"compileTimeoutSec"`
	RunTimeout      int    `mapstructure:"runTimeoutSec"`
	CaseTimeout     int    `mapstructure:"caseTimeoutSec"`
	ProbeTimeoutMs int    `mapstructure:"probeTimeoutMs"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst"`
	MaxConcurrent     int     `mapstructure:"maxConcurrent"`
}

// EvaluatorConfig points at the external scoring service. An empty URL
// disables evaluation entirely.
type EvaluatorConfig struct {
	URL        string `mapstructure:"url"`
	TimeoutSec int    `mapstructure:"timeoutSec"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// Load reads configuration from the given paths (plus the working
// directory) and from the environment.
func Load(configPaths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("SANDBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeoutSec", 15)
	v.SetDefault("server.writeTimeoutSec", 60)
	v.SetDefault("server.shutdownTimeoutSec", 10)

	v.SetDefault("executor.workspaceRoot", "")
	v.SetDefault("executor.compileTimeoutSec", 5)
	v.SetDefault("executor.runTimeoutSec", 10)
	v.SetDefault("executor.caseTimeoutSec", 5)
	v.SetDefault("executor.probeTimeoutMs", 2000)

	v.SetDefault("rateLimit.requestsPerSecond", 5)
	v.SetDefault("rateLimit.burst", 10)
	v.SetDefault("rateLimit.maxConcurrent", 8)

	v.SetDefault("evaluator.url", "")
	v.SetDefault("evaluator.timeoutSec", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults and environment cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
