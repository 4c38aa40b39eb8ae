package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultOllamaBaseURL   = "http://host.docker.internal:11434"
	DefaultResultsCSV      = "/app/results/benchmark.csv"
	DefaultNumCtx          = 2048
	DefaultNumPredict      = 256
	DefaultTemperature     = 0.0
	DefaultGPUVRAMGB       = 8
	DefaultMaxEstVRAMUtil  = 0.8
	DefaultAllowedOrigins  = "*"
	DefaultListenAddress   = "0.0.0.0:8000"
	DefaultShutdownTimeout = 5 * time.Second
)

// envKeys maps each viper key to the environment variable it is read from.
var envKeys = map[string]string{
	"ollama_base_url":     "OLLAMA_BASE_URL",
	"results_csv":         "RESULTS_CSV",
	"default_num_ctx":     "DEFAULT_NUM_CTX",
	"default_num_predict": "DEFAULT_NUM_PREDICT",
	"default_temperature": "DEFAULT_TEMPERATURE",
	"gpu_vram_gb":         "GPU_VRAM_GB",
	"max_est_vram_util":   "MAX_EST_VRAM_UTIL",
	"allowed_origins":     "ALLOWED_ORIGINS",
	"listen_address":      "LISTEN_ADDRESS",
	"shutdown_timeout":    "SHUTDOWN_TIMEOUT",
}

var (
	intKeys   = []string{"default_num_ctx", "default_num_predict", "gpu_vram_gb"}
	floatKeys = []string{"default_temperature", "max_est_vram_util"}
)

// LoadOptions controls where Load looks for settings besides the environment.
type LoadOptions struct {
	// ConfigFile is an optional YAML, TOML or JSON file. Environment variables
	// take precedence over it.
	ConfigFile string
	// ListenAddress overrides LISTEN_ADDRESS when set.
	ListenAddress string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		OllamaBaseURL:      DefaultOllamaBaseURL,
		ResultsCSV:         DefaultResultsCSV,
		DefaultNumCtx:      DefaultNumCtx,
		DefaultNumPredict:  DefaultNumPredict,
		DefaultTemperature: DefaultTemperature,
		GPUVRAMGB:          DefaultGPUVRAMGB,
		MaxEstVRAMUtil:     DefaultMaxEstVRAMUtil,
		AllowedOrigins:     DefaultAllowedOrigins,
		Server: ServerConfig{
			ListenAddress:   DefaultListenAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
}

// Load builds the configuration from defaults, the optional config file and
// the environment. A value that cannot be parsed into its field's type is an
// error; the caller is expected to treat it as fatal.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	// An empty variable is a value, not an absent one.
	v.AllowEmptyEnv(true)

	d := Defaults()
	v.SetDefault("ollama_base_url", d.OllamaBaseURL)
	v.SetDefault("results_csv", d.ResultsCSV)
	v.SetDefault("default_num_ctx", d.DefaultNumCtx)
	v.SetDefault("default_num_predict", d.DefaultNumPredict)
	v.SetDefault("default_temperature", d.DefaultTemperature)
	v.SetDefault("gpu_vram_gb", d.GPUVRAMGB)
	v.SetDefault("max_est_vram_util", d.MaxEstVRAMUtil)
	v.SetDefault("allowed_origins", d.AllowedOrigins)
	v.SetDefault("listen_address", d.Server.ListenAddress)
	v.SetDefault("shutdown_timeout", d.Server.ShutdownTimeout)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if opts.ListenAddress != "" {
		v.Set("listen_address", opts.ListenAddress)
	}

	if err := checkNumbers(v); err != nil {
		return nil, err
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkFinite("default_temperature", configuration.DefaultTemperature); err != nil {
		return nil, err
	}
	if err := checkFinite("max_est_vram_util", configuration.MaxEstVRAMUtil); err != nil {
		return nil, err
	}

	if configuration.Server.ListenAddress == "" {
		return nil, errors.New("listen_address is required")
	}
	if configuration.Server.ShutdownTimeout <= 0 {
		return nil, errors.New("shutdown_timeout must be positive")
	}

	return &configuration, nil
}

// checkNumbers parses string values of numeric keys strictly. Viper's decoder
// would accept "" as 0 and "0x800" as 2048.
func checkNumbers(v *viper.Viper) error {
	for _, key := range intKeys {
		raw, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Errorf("invalid integer for %s: %q", key, raw)
		}
	}
	for _, key := range floatKeys {
		raw, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || strings.ContainsAny(raw, "xX") {
			return fmt.Errorf("invalid number for %s: %q", key, raw)
		}
		if err := checkFinite(key, f); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(key string, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number for %s: %v is not finite", key, f)
	}
	return nil
}

// LoadDotEnv loads environment variables from path without overriding ones
// already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
