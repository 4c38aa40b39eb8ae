package config

import "time"

// Config holds the service settings reported by /config. The JSON names are
// the environment variables each field is read from.
type Config struct {
	OllamaBaseURL      string  `mapstructure:"ollama_base_url" json:"OLLAMA_BASE_URL"`
	ResultsCSV         string  `mapstructure:"results_csv" json:"RESULTS_CSV"`
	DefaultNumCtx      int     `mapstructure:"default_num_ctx" json:"DEFAULT_NUM_CTX"`
	DefaultNumPredict  int     `mapstructure:"default_num_predict" json:"DEFAULT_NUM_PREDICT"`
	DefaultTemperature float64 `mapstructure:"default_temperature" json:"DEFAULT_TEMPERATURE"`
	GPUVRAMGB          int     `mapstructure:"gpu_vram_gb" json:"GPU_VRAM_GB"`
	MaxEstVRAMUtil     float64 `mapstructure:"max_est_vram_util" json:"MAX_EST_VRAM_UTIL"`
	AllowedOrigins     string  `mapstructure:"allowed_origins" json:"ALLOWED_ORIGINS"`

	Server ServerConfig `mapstructure:",squash" json:"-"`
}

// ServerConfig holds process-level settings that are not part of the /config payload.
type ServerConfig struct {
	ListenAddress   string        `mapstructure:"listen_address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
