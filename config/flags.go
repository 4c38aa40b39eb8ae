package config

import "github.com/spf13/pflag"

// CliConfig holds the command line arguments.
type CliConfig struct {
	ConfigFile string
	EnvFile    string
	Listen     string
	Debug      bool
}

// Register binds the arguments to fs.
func (c *CliConfig) Register(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "", "Path to an optional config file (yaml, toml or json)")
	fs.StringVar(&c.EnvFile, "env-file", ".env", "Path to a dotenv file; ignored if missing")
	fs.StringVar(&c.Listen, "listen", "", "Listen address, overrides LISTEN_ADDRESS")
	fs.BoolVarP(&c.Debug, "debug", "d", false, "Enable debug mode")
}

// LoadOptions converts the arguments into options for Load.
func (c *CliConfig) LoadOptions() LoadOptions {
	return LoadOptions{
		ConfigFile:    c.ConfigFile,
		ListenAddress: c.Listen,
	}
}
