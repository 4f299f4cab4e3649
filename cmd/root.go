package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ecolink"
)

type Config struct {
	DirectoryFile string            `mapstructure:"directory-file"`
	Classifier    *ClassifierConfig `mapstructure:"classifier"`
	Server        *ServerConfig     `mapstructure:"server"`
}

type ClassifierConfig struct {
	Backend      string        `mapstructure:"backend"`
	BaseURL      string        `mapstructure:"base-url"`
	Model        string        `mapstructure:"model"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max-retries"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ecolink matches companies by the waste they produce and accept",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("classifier.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("classifier.backend", "rest")
	viper.SetDefault("classifier.model", "gemini-2.0-flash")
	viper.SetDefault("classifier.timeout", 20*time.Second)
	viper.SetDefault("classifier.max-retries", 0)
	viper.SetDefault("classifier.max-log-length", 200)
	viper.SetDefault("server.addr", ":8080")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ecolink.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("directory-file", "", "yaml or json company directory (default is the built-in sample)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("directory-file", rootCmd.PersistentFlags().Lookup("directory-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional; an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Classifier == nil {
		config.Classifier = &ClassifierConfig{}
	}
	if config.Server == nil {
		config.Server = &ServerConfig{}
	}

	return config, nil
}
