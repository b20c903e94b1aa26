package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	App struct {
		Port            string `mapstructure:"port"`
		Env             string `mapstructure:"env"`
		LogLevel        string `mapstructure:"logLevel"`
		ReadTimeout     int    `mapstructure:"readTimeout"`
		WriteTimeout    int    `mapstructure:"writeTimeout"`
		ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	} `mapstructure:"app"`
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	} `mapstructure:"smtp"`
	Processing struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"processing"`
	Notification struct {
		TemplatePath string `mapstructure:"templatePath"`
		OutputDir    string `mapstructure:"outputDir"`
	} `mapstructure:"notification"`
}

// LoadConfig reads config.yml from the working directory, layered with
// environment variables. Outside production a .env file at the given
// path is loaded first, if present.
func LoadConfig(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, err
			}
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.logLevel", "info")
	viper.SetDefault("app.readTimeout", 15)
	viper.SetDefault("app.writeTimeout", 15)
	viper.SetDefault("app.shutdownTimeout", 30)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("notification.templatePath", "templates/nota_debito.txt")
	viper.SetDefault("notification.outputDir", "notas")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
