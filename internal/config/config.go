package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string        `yaml:"env" env:"ENV" env-default:"dev"`
	StoragePath string        `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	Secret      string        `yaml:"secret" env:"SECRET" env-required:"true"`
	TokenTTL    time.Duration `yaml:"token_ttl" env-default:"1h"`
	HTTPServer  `yaml:"http_server"`
	Session     `yaml:"session"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Session struct {
	Lifetime     time.Duration `yaml:"lifetime" env-default:"336h"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"12h"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

// MustLoad reads the config file named by the -config flag or CONFIG_PATH.
// Flags must be defined before it is called since it parses the command line.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(path string) *Config {
	if _, err := os.Stat(path); err != nil {
		log.Panicf("error opening config file: %v", err)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Panicf("error reading config file: %v", err)
	}

	return &cfg
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "sets path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
