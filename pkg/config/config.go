package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type MongoConfig struct {
	Host       string `yaml:"host"`
	DBName     string `yaml:"dbname"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	CacheTTL string `yaml:"cacheTTL"` // Go duration string, e.g. "5m"
}

// SearchAPIConfig points at the upstream video discovery API.
type SearchAPIConfig struct {
	Key string `yaml:"key"`
	URL string `yaml:"url"`
}

// SerpAPIConfig points at the hashtag discovery API.
type SerpAPIConfig struct {
	Key string `yaml:"key"`
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	SearchAPI SearchAPIConfig `yaml:"searchApi"`
	SerpAPI   SerpAPIConfig   `yaml:"serpApi"`
	Server    ServerConfig    `yaml:"server"`
}

// LoadConfig reads the YAML config file. Secrets can be overridden from the
// environment so they stay out of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideFromEnv(&cfg.Mongo.Password, "MONGO_PASSWORD")
	overrideFromEnv(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideFromEnv(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideFromEnv(&cfg.SearchAPI.Key, "SEARCH_API_KEY")
	overrideFromEnv(&cfg.SearchAPI.URL, "SEARCH_API_URL")
	overrideFromEnv(&cfg.SerpAPI.Key, "SERPAPI_KEY")
	overrideFromEnv(&cfg.SerpAPI.URL, "SERPAPI_API_URL")

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return &cfg, nil
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
