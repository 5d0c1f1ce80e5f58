package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vitaehub/vitaehub/pkg/agent"
	"github.com/vitaehub/vitaehub/pkg/cache"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string       `toml:"addr"`
	Log      Log          `toml:"log"`
	Postgres PGConfig     `toml:"postgres"`
	Redis    cache.Config `toml:"redis"`
	Agent    agent.Config `toml:"agent"`
	Site     Site         `toml:"site"`
	Security Security     `toml:"security"`
}

type Site struct {
	DefaultAvatar string `toml:"default_avatar"`
}

type Security struct {
	EncryptKey string `toml:"encrypt_key"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("VITAE_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()

	c.Redis.Addr = os.Getenv("VITAE_REDIS_ADDR")
	c.Redis.Password = os.Getenv("VITAE_REDIS_PASSWORD")
	if dbStr := os.Getenv("VITAE_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Redis.DB = db
		}
	}

	c.Agent.BaseURL = os.Getenv("VITAE_AGENT_BASE_URL")
	c.Agent.AppName = os.Getenv("VITAE_AGENT_APP_NAME")
	c.Security.EncryptKey = os.Getenv("VITAE_ENCRYPT_KEY")
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("VITAE_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("VITAE_API_LOG_LEVEL")
	l.Path = os.Getenv("VITAE_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
