package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// EnvPrefix scopes the environment variable overrides.
const EnvPrefix = "CATALOG_"

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "ProductCatalog",
			Location: "Local",
			Workdir:  "/var/productcatalog",
			Debug:    false,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DBConfig{
			Type:   "postgres",
			Host:   "127.0.0.1",
			Port:   5432,
			Name:   "productcatalog",
			User:   "postgres",
			Passwd: "",
			Debug:  false,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/productcatalog/catalog.log",
		},
	}
}

// LoadConfig reads the YAML config file when present and applies environment
// overrides on top. A missing file is not an error; defaults apply.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config file %s parse error: %v\n", cfile, err)
			}
		}
	}

	setEnvString("SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvString("SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvString("WEB_HOST", &cfg.Web.Host)
	setEnvInt("WEB_PORT", &cfg.Web.Port)
	setEnvString("DB_TYPE", &cfg.Database.Type)
	setEnvString("DB_HOST", &cfg.Database.Host)
	setEnvInt("DB_PORT", &cfg.Database.Port)
	setEnvString("DB_NAME", &cfg.Database.Name)
	setEnvString("DB_USER", &cfg.Database.User)
	setEnvString("DB_PWD", &cfg.Database.Passwd)
	setEnvBool("DB_DEBUG", &cfg.Database.Debug)
	setEnvString("LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBool("LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvString("LOGGER_FILENAME", &cfg.Logger.Filename)
	return cfg
}

func setEnvString(key string, dst *string) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = v
	}
}

func setEnvInt(key string, dst *int) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = cast.ToInt(v)
	}
}

func setEnvBool(key string, dst *bool) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = cast.ToBool(v)
	}
}
