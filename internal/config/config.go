package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string `yaml:"listen_addr"`
	Port             string `yaml:"port"`
	DatabasePath     string `yaml:"database_path"`
	GinMode          string `yaml:"gin_mode"`
	LogLevel         string `yaml:"log_level"`
	RootUserName     string `yaml:"root_user_name"`
	RootUserPassword string `yaml:"root_user_password"`
}

// Load 读取应用配置：先加载可选的 YAML 配置文件（CONFIG_PATH 或
// ./config.yaml），再以环境变量覆盖，缺失项回退到安全默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	overlayEnv(&cfg.Port, "PORT")
	overlayEnv(&cfg.ListenAddr, "LISTEN_ADDR")
	overlayEnv(&cfg.DatabasePath, "DATABASE_PATH")
	overlayEnv(&cfg.GinMode, "GIN_MODE")
	overlayEnv(&cfg.LogLevel, "LOG_LEVEL")
	overlayEnv(&cfg.RootUserName, "ROOT_USER_NAME")
	overlayEnv(&cfg.RootUserPassword, "ROOT_USER_PASSWORD")

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "blog.db"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "release"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func overlayEnv(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}
