package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Console   ConsoleConfig   `mapstructure:"console"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	History   HistoryConfig   `mapstructure:"history"`
	Report    ReportConfig    `mapstructure:"report"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type ConsoleConfig struct {
	Binary     string        `mapstructure:"binary"`
	ConfigFile string        `mapstructure:"config_file"`
	ExtraArgs  []string      `mapstructure:"extra_args"`
	Timeout    time.Duration `mapstructure:"timeout"`

	// Location of the timestamps printed by the director, e.g. "Europe/Berlin".
	Location string `mapstructure:"location"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

type DashboardConfig struct {
	ListDays int  `mapstructure:"list_days"`
	ShowTime bool `mapstructure:"show_time"`
}

type HistoryConfig struct {
	SkipThreshold int    `mapstructure:"skip_threshold"`
	StatusGate    string `mapstructure:"status_gate"`
}

type ReportConfig struct {
	Enabled       bool           `mapstructure:"enabled"`
	Schedule      string         `mapstructure:"schedule"`
	LocalPath     string         `mapstructure:"local_path"`
	RetentionDays int            `mapstructure:"retention_days"`
	Compress      bool           `mapstructure:"compress"`
	UploadTargets []UploadTarget `mapstructure:"upload_targets"`

	// Google Drive OAuth helper, see --drive-auth.
	DriveClientSecret string `mapstructure:"drive_client_secret"`
	DriveAuthAddr     string `mapstructure:"drive_auth_addr"`
}

type UploadTarget struct {
	Type    string `mapstructure:"type"`
	Enabled bool   `mapstructure:"enabled"`

	// Google Drive
	CredentialsFile string `mapstructure:"credentials_file"`
	FolderID        string `mapstructure:"folder_id"`

	// AWS S3
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`

	// Telegram
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	SendFile bool   `mapstructure:"send_file"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "bconsole-dashboard")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("console.binary", "bconsole")
	v.SetDefault("console.timeout", 10*time.Second)
	v.SetDefault("console.location", "Local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("dashboard.list_days", 10)
	v.SetDefault("history.skip_threshold", 2)
	v.SetDefault("report.schedule", "0 0 6 * * *")
	v.SetDefault("report.local_path", "reports")
	v.SetDefault("report.retention_days", 30)
	v.SetDefault("report.compress", true)
	v.SetDefault("report.drive_auth_addr", "localhost:8085")

	v.SetEnvPrefix("BDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Console.Binary == "" {
		return fmt.Errorf("console.binary is required")
	}
	if c.Console.Timeout <= 0 {
		return fmt.Errorf("console.timeout must be positive")
	}
	if _, err := c.Console.TimeLocation(); err != nil {
		return fmt.Errorf("console.location: %w", err)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Dashboard.ListDays < 0 {
		return fmt.Errorf("dashboard.list_days must not be negative")
	}
	if c.History.SkipThreshold < 1 {
		return fmt.Errorf("history.skip_threshold must be at least 1")
	}

	if c.Report.Enabled {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Report.Schedule); err != nil {
			return fmt.Errorf("report.schedule: %w", err)
		}
		if c.Report.LocalPath == "" {
			return fmt.Errorf("report.local_path is required when reports are enabled")
		}
		for i, t := range c.Report.UploadTargets {
			if t.Type == "" {
				return fmt.Errorf("report.upload_targets[%d]: type is required", i)
			}
		}
	}

	return nil
}

// TimeLocation resolves the configured director time zone.
func (c *ConsoleConfig) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}

func (c *Config) GetEnabledUploadTargets() []UploadTarget {
	var enabled []UploadTarget
	for _, target := range c.Report.UploadTargets {
		if target.Enabled {
			enabled = append(enabled, target)
		}
	}
	return enabled
}
