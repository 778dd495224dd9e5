package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type CookieConfig struct {
	// Флаги безопасности кук берём из конфига, не хардкодим
	Domain   string `yaml:"domain"`
	SameSite string `yaml:"same_site"` // "", "lax", "strict", "none"
	Secure   bool   `yaml:"secure"`
}

type JWTConfig struct {
	// Три независимых секрета: компрометация одного не позволяет подделать другой
	AccessSecret  string        `yaml:"-"`
	RefreshSecret string        `yaml:"-"`
	ResetSecret   string        `yaml:"-"`
	AccessTTL     time.Duration `yaml:"-"`
	RefreshTTL    time.Duration `yaml:"-"`
	ResetTTL      time.Duration `yaml:"-"`
}

// yaml.v3 не умеет time.Duration из строк вида "15m" — парсим сами
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func (c *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		ResetSecret   string `yaml:"reset_secret"`
		AccessTTL     string `yaml:"access_ttl"`
		RefreshTTL    string `yaml:"refresh_ttl"`
		ResetTTL      string `yaml:"reset_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.AccessSecret = raw.AccessSecret
	c.RefreshSecret = raw.RefreshSecret
	c.ResetSecret = raw.ResetSecret

	var err error
	if c.AccessTTL, err = parseDuration(raw.AccessTTL); err != nil {
		return err
	}
	if c.RefreshTTL, err = parseDuration(raw.RefreshTTL); err != nil {
		return err
	}
	if c.ResetTTL, err = parseDuration(raw.ResetTTL); err != nil {
		return err
	}
	return nil
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

type OTPConfig struct {
	TTL          time.Duration `yaml:"-"`
	ResendWindow time.Duration `yaml:"-"`
	MaxResends   int           `yaml:"-"`
}

func (c *OTPConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL          string `yaml:"ttl"`
		ResendWindow string `yaml:"resend_window"`
		MaxResends   int    `yaml:"max_resends"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.MaxResends = raw.MaxResends

	var err error
	if c.TTL, err = parseDuration(raw.TTL); err != nil {
		return err
	}
	if c.ResendWindow, err = parseDuration(raw.ResendWindow); err != nil {
		return err
	}
	return nil
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT    JWTConfig    `yaml:"jwt"`
	Google GoogleConfig `yaml:"google"`
	Cookie CookieConfig `yaml:"cookie"`
	OTP    OTPConfig    `yaml:"otp"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// дефолты для локальной разработки
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = time.Hour
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = time.Hour
	}
	if cfg.JWT.ResetTTL == 0 {
		cfg.JWT.ResetTTL = 15 * time.Minute
	}
	if cfg.Cookie.SameSite == "" {
		cfg.Cookie.SameSite = "lax"
	}
	if cfg.OTP.TTL == 0 {
		cfg.OTP.TTL = 5 * time.Minute
	}
	if cfg.OTP.ResendWindow == 0 {
		cfg.OTP.ResendWindow = 10 * time.Minute
	}
	if cfg.OTP.MaxResends == 0 {
		cfg.OTP.MaxResends = 3
	}
	return &cfg
}
