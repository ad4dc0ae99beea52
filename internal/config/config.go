package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"congreso/internal/domain"
	"congreso/pkg/tz"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	defaultDatabaseURL = "postgres://localhost:5432/congreso?sslmode=disable"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	Store             string `env:"STORE" envDefault:"postgres"`
	DatabaseURL       string `env:"DATABASE_URL"`
	DBMaxConns        int32  `env:"DB_MAX_CONNS" envDefault:"20"`
	DBConnectAttempts int    `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
	RunMigrations     bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
	DefaultLocale  string `env:"DEFAULT_LOCALE" envDefault:"es"`
	TimeZone       string `env:"EVENT_TIMEZONE" envDefault:"America/Mexico_City"`

	// Window bounds, RFC 3339 or DD/MM/YYYY HH:MM in EVENT_TIMEZONE.
	RegistrationOpens  string `env:"REGISTRATION_OPENS"`
	RegistrationCloses string `env:"REGISTRATION_CLOSES"`
	WorkshopsOpens     string `env:"WORKSHOPS_OPENS"`
	WorkshopsCloses    string `env:"WORKSHOPS_CLOSES"`
	ContestOpens       string `env:"CONTEST_OPENS"`
	ContestCloses      string `env:"CONTEST_CLOSES"`

	AttendanceBefore time.Duration `env:"ATTENDANCE_BEFORE" envDefault:"15m"`
	AttendanceAfter  time.Duration `env:"ATTENDANCE_AFTER" envDefault:"15m"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`

	// Resolved by validate.
	Location *time.Location
	Level    zapcore.Level
	Windows  map[string]domain.Window
}

// Load reads an optional .env file, then the process environment, and validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			c.DatabaseURL = defaultDatabaseURL
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL: missing scheme or host")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	c.Level = level

	if c.Location, err = tz.Load(c.TimeZone); err != nil {
		return fmt.Errorf("config: EVENT_TIMEZONE: %w", err)
	}

	if c.AttendanceBefore < 0 || c.AttendanceAfter < 0 {
		return fmt.Errorf("config: ATTENDANCE_BEFORE and ATTENDANCE_AFTER must not be negative")
	}

	c.Windows = make(map[string]domain.Window, 3)
	for _, w := range []struct {
		name, opensVar, closesVar, opens, closes string
	}{
		{domain.WindowRegistration, "REGISTRATION_OPENS", "REGISTRATION_CLOSES", c.RegistrationOpens, c.RegistrationCloses},
		{domain.WindowWorkshops, "WORKSHOPS_OPENS", "WORKSHOPS_CLOSES", c.WorkshopsOpens, c.WorkshopsCloses},
		{domain.WindowContest, "CONTEST_OPENS", "CONTEST_CLOSES", c.ContestOpens, c.ContestCloses},
	} {
		start, err := tz.Parse(w.opens, c.Location)
		if err != nil {
			return fmt.Errorf("config: %s: %w", w.opensVar, err)
		}
		end, err := tz.Parse(w.closes, c.Location)
		if err != nil {
			return fmt.Errorf("config: %s: %w", w.closesVar, err)
		}
		if start.IsZero() && end.IsZero() {
			// Unconfigured windows stay closed.
			continue
		}
		win := domain.Window{Start: start, End: end}
		if !win.Valid() {
			return fmt.Errorf("config: %s and %s must both be set, closing after opening", w.opensVar, w.closesVar)
		}
		c.Windows[w.name] = win
	}

	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}
	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID must be a Discord channel ID (digits only)")
		}
	}

	return nil
}

// DiscordEnabled reports whether promotion announcements are configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// MissingWindows lists the named windows that will always report closed.
func (c *Config) MissingWindows() []string {
	var missing []string
	for _, name := range []string{domain.WindowRegistration, domain.WindowWorkshops, domain.WindowContest} {
		if _, ok := c.Windows[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
