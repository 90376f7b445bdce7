package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/schedule"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Mongo struct {
		URI                string `koanf:"uri"`
		Database           string `koanf:"database"`
		OrdersCollection   string `koanf:"orders_collection"`
		ProductsCollection string `koanf:"products_collection"`
	} `koanf:"mongo"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Cart struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"cart"`

	Rabbit struct {
		URL string `koanf:"url"` // empty disables the notifier
	} `koanf:"rabbitmq"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TTL       time.Duration `koanf:"ttl"`
	} `koanf:"security"`

	// Bakery holds the scheduling constants the availability engine
	// runs on. Closing hour 0 marks a day the bakery never opens.
	Bakery struct {
		ClosingHours map[string]int `koanf:"closing_hours"`
		CutoffHours  int            `koanf:"cutoff_hours"`
		DaysAhead    int            `koanf:"days_ahead"`
		WeekdayOpen  int            `koanf:"weekday_open"`
		WeekdayClose int            `koanf:"weekday_close"`
		WeekendOpen  int            `koanf:"weekend_open"`
		WeekendClose int            `koanf:"weekend_close"`

		Fettisdagen struct {
			Date      string `koanf:"date"`
			MinOrder  int    `koanf:"min_order"`
			OpenHour  int    `koanf:"open_hour"`
			CloseHour int    `koanf:"close_hour"`
		} `koanf:"fettisdagen"`
	} `koanf:"bakery"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix BAGERI_, nested with __)
	// e.g. BAGERI_MONGO__URI, BAGERI_REDIS__PASSWORD
	if err := k.Load(env.Provider("BAGERI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "BAGERI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri required")
	}
	if len(c.Bakery.ClosingHours) != 7 {
		return fmt.Errorf("bakery.closing_hours must list all seven weekdays")
	}
	for day := range c.Bakery.ClosingHours {
		if !domain.Weekday(day).Valid() {
			return fmt.Errorf("bakery.closing_hours: unknown weekday %q", day)
		}
	}
	if c.Bakery.CutoffHours < 0 {
		return fmt.Errorf("bakery.cutoff_hours must not be negative")
	}
	if c.Bakery.DaysAhead < 1 {
		return fmt.Errorf("bakery.days_ahead must be at least 1")
	}
	if _, err := schedule.ParseDate(c.Bakery.Fettisdagen.Date); err != nil {
		return fmt.Errorf("bakery.fettisdagen.date: %w", err)
	}
	return nil
}

// Schedule maps the bakery section onto the engine's config.
func (c Config) Schedule() schedule.Config {
	closing := make(map[domain.Weekday]int, len(c.Bakery.ClosingHours))
	for day, hour := range c.Bakery.ClosingHours {
		closing[domain.Weekday(day)] = hour
	}
	return schedule.Config{
		ClosingHours: closing,
		CutoffHours:  c.Bakery.CutoffHours,
		DaysAhead:    c.Bakery.DaysAhead,
		WeekdayOpen:  c.Bakery.WeekdayOpen,
		WeekdayClose: c.Bakery.WeekdayClose,
		WeekendOpen:  c.Bakery.WeekendOpen,
		WeekendClose: c.Bakery.WeekendClose,
		Fettisdagen: schedule.Fettisdagen{
			Date:      c.Bakery.Fettisdagen.Date,
			MinOrder:  c.Bakery.Fettisdagen.MinOrder,
			OpenHour:  c.Bakery.Fettisdagen.OpenHour,
			CloseHour: c.Bakery.Fettisdagen.CloseHour,
		},
	}
}
