package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"comrent-backend/internal/model"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Seed       SeedConfig       `yaml:"seed"`
	Watch      WatchConfig      `yaml:"watch"`
	History    HistoryConfig    `yaml:"history"`
	Mailer     MailerConfig     `yaml:"mailer"`
	Invoice    InvoiceConfig    `yaml:"invoice"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// SeedConfig describes the state the shop starts with on every boot. There
// is no persistence; a restart always comes back to exactly this.
type SeedConfig struct {
	UnitCount  int                 `yaml:"unit_count"`
	UnitPrefix string              `yaml:"unit_prefix"`
	Pricing    []model.PricingTier `yaml:"pricing"`
}

// WatchConfig drives the admin-side change detector loop.
type WatchConfig struct {
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// HistoryConfig holds the session archive database settings.
type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

// MailerConfig holds the SMTP relay settings. When disabled, invoice sends
// are simulated and logged.
type MailerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// InvoiceConfig holds the invoice branding and the default email template.
type InvoiceConfig struct {
	CompanyName string `yaml:"company_name"`
	Subject     string `yaml:"subject"`
	Body        string `yaml:"body"`
}

// WorkerPoolConfig sizes the session archive worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

const defaultInvoiceSubject = "Your Invoice from {{companyName}}"

const defaultInvoiceBody = `Hello {{customerName}},

Thank you for choosing {{companyName}}!

Here are the details of your recent session:
- PC: {{pcName}}
- Duration: {{duration}}
- Total Amount: {{amount}}

We hope to see you again soon!

Best,
The {{companyName}} Team
`

// Default returns the configuration the app runs with when no file is
// supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from the given path and fills in defaults
// for anything left unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 25
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 50
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Seed.UnitCount <= 0 {
		cfg.Seed.UnitCount = 12
	}
	if cfg.Seed.UnitPrefix == "" {
		cfg.Seed.UnitPrefix = "PC-"
	}
	if len(cfg.Seed.Pricing) == 0 {
		cfg.Seed.Pricing = []model.PricingTier{
			{Minutes: 30, Label: "30 minutes", Price: 30},
			{Minutes: 60, Label: "1 hour", Price: 50},
			{Minutes: 120, Label: "2 hours", Price: 90},
			{Minutes: 180, Label: "3 hours", Price: 120},
		}
	}

	if cfg.Watch.IntervalSeconds <= 0 {
		cfg.Watch.IntervalSeconds = 5
	}
	cfg.Watch.Interval = time.Duration(cfg.Watch.IntervalSeconds) * time.Second

	if cfg.History.DSN == "" {
		cfg.History.DSN = "file::memory:?cache=shared"
	}

	if cfg.Invoice.CompanyName == "" {
		cfg.Invoice.CompanyName = "ComRent"
	}
	if cfg.Invoice.Subject == "" {
		cfg.Invoice.Subject = defaultInvoiceSubject
	}
	if cfg.Invoice.Body == "" {
		cfg.Invoice.Body = defaultInvoiceBody
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
}

// UnitNames expands the seed settings into the initial unit names
// (PC-01, PC-02, ...).
func (cfg *Config) UnitNames() []string {
	names := make([]string, cfg.Seed.UnitCount)
	for i := range names {
		names[i] = fmt.Sprintf("%s%02d", cfg.Seed.UnitPrefix, i+1)
	}
	return names
}
