package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is the process configuration read from the environment
type Config struct {
	Env  string `env:"ENV,default=development"`
	Port string `env:"PORT,default=8080"`

	// Database: DATABASE_URL wins over the DB_* parts
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT,default=5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE,default=disable"`
	AutoMigrate bool   `env:"AUTO_MIGRATE,default=true"`

	// Auth
	SessionSecret     string `env:"SESSION_SECRET"`
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// Notifications
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
	TelegramAPIURL   string `env:"TELEGRAM_API_URL,default=https://api.telegram.org"`

	// Compositing and catalog
	MockupFront string `env:"MOCKUP_FRONT,default=static/mockups/front.png"`
	MockupBack  string `env:"MOCKUP_BACK,default=static/mockups/back.png"`
	CanvasSize  int    `env:"CANVAS_SIZE,default=800"`
	CatalogPath string `env:"CATALOG_PATH"`

	// Session carts: memory when empty
	RedisURL string `env:"REDIS_URL"`

	// Design archive: local, drive or none
	DesignArchive         string `env:"DESIGN_ARCHIVE,default=local"`
	DesignArchiveDir      string `env:"DESIGN_ARCHIVE_DIR,default=data/designs"`
	GoogleCredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	DriveFolderID         string `env:"DRIVE_FOLDER_ID"`

	// Order work sheet PDF
	ChromePath string `env:"CHROME_PATH"`

	// Public create endpoints
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=5"`
	// Comma separated IPs or CIDRs whose X-Forwarded-For header is believed
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load reads .env outside production and decodes the environment into a Config
func Load() (*Config, error) {
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("⚠️ Config: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("✅ Config: Loaded environment variables from %s", envPath)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envdecode cannot express
func (c *Config) Validate() error {
	switch c.DesignArchive {
	case "local", "drive", "none":
	default:
		return fmt.Errorf("DESIGN_ARCHIVE must be local, drive or none, got %q", c.DesignArchive)
	}
	if c.DesignArchive == "drive" && (c.GoogleCredentialsPath == "" || c.DriveFolderID == "") {
		return fmt.Errorf("DESIGN_ARCHIVE=drive requires GOOGLE_APPLICATION_CREDENTIALS and DRIVE_FOLDER_ID")
	}
	if c.CanvasSize < 0 {
		return fmt.Errorf("CANVAS_SIZE must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES. A bare address becomes a single-host prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(c.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseDSN returns the connection string, or "" when no database is configured
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ListenAddr returns the bind address. PORT from some hosts carries a leading colon.
func (c *Config) ListenAddr() string {
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}

// ConfigureLogging sets the logrus level and, in production, the JSON formatter
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("⚠️ Config: Unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "severity",
				log.FieldKeyMsg:   "message",
			},
		})
	}
	log.SetOutput(os.Stdout)
}
