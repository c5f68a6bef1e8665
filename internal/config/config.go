// Package config loads the YAML startup configuration, applies defaults, and
// builds the MySQL DSN and Redis URL consumed by the rest of the app.
package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "safespace"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultMaxCommentLength    = 1000
	defaultMaxPostLength       = 2000
	defaultSimilarityThreshold = 0.85
	defaultPromotionalWarn     = 3
	defaultPromotionalHide     = 4
	defaultRepetitionWarn      = 5
	defaultRepetitionHide      = 6
	defaultAbuseWarnRate       = 0.4
	defaultAbuseSuspendRate    = 0.6
	defaultAbuseRateMinSample  = 5
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int              `yaml:"port"`
	Env            string           `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig   `yaml:"database"`
	Redis          RedisConfig      `yaml:"redis"`
	JWTSecret      string           `yaml:"jwt_secret"`
	AllowedOrigins []string         `yaml:"allowed_origins"`
	Mail           MailConfig       `yaml:"mail"`
	Moderation     ModerationConfig `yaml:"moderation"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type MailConfig struct {
	Enable       bool   `yaml:"enable"`
	Provider     string `yaml:"provider"` // "smtp" | "resend"
	From         string `yaml:"from"`
	FromName     string `yaml:"from_name"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	ResendAPIKey string `yaml:"resend_api_key"`
	AppealEmail  string `yaml:"appeal_email"`
}

// ModerationConfig carries the engine thresholds and the async abuse-rate
// policy. The repetition values are prior-repeat counts, so promotional
// content warns on its 4th occurrence and hides on its 5th.
type ModerationConfig struct {
	LexiconPath            string  `yaml:"lexicon_path"`
	MaxCommentLength       int     `yaml:"max_comment_length"`
	MaxPostLength          int     `yaml:"max_post_length"`
	SimilarityThreshold    float64 `yaml:"similarity_threshold"`
	PromotionalWarnRepeats int     `yaml:"promotional_warn_repeats"`
	PromotionalHideRepeats int     `yaml:"promotional_hide_repeats"`
	RepetitionWarnRepeats  int     `yaml:"repetition_warn_repeats"`
	RepetitionHideRepeats  int     `yaml:"repetition_hide_repeats"`
	AbuseWarnRate          float64 `yaml:"abuse_warn_rate"`
	AbuseSuspendRate       float64 `yaml:"abuse_suspend_rate"`
	AbuseRateMinComments   int     `yaml:"abuse_rate_min_comments"`
}

// Load reads and validates the YAML config at path, falling back to
// DefaultConfigPath when path is empty.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	cfg.normalize()

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Redis.DB < 0 {
		return nil, fmt.Errorf("invalid redis.db %d in %q, expected >= 0", cfg.Redis.DB, path)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Mail: MailConfig{
			Provider: "smtp",
			SMTPPort: 465,
			FromName: "SafeSpace Moderation System",
		},
		Moderation: ModerationConfig{
			MaxCommentLength:       defaultMaxCommentLength,
			MaxPostLength:          defaultMaxPostLength,
			SimilarityThreshold:    defaultSimilarityThreshold,
			PromotionalWarnRepeats: defaultPromotionalWarn,
			PromotionalHideRepeats: defaultPromotionalHide,
			RepetitionWarnRepeats:  defaultRepetitionWarn,
			RepetitionHideRepeats:  defaultRepetitionHide,
			AbuseWarnRate:          defaultAbuseWarnRate,
			AbuseSuspendRate:       defaultAbuseSuspendRate,
			AbuseRateMinComments:   defaultAbuseRateMinSample,
		},
	}
}

func (c *AppConfig) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		if v := strings.TrimSpace(origin); v != "" {
			origins = append(origins, v)
		}
	}
	c.AllowedOrigins = origins

	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.Database.Loc == "" {
		c.Database.Loc = defaultDBLoc
	}
	if c.Redis.Host == "" && c.Redis.URL == "" {
		c.Redis.Host = defaultRedisHost
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = defaultRedisPort
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = "smtp"
	}
	if c.Mail.FromName == "" {
		c.Mail.FromName = "SafeSpace Moderation System"
	}
	if c.Mail.SMTPPort == 0 {
		c.Mail.SMTPPort = 465
	}
	if c.Mail.AppealEmail == "" {
		c.Mail.AppealEmail = c.Mail.From
	}

	m := &c.Moderation
	if m.MaxCommentLength <= 0 {
		m.MaxCommentLength = defaultMaxCommentLength
	}
	if m.MaxPostLength <= 0 {
		m.MaxPostLength = defaultMaxPostLength
	}
	if m.SimilarityThreshold <= 0 {
		m.SimilarityThreshold = defaultSimilarityThreshold
	}
	if m.PromotionalWarnRepeats <= 0 {
		m.PromotionalWarnRepeats = defaultPromotionalWarn
	}
	if m.PromotionalHideRepeats <= 0 {
		m.PromotionalHideRepeats = defaultPromotionalHide
	}
	if m.RepetitionWarnRepeats <= 0 {
		m.RepetitionWarnRepeats = defaultRepetitionWarn
	}
	if m.RepetitionHideRepeats <= 0 {
		m.RepetitionHideRepeats = defaultRepetitionHide
	}
	if m.AbuseWarnRate <= 0 {
		m.AbuseWarnRate = defaultAbuseWarnRate
	}
	if m.AbuseSuspendRate <= 0 {
		m.AbuseSuspendRate = defaultAbuseSuspendRate
	}
	if m.AbuseRateMinComments <= 0 {
		m.AbuseRateMinComments = defaultAbuseRateMinSample
	}
}

// DSNValue builds the MySQL DSN, preferring an explicit database.dsn.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := strings.TrimSpace(c.Password)
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	params.Set("charset", charset)
	params.Set("parseTime", "true")
	params.Set("loc", loc)

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}

// URLValue builds the Redis connection URL, preferring an explicit redis.url.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		if strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://") {
			return v
		}
		return "redis://" + v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	switch {
	case username != "" && password != "":
		u.User = neturl.UserPassword(username, password)
	case username != "":
		u.User = neturl.User(username)
	case password != "":
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
