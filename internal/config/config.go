package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"birdcall-quiz/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	RecordingSourceXenoCanto = "xenocanto"
	RecordingSourceLocal     = "local"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	TaxonomySourceJSON = "json"
	TaxonomySourceSQL  = "sql"

	DistractorScopeTaxonomy = "taxonomy"
	DistractorScopeTargets  = "targets"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Taxonomy  TaxonomyConfig
	Recording RecordingConfig
	XenoCanto XenoCantoConfig
	Local     LocalConfig
	Session   SessionConfig
	Redis     RedisConfig
	Quiz      QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type TaxonomyConfig struct {
	Source    string
	JSONPath  string
	SQLDriver string
	SQLDSN    string
}

type RecordingConfig struct {
	Source string
	Limit  int
}

type XenoCantoConfig struct {
	APIKey      string
	BaseURL     string
	Country     string
	Timeout     time.Duration
	MinInterval time.Duration
}

type LocalConfig struct {
	Dir       string
	URLPrefix string
}

type SessionConfig struct {
	Store           string
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type QuizConfig struct {
	MaxRetries      int
	ChoiceCount     int
	DistractorScope string
	TargetSpecies   []string
	RandomSeed      uint64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "90s")
	v.SetDefault("server.write_timeout", "90s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("taxonomy.source", TaxonomySourceJSON)
	v.SetDefault("taxonomy.json_path", "birdVoiceSearch/mokuroku_parsed.json")
	v.SetDefault("taxonomy.sql.driver", "sqlite3")
	v.SetDefault("taxonomy.sql.dsn", "")

	v.SetDefault("recording.source", RecordingSourceXenoCanto)
	v.SetDefault("recording.limit", 5)

	v.SetDefault("xenocanto.api_key", "")
	v.SetDefault("xenocanto.api_key_file", ".xenocantoapi")
	v.SetDefault("xenocanto.base_url", "https://xeno-canto.org/api/3/recordings")
	v.SetDefault("xenocanto.country", "japan")
	v.SetDefault("xenocanto.timeout", "20s")
	v.SetDefault("xenocanto.min_interval", "10s")

	v.SetDefault("local.dir", "sound")
	v.SetDefault("local.url_prefix", "/sound")

	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.ttl", "0s")
	v.SetDefault("session.max_entries", 0)
	v.SetDefault("session.cleanup_interval", "10m")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("quiz.max_retries", 5)
	v.SetDefault("quiz.choice_count", 4)
	v.SetDefault("quiz.distractor_scope", DistractorScopeTaxonomy)
	v.SetDefault("quiz.target_species", domain.DefaultTargetSpecies)
	v.SetDefault("quiz.random_seed", 0)
}

// LoadConfig reads config.yaml (optional), a local .env file (optional) and
// the process environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// Local development: .env values become regular environment variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("xenocanto.api_key", "XENO_CANTO_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Log the config file being used
	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	if cfg.XenoCanto.APIKey == "" {
		key, err := readAPIKeyFile(v.GetString("xenocanto.api_key_file"))
		if err != nil {
			return nil, err
		}
		cfg.XenoCanto.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Taxonomy: TaxonomyConfig{
			Source:    v.GetString("taxonomy.source"),
			JSONPath:  v.GetString("taxonomy.json_path"),
			SQLDriver: v.GetString("taxonomy.sql.driver"),
			SQLDSN:    v.GetString("taxonomy.sql.dsn"),
		},
		Recording: RecordingConfig{
			Source: v.GetString("recording.source"),
			Limit:  v.GetInt("recording.limit"),
		},
		XenoCanto: XenoCantoConfig{
			APIKey:      strings.TrimSpace(v.GetString("xenocanto.api_key")),
			BaseURL:     v.GetString("xenocanto.base_url"),
			Country:     v.GetString("xenocanto.country"),
			Timeout:     v.GetDuration("xenocanto.timeout"),
			MinInterval: v.GetDuration("xenocanto.min_interval"),
		},
		Local: LocalConfig{
			Dir:       v.GetString("local.dir"),
			URLPrefix: v.GetString("local.url_prefix"),
		},
		Session: SessionConfig{
			Store:           v.GetString("session.store"),
			TTL:             v.GetDuration("session.ttl"),
			MaxEntries:      v.GetInt("session.max_entries"),
			CleanupInterval: v.GetDuration("session.cleanup_interval"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Quiz: QuizConfig{
			MaxRetries:      v.GetInt("quiz.max_retries"),
			ChoiceCount:     v.GetInt("quiz.choice_count"),
			DistractorScope: v.GetString("quiz.distractor_scope"),
			TargetSpecies:   v.GetStringSlice("quiz.target_species"),
			RandomSeed:      v.GetUint64("quiz.random_seed"),
		},
	}
}

// readAPIKeyFile returns the trimmed content of path, or "" when it does not exist.
func readAPIKeyFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read API key file %s: %w", path, err)
	}
	key := strings.TrimSpace(string(data))
	if key != "" {
		fmt.Printf("Loaded xeno-canto API key from %s\n", path)
	}
	return key, nil
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	switch c.Recording.Source {
	case RecordingSourceXenoCanto, RecordingSourceLocal:
	default:
		return fmt.Errorf("unsupported recording source: %q", c.Recording.Source)
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unsupported session store: %q", c.Session.Store)
	}
	switch c.Taxonomy.Source {
	case TaxonomySourceJSON, TaxonomySourceSQL:
	default:
		return fmt.Errorf("unsupported taxonomy source: %q", c.Taxonomy.Source)
	}
	switch c.Quiz.DistractorScope {
	case DistractorScopeTaxonomy, DistractorScopeTargets:
	default:
		return fmt.Errorf("unsupported distractor scope: %q", c.Quiz.DistractorScope)
	}
	if c.Quiz.MaxRetries < 1 {
		return fmt.Errorf("quiz.max_retries must be at least 1, got %d", c.Quiz.MaxRetries)
	}
	if c.Quiz.ChoiceCount < 2 {
		return fmt.Errorf("quiz.choice_count must be at least 2, got %d", c.Quiz.ChoiceCount)
	}
	if c.Recording.Limit < 1 {
		return fmt.Errorf("recording.limit must be at least 1, got %d", c.Recording.Limit)
	}
	if c.Session.MaxEntries < 0 {
		return fmt.Errorf("session.max_entries must not be negative")
	}
	return nil
}
