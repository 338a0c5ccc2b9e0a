package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/securecookie"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	envPrefix      = "WIKI"
	configFileName = "wiki"
)

// Config holds the settings of the wiki server and CLI.
type Config struct {
	HTTPPort string

	DBType string
	DBPath string
	DBDSN  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret string
	SessionName   string

	StoragePath        string
	StorageCompression string

	PageSize int

	LogLevel  string
	LogFormat string

	AllowedOrigins []string

	AdminUsername string
	AdminPassword string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "4001")
	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.path", ".data/wiki.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.name", "wiki-session")
	v.SetDefault("storage.path", ".data/attachments")
	v.SetDefault("storage.compression", "nop")
	v.SetDefault("api.page_size", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
}

// LoadConfig reads wiki.yml from . or ./config if present and overlays WIKI_*
// environment variables, so db.type is read from WIKI_DB_TYPE.
func LoadConfig() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configFileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.Warnf("error reading config file: %v", err)
		}
	}

	cfg := &Config{
		HTTPPort:           v.GetString("http.port"),
		DBType:             v.GetString("db.type"),
		DBPath:             v.GetString("db.path"),
		DBDSN:              v.GetString("db.dsn"),
		RedisAddr:          v.GetString("redis.addr"),
		RedisPassword:      v.GetString("redis.password"),
		RedisDB:            v.GetInt("redis.db"),
		SessionSecret:      v.GetString("session.secret"),
		SessionName:        v.GetString("session.name"),
		StoragePath:        v.GetString("storage.path"),
		StorageCompression: v.GetString("storage.compression"),
		PageSize:           v.GetInt("api.page_size"),
		LogLevel:           v.GetString("log.level"),
		LogFormat:          v.GetString("log.format"),
		AllowedOrigins:     v.GetStringSlice("cors.allowed_origins"),
		AdminUsername:      v.GetString("admin.username"),
		AdminPassword:      v.GetString("admin.password"),
	}

	if cfg.SessionSecret == "" {
		logrus.Warn("WIKI_SESSION_SECRET is not set, sessions will not survive a restart")
		cfg.SessionSecret = string(securecookie.GenerateRandomKey(32))
	}

	return cfg
}

// ConfigureLogging applies the log level and format to the standard logrus logger.
func ConfigureLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// OpenDb opens the database selected by db.type.
func OpenDb(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBType {
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, errors.New("db.dsn is required for postgres")
		}
		return gorm.Open(postgres.Open(cfg.DBDSN), gormConfig)
	case "sqlite", "":
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm); err != nil {
			return nil, err
		}
		return gorm.Open(sqlite.Open(cfg.DBPath+"?_busy_timeout=5000"), gormConfig)
	default:
		return nil, errors.New("unsupported db.type: " + cfg.DBType)
	}
}

// GetDb opens the configured database and exits the process on failure.
func GetDb(cfg *Config) *gorm.DB {
	db, err := OpenDb(cfg)
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}

	return db
}
