package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		SiteURL string `mapstructure:"site_url"`
	} `mapstructure:"app"`
	Storage struct {
		Driver     string `mapstructure:"driver"`
		SQLitePath string `mapstructure:"sqlite_path"`
	} `mapstructure:"storage"`
	DB struct {
		DSN        string `mapstructure:"dsn"`
		Migrations string `mapstructure:"migrations"`
	} `mapstructure:"db"`
	Redis struct {
		Addr      string `mapstructure:"addr"`
		Password  string `mapstructure:"password"`
		DB        int    `mapstructure:"db"`
		Namespace string `mapstructure:"namespace"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		Password      string        `mapstructure:"password"`
		PasswordHash  string        `mapstructure:"password_hash"`
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Publish struct {
		Format      string `mapstructure:"format"`
		GitHubAPI   string `mapstructure:"github_api"`
		DefaultPath string `mapstructure:"default_path"`
	} `mapstructure:"publish"`
	Backup struct {
		Enabled  bool          `mapstructure:"enabled"`
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"backup"`
	Media struct {
		Uploader      string `mapstructure:"uploader"`
		MaxImageWidth int    `mapstructure:"max_image_width"`
		MaxResumeSize int64  `mapstructure:"max_resume_size"`
	} `mapstructure:"media"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads .env, then an optional config.yaml from paths (default "."),
// then environment variables.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.site_url", "SITE_URL")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.sqlite_path", "SQLITE_PATH")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrations", "DB_MIGRATIONS")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.namespace", "REDIS_NAMESPACE")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	v.BindEnv("auth.password", "ADMIN_PASSWORD")
	v.BindEnv("auth.password_hash", "ADMIN_PASSWORD_HASH")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("publish.format", "PUBLISH_FORMAT")
	v.BindEnv("publish.github_api", "GITHUB_API_URL")
	v.BindEnv("media.uploader", "UPLOADER")
	v.BindEnv("backup.enabled", "BACKUP_ENABLED")
	v.BindEnv("backup.interval", "BACKUP_INTERVAL")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	if err == nil {
		cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	}
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.site_url", "http://localhost:3000")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.sqlite_path", "data/portfolio.db")
	v.SetDefault("db.migrations", "file://migrations")
	v.SetDefault("kafka.topic", "portfolio.content.events")
	v.SetDefault("kafka.group_id", "portfolio-history-group")
	v.SetDefault("auth.token_lifespan", 12*time.Hour)
	v.SetDefault("publish.format", "typescript")
	v.SetDefault("publish.default_path", "src/constants.ts")
	v.SetDefault("media.uploader", "dataurl")
	v.SetDefault("media.max_image_width", 512)
	v.SetDefault("media.max_resume_size", 2*1024*1024)
	v.SetDefault("cloudinary.folder", "portfolio")
	v.SetDefault("backup.enabled", false)
}

// splitList flattens comma separated entries, which is how KAFKA_BROKERS arrives from env.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
