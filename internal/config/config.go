package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Activity  ActivityConfig  `mapstructure:"activity"`
	Teacher   TeacherConfig   `mapstructure:"teacher"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

// Configured 判断数据库连接信息是否齐全。
// 缺失是正常状态（系统以 OFFLINE 运行），不是错误。
func (c *DatabaseConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != "" && c.DBName != ""
}

// DSN 拼接 go-sql-driver 格式的连接串
func (c *DatabaseConfig) DSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName, charset, c.ParseTime)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ActivityConfig struct {
	// ID 当前数据采集活动的标识，进程生命周期内固定
	ID string `mapstructure:"id"`
	// CacheTTL 仪表盘读缓存的有效期
	CacheTTL time.Duration `mapstructure:"cache_ttl_seconds"`
}

type TeacherConfig struct {
	// AccessCodeHash 教师访问码的 bcrypt 哈希，为空时教师接口关闭
	AccessCodeHash string `mapstructure:"access_code_hash"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("HEATCURVE")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// 活动与教师访问
	viper.BindEnv("activity.id", "ACTIVITY_ID")
	viper.BindEnv("teacher.access_code_hash", "TEACHER_ACCESS_CODE_HASH")
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.charset", "utf8mb4")
	viper.SetDefault("database.parsetime", true)
	viper.SetDefault("activity.id", "2025-heat-curve-01")
	viper.SetDefault("activity.cache_ttl_seconds", 5)
	viper.SetDefault("jwt.expire_hours", 12)

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件缺失时仍可启动（数据库视为未配置，环境变量仍然生效）
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Activity.CacheTTL = cfg.Activity.CacheTTL * time.Second

	if cfg.Server.Mode == "release" && cfg.Teacher.AccessCodeHash != "" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}
