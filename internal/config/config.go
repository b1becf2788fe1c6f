package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Session SessionConfig
	Log     LogConfig
	Worker  WorkerConfig
	Router  RouterConfig
	Locator LocatorConfig
	Buffer  BufferConfig
	Layout  LayoutConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type RedisConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

// SessionConfig - время жизни сессии карты (аналог вкладки браузера)
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	NoticeLimit   int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	PositionStream    string
	StreamReadTimeout time.Duration
}

// RouterConfig - внешний сервис маршрутизации (OSRM или Mapbox Directions)
type RouterConfig struct {
	Provider       string
	BaseURL        string
	Profile        string
	AccessToken    string
	RequestTimeout time.Duration
}

// LocatorConfig - ожидание позиции устройства
type LocatorConfig struct {
	Timeout time.Duration
	MaxAge  time.Duration
}

type BufferConfig struct {
	Segments int
}

type LayoutConfig struct {
	DefaultTitle string
	ViewerPath   string
	MinifyLegend bool
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return fromViper(), nil
}

func fromViper() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("API_CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Enabled:     viper.GetBool("REDIS_ENABLED"),
			Host:        viper.GetString("REDIS_HOST"),
			Port:        viper.GetInt("REDIS_PORT"),
			Password:    viper.GetString("REDIS_PASSWORD"),
			DB:          viper.GetInt("REDIS_DB"),
			PoolSize:    viper.GetInt("REDIS_POOL_SIZE"),
			DialTimeout: time.Duration(viper.GetInt("REDIS_DIAL_TIMEOUT")) * time.Second,
		},
		Session: SessionConfig{
			TTL:           time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
			SweepInterval: time.Duration(viper.GetInt("SESSION_SWEEP_INTERVAL")) * time.Second,
			NoticeLimit:   viper.GetInt("SESSION_NOTICE_LIMIT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			PositionStream:    viper.GetString("WORKER_POSITION_STREAM"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
		Router: RouterConfig{
			Provider:       strings.ToLower(viper.GetString("ROUTER_PROVIDER")),
			BaseURL:        viper.GetString("ROUTER_BASE_URL"),
			Profile:        viper.GetString("ROUTER_PROFILE"),
			AccessToken:    viper.GetString("ROUTER_ACCESS_TOKEN"),
			RequestTimeout: time.Duration(viper.GetInt("ROUTER_REQUEST_TIMEOUT")) * time.Second,
		},
		Locator: LocatorConfig{
			Timeout: time.Duration(viper.GetInt("LOCATOR_TIMEOUT")) * time.Millisecond,
			MaxAge:  time.Duration(viper.GetInt("LOCATOR_MAX_AGE")) * time.Millisecond,
		},
		Buffer: BufferConfig{
			Segments: viper.GetInt("BUFFER_SEGMENTS"),
		},
		Layout: LayoutConfig{
			DefaultTitle: viper.GetString("LAYOUT_DEFAULT_TITLE"),
			ViewerPath:   viper.GetString("LAYOUT_VIEWER_PATH"),
			MinifyLegend: viper.GetBool("LAYOUT_MINIFY_LEGEND"),
		},
	}

	cfg.applyDefaults()
	return cfg
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 2 * time.Hour
	}
	if c.Session.SweepInterval == 0 {
		c.Session.SweepInterval = time.Minute
	}
	if c.Session.NoticeLimit == 0 {
		c.Session.NoticeLimit = 50
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "map-position-workers"
	}
	if c.Worker.PositionStream == "" {
		c.Worker.PositionStream = "stream:device:position"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Router.Provider == "" {
		c.Router.Provider = "osrm"
	}
	if c.Router.BaseURL == "" {
		if c.Router.Provider == "mapbox" {
			c.Router.BaseURL = "https://api.mapbox.com"
		} else {
			c.Router.BaseURL = "https://router.project-osrm.org"
		}
	}
	if c.Router.Profile == "" {
		if c.Router.Provider == "mapbox" {
			c.Router.Profile = "mapbox/driving"
		} else {
			c.Router.Profile = "driving"
		}
	}
	if c.Router.RequestTimeout == 0 {
		c.Router.RequestTimeout = 15 * time.Second
	}
	if c.Locator.Timeout == 0 {
		c.Locator.Timeout = 10 * time.Second
	}
	if c.Locator.MaxAge == 0 {
		c.Locator.MaxAge = 30 * time.Second
	}
	if c.Buffer.Segments == 0 {
		c.Buffer.Segments = 64
	}
	if c.Layout.DefaultTitle == "" {
		c.Layout.DefaultTitle = "Peta Layout"
	}
	if c.Layout.ViewerPath == "" {
		c.Layout.ViewerPath = "layout.html"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
