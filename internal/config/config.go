// Package config holds the agent configuration. Values come from struct tag
// defaults, then command line flags, then FORGEDFATE_* environment variables.
package config

import (
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Configuration struct {
	Server  Server
	Agent   Agent
	Tester  Tester
	Monitor Monitor
	Auth    Auth
	Notify  Notify
}

type Server struct {
	HTTPPort      int    `default:"8000"`
	ServerMode    string `default:"dev"`
	StaticsFolder string
	// Hosts are added to the self signed certificate of the prod server.
	Hosts []string
}

type Agent struct {
	Version    string `default:"v0.0.0"`
	NumWorkers int    `default:"3"`
	// DataFolder holds the database. Empty means an in-memory database.
	DataFolder string
	LogLevel   string `default:"info" validate:"oneof=debug info warn error"`
	LogFormat  string `default:"console" validate:"oneof=console json"`
	// Base invocations of the exporters, used to render command lines.
	RealtimeCommand      string        `default:"python kismet_realtime_export.py" validate:"required"`
	ElasticsearchCommand string        `default:"python kismet_elasticsearch_export.py" validate:"required"`
	HistoryRetention     time.Duration `default:"168h" validate:"gte=0"`
}

// Tester configures the client of the remote connectivity test service.
// Timeout is sent to the service, Deadline bounds the whole request.
type Tester struct {
	URL                 string        `default:"http://localhost:2501" validate:"required,url"`
	InteractiveTimeout  time.Duration `default:"10s" validate:"gt=0"`
	InteractiveDeadline time.Duration `default:"15s" validate:"gt=0,gtefield=InteractiveTimeout"`
	SilentTimeout       time.Duration `default:"5s" validate:"gt=0"`
	SilentDeadline      time.Duration `default:"8s" validate:"gt=0,gtefield=SilentTimeout"`
}

type Monitor struct {
	Interval  time.Duration `default:"30s" validate:"gt=0"`
	WarmUp    time.Duration `default:"5s" validate:"gte=0"`
	AutoStart bool
}

// Auth configures the bearer token presented to the test service.
type Auth struct {
	Enabled     bool
	JWTFilePath string
}

// Notify configures the optional redis fan-out of live events.
type Notify struct {
	RedisAddr    string
	RedisChannel string `default:"forgedfate.events" validate:"required"`
}

type Option func(*Configuration)

func WithDataFolder(folder string) Option {
	return func(c *Configuration) {
		c.Agent.DataFolder = folder
	}
}

func WithTesterURL(url string) Option {
	return func(c *Configuration) {
		c.Tester.URL = url
	}
}

// NewConfigurationWithOptionsAndDefaults returns a configuration with every default set,
// then applies the options.
func NewConfigurationWithOptionsAndDefaults(opts ...Option) *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		// Only fails on malformed tags.
		panic(err)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the struct tag rules.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
