package sweeper_config

import (
	"time"

	"github.com/AdrianMoldovan/Mentenix/internal/obs"
	fcminfra "github.com/AdrianMoldovan/Mentenix/internal/repository/fcm"
	pginfra "github.com/AdrianMoldovan/Mentenix/internal/repository/postgres"
)

type KafkaCfg struct {
	Enable  bool     `mapstructure:"enable"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type SweepCfg struct {
	Tick            time.Duration `mapstructure:"tick"`
	MaxParallel     int           `mapstructure:"max_parallel"`
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
}

type LogCfg struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
	Env    string `mapstructure:"env"`
	Ver    string `mapstructure:"ver"`
}

func (c LogCfg) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:  c.Level,
		Pretty: c.Pretty,
		App:    "reminder-sweeper",
		Env:    c.Env,
		Ver:    c.Ver,
	}
}

type OTELCfg struct {
	Enable      bool    `mapstructure:"enable"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func (c OTELCfg) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      c.Enable,
		Endpoint:    c.Endpoint,
		ServiceName: "reminder-sweeper",
		SampleRatio: c.SampleRatio,
	}
}

type Config struct {
	DB    pginfra.Config  `mapstructure:"db"`
	Kafka KafkaCfg        `mapstructure:"kafka"`
	FCM   fcminfra.Config `mapstructure:"fcm"`
	Sweep SweepCfg        `mapstructure:"sweep"`
	Log   LogCfg          `mapstructure:"log"`
	OTEL  OTELCfg         `mapstructure:"otel"`
}
