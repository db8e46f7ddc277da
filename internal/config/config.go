package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"Radiant/internal/calc/dashboard"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Server   Server
	Limits   Limits
	LogLevel log.Level
	Defaults dashboard.Input

	// secrets, environment only
	DatabaseURL string
	TokenKey    string
	BotToken    string
}

type Server struct {
	Addr            string
	CertFile        string
	KeyFile         string
	AllowOrigin     string
	ShutdownTimeout time.Duration
}

type Limits struct {
	LoginRate      float64
	LoginBurst     int
	CalcRate       float64
	CalcBurst      int
	MaxBatchItems  int
	MaxSweepSteps  int
	MaxUploadBytes int64
}

// Load reads the INI file at path, then applies .env and process
// environment overrides. A missing file is not an error; every key has a
// default.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		log.WithField("path", path).Warn("config file not found, using defaults")
	}
	file, err := ini.LooseLoad(path)
	if err != nil {
		return Config{}, err
	}
	cfg := fromFile(file)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func fromFile(file *ini.File) Config {
	server := file.Section("server")
	limits := file.Section("limits")
	defaults := file.Section("defaults")
	d := dashboard.Defaults()

	level, err := log.ParseLevel(file.Section("log").Key("level").MustString("info"))
	if err != nil {
		level = log.InfoLevel
	}

	return Config{
		Server: Server{
			Addr:            server.Key("addr").MustString(":8080"),
			CertFile:        server.Key("cert_file").String(),
			KeyFile:         server.Key("key_file").String(),
			AllowOrigin:     server.Key("allow_origin").MustString("*"),
			ShutdownTimeout: server.Key("shutdown_timeout").MustDuration(5 * time.Second),
		},
		Limits: Limits{
			LoginRate:      limits.Key("login_rate").MustFloat64(1),
			LoginBurst:     limits.Key("login_burst").MustInt(3),
			CalcRate:       limits.Key("calc_rate").MustFloat64(20),
			CalcBurst:      limits.Key("calc_burst").MustInt(40),
			MaxBatchItems:  limits.Key("max_batch_items").MustInt(500),
			MaxSweepSteps:  limits.Key("max_sweep_steps").MustInt(1000),
			MaxUploadBytes: limits.Key("max_upload_bytes").MustInt64(10 << 20),
		},
		LogLevel: level,
		Defaults: dashboard.Input{
			TDeviceC:  defaults.Key("t_device_c").MustFloat64(d.TDeviceC),
			THandC:    defaults.Key("t_hand_c").MustFloat64(d.THandC),
			TAirC:     defaults.Key("t_air_c").MustFloat64(d.TAirC),
			ADeviceM2: defaults.Key("a_device_m2").MustFloat64(d.ADeviceM2),
			AHandM2:   defaults.Key("a_hand_m2").MustFloat64(d.AHandM2),
			DxM:       defaults.Key("dx_m").MustFloat64(d.DxM),
			DyM:       defaults.Key("dy_m").MustFloat64(d.DyM),
			DzM:       defaults.Key("dz_m").MustFloat64(d.DzM),
			AngleDeg:  defaults.Key("angle_deg").MustFloat64(d.AngleDeg),
			HWM2K:     defaults.Key("h_w_m2k").MustFloat64(d.HWM2K),
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RADIANT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("RADIANT_LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("RADIANT_CALC_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Limits.CalcRate = r
		}
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TokenKey = os.Getenv("TOKEN_KEY")
	cfg.BotToken = os.Getenv("TOKEN_BOT")
}
