package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Server    Server    `koanf:"server"`
	Log       Log       `koanf:"log"`
	Storage   Storage   `koanf:"storage"`
	Database  Database  `koanf:"db"`
	Redis     Redis     `koanf:"redis"`
	Timer     Timer     `koanf:"timer"`
	Metrics   Metrics   `koanf:"metrics"`
	Documents Documents `koanf:"documents"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Log struct {
	Level string `koanf:"level"`
}

type StorageDriver string

const (
	MemoryStorage   StorageDriver = "memory"
	SQLiteStorage   StorageDriver = "sqlite"
	PostgresStorage StorageDriver = "postgres"
	RedisStorage    StorageDriver = "redis"
)

type Storage struct {
	Driver StorageDriver `koanf:"driver"`
	SQLite SQLite        `koanf:"sqlite"`
}

type SQLite struct {
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

type Timer struct {
	DefaultHourlyRate float64       `koanf:"defaulthourlyrate"`
	Tick              time.Duration `koanf:"tick"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

type Documents struct {
	// AverageSizeMB is the assumed size of one document used for storage estimates.
	AverageSizeMB float64 `koanf:"averagesizemb"`
}

func Defaults() Application {
	return Application{
		Server: Server{Addr: ":8181"},
		Log:    Log{Level: "info"},
		Storage: Storage{
			Driver: SQLiteStorage,
			SQLite: SQLite{Path: "./data/freelancer.db"},
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "freelancer",
			Pass:   "",
			Name:   "freelancer",
			Schema: "freelancer",
		},
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "freelancer:",
		},
		Timer: Timer{
			DefaultHourlyRate: 85,
			Tick:              time.Second,
		},
		Metrics:   Metrics{Enabled: true},
		Documents: Documents{AverageSizeMB: 1.2},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("could not load .env file: %v", err)
	}

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FREELANCER_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FREELANCER_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
