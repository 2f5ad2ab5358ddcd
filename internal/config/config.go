package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrConfigNotLoaded = errors.New("config not loaded")
)

type Environment string

const (
	Production  Environment = "prod"
	Development Environment = "dev"
)

func (e *Environment) SetValue(s string) error {
	*e = Environment(s)
	if *e != Production && *e != Development {
		return configNotLoadedErr(`only "prod" and "dev" environments are allowed`)
	}
	return nil
}

type StorageDriver string

const (
	Postgres StorageDriver = "postgres"
	Memory   StorageDriver = "memory"
)

func (d *StorageDriver) SetValue(s string) error {
	*d = StorageDriver(s)
	if *d != Postgres && *d != Memory {
		return configNotLoadedErr(`only "postgres" and "memory" storage drivers are allowed`)
	}
	return nil
}

type Config struct {
	App struct {
		Env Environment `yaml:"env" env:"ENV" env-required:""`
	} `yaml:"app" env-prefix:"APP_" env-required:""`

	Storage struct {
		Driver StorageDriver `yaml:"driver" env:"DRIVER" env-default:"memory"`
	} `yaml:"storage" env-prefix:"STORAGE_"`

	DB struct {
		DSN string `yaml:"dsn" env:"DSN"`
	} `yaml:"db" env-prefix:"DB_"`

	Demo struct {
		Since time.Time `yaml:"since" env:"SINCE" env-default:"2024-01-01" env-layout:"2006-01-02"`
		Skip  bool      `yaml:"skip" env:"SKIP" env-default:"false"`
	} `yaml:"demo" env-prefix:"DEMO_"`
}

func Load(filePath string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(filePath, cfg); err != nil {
		return nil, configNotLoadedErr("config not loaded: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(filePath string) *Config {
	cfg, err := Load(filePath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	// yaml values bypass the setters, so enums are checked again here.
	if err := c.App.Env.SetValue(string(c.App.Env)); err != nil {
		return err
	}
	if err := c.Storage.Driver.SetValue(string(c.Storage.Driver)); err != nil {
		return err
	}
	if c.Storage.Driver == Postgres && c.DB.DSN == "" {
		return configNotLoadedErr("db dsn is required for the postgres storage driver")
	}
	return nil
}

func configNotLoadedErr(format string, args ...any) error {
	return errors.Join(fmt.Errorf(format, args...), ErrConfigNotLoaded)
}
