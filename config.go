package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KimGeorgy/bird-migration/comps"
	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/parser"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// Parses a yaml config, missing keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Data.Cells == "" {
		return Config{}, errors.New("config: data.cells is required")
	}
	if config.Data.Routes.Path == "" {
		return Config{}, errors.New("config: data.routes.path is required")
	}
	return config, nil
}

type Config struct {
	Data struct {
		Cells    string        `yaml:"cells"`
		Routes   RouteOptions  `yaml:"routes"`
		Barriers BarrierConfig `yaml:"barriers"`
	} `yaml:"data"`
	Roles  comps.RoleOptions `yaml:"roles"`
	Server struct {
		Address  string `yaml:"address"`
		ShowGrid bool   `yaml:"show-grid"`
	} `yaml:"server"`
	Logging struct {
		Level LogLevel `yaml:"level"`
	} `yaml:"logging"`
}

type RouteOptions struct {
	Type  RouteSourceType `yaml:"type"`
	Path  string          `yaml:"path"`
	Table string          `yaml:"table"`
}

type BarrierConfig struct {
	OSM    string              `yaml:"osm"`
	Inline []parser.BarrierDef `yaml:"inline"`
}

func DefaultConfig() Config {
	config := Config{}
	config.Data.Routes = RouteOptions{Type: SQLITE, Table: parser.DEFAULT_ROUTE_TABLE}
	config.Data.Barriers.Inline = DefaultBarriers()
	config.Roles = comps.DefaultRoleOptions()
	config.Server.Address = ":5002"
	config.Server.ShowGrid = true
	config.Logging.Level = LogLevel(slog.LevelInfo)
	return config
}

// the two barriers shipped with the amewoo dataset, (lat, lon)
func DefaultBarriers() []parser.BarrierDef {
	return []parser.BarrierDef{
		{
			Name: "barrier-1",
			Ring: []geo.LatLon{{40, -81}, {43, -85}, {40, -80}, {39, -80}, {39, -90}, {40, -90}},
		},
		{
			Name: "barrier-2",
			Ring: []geo.LatLon{{41, -87}, {43, -89}, {43, -90}},
		},
	}
}

//**********************************************************
// enums
//**********************************************************

type RouteSourceType byte

const (
	SQLITE RouteSourceType = 0
	JSON   RouteSourceType = 1
)

func (self RouteSourceType) String() string {
	switch self {
	case SQLITE:
		return "sqlite"
	case JSON:
		return "json"
	default:
		panic("unknown route source type")
	}
}
func (self RouteSourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self RouteSourceType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *RouteSourceType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := RouteSourceTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func RouteSourceTypeFromString(s string) (RouteSourceType, error) {
	switch s {
	case "sqlite":
		return SQLITE, nil
	case "json":
		return JSON, nil
	default:
		return SQLITE, errors.New("unknown route source type")
	}
}

type LogLevel slog.Level

func (self LogLevel) Level() slog.Level {
	return slog.Level(self)
}
func (self LogLevel) MarshalYAML() (any, error) {
	return strings.ToLower(slog.Level(self).String()), nil
}
func (self *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value.Value)); err != nil {
		return err
	}
	*self = LogLevel(level)
	return nil
}
