package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/KimGeorgy/bird-migration/explorer"
	"github.com/KimGeorgy/bird-migration/parser"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//**********************************************************
// explorer manager
//**********************************************************

// ExplorerManager owns the explorer built from the configured input files.
//
// The explorer is rebuilt only when the content version of the inputs
// changes. Concurrent reloads of the same version share one build.
type ExplorerManager struct {
	config   Config
	metrics  *Metrics
	sessions *SessionStore

	mu       sync.RWMutex
	current  *explorer.Explorer
	version  uint64
	group    singleflight.Group
	loadFunc func(ctx context.Context, config Config) (*explorer.Explorer, error)
}

func NewExplorerManager(ctx context.Context, config Config, metrics *Metrics) (*ExplorerManager, error) {
	manager := &ExplorerManager{
		config:   config,
		metrics:  metrics,
		sessions: NewSessionStore(metrics),
		loadFunc: BuildExplorer,
	}
	if _, err := manager.Reload(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

func (self *ExplorerManager) Explorer() *explorer.Explorer {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return self.current
}

func (self *ExplorerManager) Version() uint64 {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return self.version
}

func (self *ExplorerManager) Sessions() *SessionStore {
	return self.sessions
}

func (self *ExplorerManager) Metrics() *Metrics {
	return self.metrics
}

func (self *ExplorerManager) Config() Config {
	return self.config
}

// Rebuilds the explorer if the input files changed.
//
// Returns whether a new explorer was installed. Open sessions keep the
// explorer they were created with.
func (self *ExplorerManager) Reload(ctx context.Context) (bool, error) {
	version, err := InputVersion(self.config)
	if err != nil {
		return false, fmt.Errorf("hash inputs: %w", err)
	}
	self.mu.RLock()
	unchanged := self.current != nil && self.version == version
	self.mu.RUnlock()
	if unchanged {
		slog.Info("inputs unchanged, keeping explorer", "version", version)
		return false, nil
	}

	key := strconv.FormatUint(version, 16)
	value, err, shared := self.group.Do(key, func() (any, error) {
		exp, err := self.loadFunc(ctx, self.config)
		if err != nil {
			return nil, err
		}
		self.mu.Lock()
		self.current = exp
		self.version = version
		self.mu.Unlock()
		self.metrics.ObserveBuild()
		return exp, nil
	})
	if err != nil {
		return false, err
	}
	if shared {
		slog.Debug("joined in-flight build", "version", key)
	}
	return value != nil, nil
}

// Content version over every input file named by the config.
func InputVersion(config Config) (uint64, error) {
	return HashFiles(config.Data.Cells, config.Data.Routes.Path, config.Data.Barriers.OSM)
}

// Loads the input tables concurrently and builds a new explorer.
func BuildExplorer(ctx context.Context, config Config) (*explorer.Explorer, error) {
	var cells []structs.Cell
	var routes []structs.RouteRecord
	var osm_barriers []structs.Barrier

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		cells, err = parser.LoadCells(config.Data.Cells)
		return err
	})
	group.Go(func() error {
		var err error
		routes, err = LoadRoutes(ctx, config.Data.Routes)
		return err
	})
	if config.Data.Barriers.OSM != "" {
		group.Go(func() error {
			var err error
			osm_barriers, err = parser.LoadBarriersOSM(ctx, config.Data.Barriers.OSM)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	barriers, err := parser.BuildBarriers(config.Data.Barriers.Inline)
	if err != nil {
		return nil, err
	}
	barriers = append(barriers, osm_barriers...)

	return explorer.New(cells, routes, barriers, explorer.Options{Roles: config.Roles})
}

func LoadRoutes(ctx context.Context, options RouteOptions) ([]structs.RouteRecord, error) {
	switch options.Type {
	case SQLITE:
		return parser.LoadRoutesSQLite(ctx, options.Path, options.Table)
	case JSON:
		return parser.LoadRoutesJSON(options.Path)
	default:
		return nil, fmt.Errorf("unknown route source type %v", options.Type)
	}
}
