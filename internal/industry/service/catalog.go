package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/myinvois/internal/config"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const overridesKey = "industries"

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle `optional:"true"`
	Log       *zap.Logger
	Cfg       config.Config
	Repo      industrydomain.Repository `optional:"true"`
}

// Catalog serves the current industry table. Every reload builds a fresh immutable table
// and swaps it in atomically, so readers never observe a partial update.
//
// Layers, lowest precedence first: shipped dataset, database rows, overrides file.
type Catalog struct {
	log           *zap.Logger
	repo          industrydomain.Repository
	overridesFile string

	mu       sync.Mutex
	v        *viper.Viper
	current  atomic.Pointer[industrydomain.Table]
	loadedAt atomic.Int64
}

func NewCatalog(p Params) (*Catalog, error) {
	c, err := New(p.Log, p.Repo, p.Cfg.IndustryOverridesFile)
	if err != nil {
		return nil, err
	}

	if p.Lifecycle != nil && p.Cfg.IndustryHotReload {
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				c.Watch()
				return nil
			},
		})
	}
	return c, nil
}

// New loads the catalog once. repo and overridesFile are optional.
func New(log *zap.Logger, repo industrydomain.Repository, overridesFile string) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{
		log:           log.Named("industry.catalog"),
		repo:          repo,
		overridesFile: strings.TrimSpace(overridesFile),
	}
	if c.overridesFile != "" {
		c.v = viper.New()
		c.v.SetConfigFile(c.overridesFile)
	}

	if err := c.Reload(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// Current returns the active table. The result is immutable and safe to keep.
func (c *Catalog) Current() *industrydomain.Table {
	return c.current.Load()
}

func (c *Catalog) LoadedAt() time.Time {
	return time.Unix(0, c.loadedAt.Load()).UTC()
}

// Reload rebuilds the table from every layer. On failure the previous table stays active.
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stored []industrydomain.IndustryCode
	if c.repo != nil {
		items, err := c.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list industry codes: %w", err)
		}
		stored = items
	}

	overrides, err := c.readOverrides()
	if err != nil {
		return err
	}

	table, err := industrydomain.NewTable(industrydomain.Merge(industrydomain.BuiltinCodes(), stored, overrides))
	if err != nil {
		return err
	}

	c.current.Store(table)
	c.loadedAt.Store(time.Now().UnixNano())
	c.log.Info("industry catalog loaded",
		zap.Int("entries", table.Len()),
		zap.Int("stored", len(stored)),
		zap.Int("overrides", len(overrides)),
	)
	return nil
}

// Watch reloads the catalog whenever the overrides file changes.
func (c *Catalog) Watch() {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if err := c.Reload(context.Background()); err != nil {
			c.log.Warn("industry overrides ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		c.log.Info("industry overrides reloaded", zap.String("file", e.Name))
	})
	c.v.WatchConfig()
}

func (c *Catalog) readOverrides() ([]industrydomain.IndustryCode, error) {
	if c.v == nil {
		return nil, nil
	}
	if err := c.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("industry overrides file not found", zap.String("file", c.overridesFile))
			return nil, nil
		}
		return nil, fmt.Errorf("read industry overrides: %w", err)
	}

	var overrides []industrydomain.IndustryCode
	if err := c.v.UnmarshalKey(overridesKey, &overrides); err != nil {
		return nil, fmt.Errorf("decode industry overrides: %w", err)
	}
	return overrides, nil
}
