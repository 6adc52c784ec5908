package cli

import (
	"fmt"

	"github.com/amslee/postcal/internal/config"
	"github.com/amslee/postcal/internal/feeds"
	"github.com/amslee/postcal/internal/selection"
	"github.com/amslee/postcal/internal/storage"
)

// Context carries the shared collaborators into every command's Run.
type Context struct {
	Store  storage.Provider
	Config *config.Config

	feedSet *feeds.Set
	sel     *selection.State
}

// Feeds loads the three CSV feeds once per process and derives the
// all-selected category state. Feed failures have already degraded to
// empty slices inside the loader, so the calendar always renders.
func (ctx *Context) Feeds() (*feeds.Set, *selection.State) {
	if ctx.feedSet == nil {
		ctx.feedSet = feeds.Load(ctx.Config.EventsCSV, ctx.Config.HolidaysCSV, ctx.Config.ObservancesCSV)
		ctx.sel = feeds.NewSelection(ctx.feedSet)
	}
	return ctx.feedSet, ctx.sel
}

func (ctx *Context) loadStore() error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}
