package cli

import (
	"fmt"
	"net/http"

	"github.com/amslee/postcal/internal/logger"
	"github.com/amslee/postcal/internal/server"
)

type ServeCmd struct {
	Port int `short:"p" help:"Port to listen on (overrides PORT env)."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	set, sel := ctx.Feeds()
	policy, err := ctx.Config.Platform()
	if err != nil {
		return err
	}

	port := ctx.Config.Port
	if c.Port != 0 {
		port = c.Port
	}

	srv := server.New(ctx.Store, set, sel, policy)
	addr := fmt.Sprintf(":%d", port)
	logger.Info("listening", "addr", addr)
	fmt.Printf("Serving calendar API on %s\n", addr)
	return http.ListenAndServe(addr, srv.Router())
}
