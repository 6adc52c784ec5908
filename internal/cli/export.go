package cli

import (
	"fmt"
	"os"

	"github.com/amslee/postcal/internal/exporter"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output file, defaults to stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	posts, err := ctx.Store.AllPosts()
	if err != nil {
		return err
	}

	w := os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := exporter.WriteICS(w, "Content Calendar", posts); err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Printf("Exported %d posts to %s\n", len(posts), c.Out)
	}
	return nil
}
