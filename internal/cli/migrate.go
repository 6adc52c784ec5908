package cli

import (
	"fmt"
	"strings"

	"github.com/amslee/postcal/internal/migration"
	"github.com/amslee/postcal/internal/storage"
)

type MigrateCmd struct {
	To string `arg:"" help:"Destination store path (.json or .db)." type:"path"`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	if c.To == ctx.Store.GetConfigPath() {
		return fmt.Errorf("destination matches the current store")
	}

	var dst storage.Provider
	if strings.HasSuffix(c.To, ".json") {
		dst = storage.NewJSONStore(c.To)
	} else {
		dst = storage.NewSQLiteStore(c.To)
	}
	defer dst.Close()

	n, err := migration.Migrate(ctx.Store, dst)
	if err != nil {
		return err
	}
	fmt.Printf("Migrated %d posts to %s\n", n, c.To)
	fmt.Printf("Point POSTCAL_STORE at the new path to use it.\n")
	return nil
}
