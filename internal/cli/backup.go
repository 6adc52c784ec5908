package cli

import (
	"fmt"
	"path/filepath"

	"github.com/amslee/postcal/internal/backup"
)

type BackupCmd struct {
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Create  BackupCreateCmd  `cmd:"" default:"1" help:"Snapshot the store."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup filename to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.GetConfigPath())
	if err := m.Restore(filepath.Join(m.BackupDir(), c.Name)); err != nil {
		return err
	}
	fmt.Printf("Restored store from %s\n", c.Name)
	return nil
}
