package cli

import (
	"errors"
	"fmt"

	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/storage"
	"github.com/amslee/postcal/internal/validation"
)

type AddCmd struct {
	Date        string `arg:"" help:"Date (YYYY-MM-DD)."`
	Platform    string `short:"p" help:"Platform (facebook|instagram|twitter|linkedin|tiktok|threads)." default:"facebook"`
	Content     string `short:"c" help:"Post text."`
	Description string `short:"d" help:"Optional description."`
	Time        string `short:"t" help:"Time of day (HH:MM)."`
	Status      string `short:"s" help:"Approval status." default:"Draft"`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	post := models.ContentItem{
		Date:           c.Date,
		Platform:       models.Platform(c.Platform),
		Content:        c.Content,
		Description:    c.Description,
		PostTime:       c.Time,
		ApprovalStatus: models.ApprovalStatus(c.Status),
	}
	if err := validation.ValidatePost(post); err != nil {
		return err
	}

	created, err := ctx.Store.AddPost(post)
	if err != nil {
		return err
	}
	fmt.Printf("Added post on %s (ID: %s)\n", created.Date, created.ID)
	return nil
}

type EditCmd struct {
	ID          string `arg:"" help:"Post ID."`
	Date        string `short:"D" help:"Move to date (YYYY-MM-DD)."`
	Platform    string `short:"p" help:"Platform."`
	Content     string `short:"c" help:"Post text."`
	Description string `short:"d" help:"Description."`
	Time        string `short:"t" help:"Time of day (HH:MM)."`
	Status      string `short:"s" help:"Approval status."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	existing, err := ctx.Store.GetPost(c.ID)
	if errors.Is(err, storage.ErrPostNotFound) {
		return fmt.Errorf("post not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	// Flags left unset keep the stored value.
	if c.Date != "" {
		existing.Date = c.Date
	}
	if c.Platform != "" {
		existing.Platform = models.Platform(c.Platform)
	}
	if c.Content != "" {
		existing.Content = c.Content
	}
	if c.Description != "" {
		existing.Description = c.Description
	}
	if c.Time != "" {
		existing.PostTime = c.Time
	}
	if c.Status != "" {
		existing.ApprovalStatus = models.ApprovalStatus(c.Status)
	}
	if err := validation.ValidatePost(existing); err != nil {
		return err
	}

	if _, err := ctx.Store.UpdatePost(c.ID, existing); err != nil {
		return err
	}
	fmt.Printf("Updated post %s\n", c.ID)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Post ID."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	removed, err := ctx.Store.DeletePost(c.ID)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("No post with ID %s\n", c.ID)
		return nil
	}
	fmt.Printf("Deleted post %s\n", c.ID)
	return nil
}

type MoveCmd struct {
	ID   string `arg:"" help:"Post ID."`
	Date string `arg:"" help:"New date (YYYY-MM-DD)."`
}

func (c *MoveCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	if err := validation.ValidateDate(c.Date); err != nil {
		return err
	}

	moved, err := ctx.Store.MovePost(c.ID, c.Date)
	if errors.Is(err, storage.ErrPostNotFound) {
		return fmt.Errorf("post not found: %s", c.ID)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Moved post %s to %s\n", moved.ID, moved.Date)
	return nil
}

type ResetCmd struct {
	Force bool `short:"f" help:"Skip confirmation."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	if !c.Force {
		fmt.Print("This removes every scheduled post. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.ReplaceAll(nil); err != nil {
		return err
	}
	fmt.Println("Calendar cleared.")
	return nil
}
