package cli

import (
	"fmt"

	"github.com/amslee/postcal/internal/planner"
)

type AutoPopulateCmd struct {
	Month         string `arg:"" optional:"" help:"Month (YYYY-MM), defaults to the current month."`
	Total         int    `short:"n" help:"Total posts to schedule." required:""`
	PerWeek       int    `short:"w" help:"Intended posts per week (informational)." default:"3"`
	AllowWeekends bool   `help:"Schedule on Saturdays and Sundays too."`
	Distribution  string `short:"d" help:"Distribution (even|front-loaded|back-loaded)." default:"even"`
}

func (c *AutoPopulateCmd) Validate() error {
	switch planner.Distribution(c.Distribution) {
	case planner.DistributionEven, planner.DistributionFrontLoaded, planner.DistributionBackLoaded:
		return nil
	default:
		return fmt.Errorf("invalid distribution: %s", c.Distribution)
	}
}

func (c *AutoPopulateCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	year, month, err := parseMonthArg(c.Month)
	if err != nil {
		return err
	}
	policy, err := ctx.Config.Platform()
	if err != nil {
		return err
	}

	posts, err := planner.Apply(ctx.Store, planner.Options{
		Year:          year,
		Month:         month,
		PostsPerWeek:  c.PerWeek,
		TotalPosts:    c.Total,
		AllowWeekends: c.AllowWeekends,
		Distribution:  planner.Distribution(c.Distribution),
		Platform:      policy,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Replaced %s %d with %d auto-generated posts:\n", month, year, len(posts))
	for _, p := range posts {
		fmt.Printf("  %s [%s]\n", p.Date, p.Platform)
	}
	return nil
}
