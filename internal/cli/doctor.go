package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/amslee/postcal/internal/feeds"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: feeds reachable/parsable
	for name, src := range map[string]string{
		"events":      ctx.Config.EventsCSV,
		"holidays":    ctx.Config.HolidaysCSV,
		"observances": ctx.Config.ObservancesCSV,
	} {
		if src == "" {
			fmt.Printf("⊘ Feed %s: SKIPPED (not configured)\n", name)
			continue
		}
		items, err := feeds.LoadFeed(src)
		if err != nil {
			fmt.Printf("⚠ Feed %s: WARNING\n", name)
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Feed %s: OK (%d records)\n", name, len(items))
		}
	}

	// Check 3: another postcal process sharing the store
	if err := checkConcurrentProcess(); err != nil {
		fmt.Printf("⚠ Concurrent process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent process: OK\n")
	}

	// Check 4: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

// checkConcurrentProcess warns when another postcal process is
// running. The store persists whole snapshots, so two writers can
// silently clobber each other.
func checkConcurrentProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "postcal") {
			return fmt.Errorf("another postcal process is running (pid %d); concurrent writers may lose data", p.Pid())
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears wrong: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset out of range")
	}
	return nil
}
