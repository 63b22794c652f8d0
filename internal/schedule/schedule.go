// Package schedule runs a job on a cron schedule until its context ends.
package schedule

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard 5-field expressions (minute, hour, dom, month, dow)
// and descriptors such as "@hourly" or "@every 30m".
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Parse checks expr and returns its schedule.
func Parse(expr string) (cron.Schedule, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse %q: %w", expr, err)
	}
	return sched, nil
}

// Until returns the duration from now until the next fire time of expr.
func Until(expr string, now time.Time) (time.Duration, error) {
	sched, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	d := sched.Next(now).Sub(now)
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

// Run calls job at every fire time of expr until ctx is cancelled. A failed
// job is logged and the schedule continues. Runs never overlap.
func Run(ctx context.Context, expr string, job func(context.Context) error) error {
	sched, err := Parse(expr)
	if err != nil {
		return err
	}

	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(sched, cron.FuncJob(func() {
		if err := job(ctx); err != nil {
			log.Printf("schedule: %s: job failed: %v", expr, err)
		}
	}))
	c.Start()

	<-ctx.Done()
	// wait for a running job to finish
	<-c.Stop().Done()
	return nil
}
