package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wcdoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := wcdoc.BuildFilter{Limit: c.Limit}
	if c.Out != "" {
		filter.OutputDir = &c.Out
	}

	builds, err := deps.Builds.FindBuilds(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wcdoc.ErrorMessage(err))
		return err
	}

	if len(builds) == 0 {
		fmt.Fprintln(deps.Stdout, "No builds found. Use 'wcdoc build' to create one.")
		return nil
	}

	for _, b := range builds {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d elements  %d objects  %s  %s\n",
			b.ID, b.CreatedAt.Local().Format(time.DateTime), b.Elements, b.Objects, b.Digest, b.OutputDir)
	}

	return nil
}
