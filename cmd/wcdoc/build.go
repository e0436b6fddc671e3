package main

import (
	"fmt"

	"github.com/fwojciec/wcdoc"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	result, err := deps.Builder.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wcdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d elements and %d objects in %s\n",
		result.Elements.Len(), result.Objects.Len(), c.Out)
	fmt.Fprintf(deps.Stdout, "Digest: %s\n", result.Digest)
	if result.Build != nil {
		fmt.Fprintf(deps.Stdout, "Build: %s\n", result.Build.ID)
	}

	return nil
}
