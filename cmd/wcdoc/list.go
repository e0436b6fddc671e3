package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wcdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	indexers, err := listIndexers(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wcdoc.ErrorMessage(err))
		return err
	}

	fi, err := deps.Builder.Index(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wcdoc.ErrorMessage(err))
		return err
	}

	n := 0
	for _, ix := range indexers {
		for _, b := range ix.Bundles(fi) {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s", b.Kind, b.Name, b.Main.SourcePath)
			if len(b.Extras) > 0 {
				fmt.Fprintf(deps.Stdout, "  +%s", extraFamilies(b.Extras))
			}
			fmt.Fprintln(deps.Stdout)
			n++
		}
	}

	if n == 0 {
		fmt.Fprintln(deps.Stdout, "No entities found.")
	}

	return nil
}

func listIndexers(kind string) ([]wcdoc.EntityIndexer, error) {
	switch wcdoc.Kind(kind) {
	case "":
		return []wcdoc.EntityIndexer{wcdoc.ElementIndexer, wcdoc.ObjectIndexer}, nil
	case wcdoc.KindElement:
		return []wcdoc.EntityIndexer{wcdoc.ElementIndexer}, nil
	case wcdoc.KindObject:
		return []wcdoc.EntityIndexer{wcdoc.ObjectIndexer}, nil
	default:
		return nil, wcdoc.Errorf(wcdoc.EINVALID, "unknown kind %q: use element or object", kind)
	}
}

// extraFamilies lists the families of extra declarations; "-" marks an
// extra that belongs to no family.
func extraFamilies(extras []wcdoc.Record) string {
	families := make([]string, 0, len(extras))
	for _, r := range extras {
		if r.ExtensionFamily == "" {
			families = append(families, "-")
			continue
		}
		families = append(families, r.ExtensionFamily)
	}
	return strings.Join(families, ",")
}
