package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wcdoc"
	"github.com/fwojciec/wcdoc/build"
	"github.com/fwojciec/wcdoc/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Builds  wcdoc.BuildService
	Builder *build.Builder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" env:"WCDOC_CONFIG" type:"path" help:"TOML config file"`
	Verbose bool   `short:"v" help:"Log every stage to stderr"`

	Build   BuildCmd   `cmd:"" help:"Build the element and object indices"`
	List    ListCmd    `cmd:"" help:"List entities without rendering or writing"`
	History HistoryCmd `cmd:"" help:"Show recent builds"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Records     string `arg:"" optional:"" type:"path" help:"Records JSON file"`
	Out         string `arg:"" optional:"" type:"path" help:"Output directory"`
	Concurrency int    `short:"j" help:"Concurrent document writes (default from config)"`
}

// applyConfig fills values not given on the command line.
func (c *BuildCmd) applyConfig(cfg *toml.Config) {
	if c.Records == "" {
		c.Records = cfg.Records
	}
	if c.Out == "" {
		c.Out = cfg.Out
	}
	if c.Concurrency <= 0 {
		c.Concurrency = cfg.Concurrency
	}
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Records string `arg:"" optional:"" type:"path" help:"Records JSON file"`
	Kind    string `short:"k" help:"Only list entities of this kind (element or object)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int    `short:"n" default:"10" help:"Number of builds to show"`
	Out   string `type:"path" help:"Only show builds written to this directory"`
}
