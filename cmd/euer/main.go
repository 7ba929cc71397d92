// Command euer computes the Anlage EÜR from a bank export without the
// server or the terminal UI.
package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/config"
)

// runContext is handed to every command's Run method.
type runContext struct {
	charts *category.Registry
	out    io.Writer
}

type cli struct {
	Calc       calcCmd       `cmd:"" help:"Calculate the Anlage EÜR from a bank export."`
	Categories categoriesCmd `cmd:"" help:"List the categories of a chart of accounts."`
	Fields     fieldsCmd     `cmd:"" help:"List the lines of the Anlage EÜR."`
}

func newParser(c *cli, cfg *config.Config) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("euer"),
		kong.Description(cfg.App.Name+": Einnahmenüberschussrechnung from bank exports."),
		kong.UsageOnError(),
		kong.Vars{
			"variant":   string(cfg.DefaultVariant()),
			"flat_rate": strconv.FormatBool(cfg.EUER.FlatRate),
		},
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var c cli

	parser, err := newParser(&c, cfg)
	if err != nil {
		slog.Error("failed to build command line parser", "error", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&runContext{
		charts: cfg.Registry(),
		out:    os.Stdout,
	})
	ctx.FatalIfErrorf(err)
}
