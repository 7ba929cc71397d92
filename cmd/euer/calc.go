package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/classify"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/export"
	"github.com/MrJamesThe3rd/euer/internal/filing"
	"github.com/MrJamesThe3rd/euer/internal/importer"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
	txStore "github.com/MrJamesThe3rd/euer/internal/transaction/store"
)

type calcCmd struct {
	File     string   `arg:"" type:"existingfile" help:"Bank export (CSV)."`
	Bank     string   `help:"Bank of the export: kontist or n26. Detected when empty."`
	Variant  string   `short:"c" default:"${variant}" help:"Chart of accounts (skr03, skr04, skr49)."`
	FlatRate bool     `name:"flat-rate" negatable:"" default:"${flat_rate}" help:"Small business without VAT (§ 19 UStG)."`
	Profile  string   `short:"p" type:"existingfile" help:"YAML file with the personal data of the form."`
	Format   string   `short:"f" enum:"csv,json,text,xlsx" default:"text" help:"Output format (${enum})."`
	Output   string   `short:"o" type:"path" help:"Write to this file instead of stdout."`
	Explain  []string `short:"e" help:"Form lines to break down into categories and transactions."`
}

func (c *calcCmd) Run(rc *runContext) error {
	ctx := context.Background()

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := importer.NewService().Import(importer.Bank(strings.ToLower(c.Bank)), f)
	if err != nil {
		return err
	}

	var p *profile.Profile
	if c.Profile != "" {
		if p, err = readProfile(c.Profile); err != nil {
			return err
		}
	}

	txSvc := transaction.NewService(txStore.New(), classify.New(), rc.charts, nil)

	b, err := txSvc.Import(ctx, transaction.ImportParams{
		Bank:         res.Bank,
		Variant:      category.NormalizeVariant(c.Variant),
		FlatRate:     c.FlatRate,
		Profile:      p,
		Transactions: res.Transactions,
	})
	if err != nil {
		return err
	}

	defs, err := elster.LoadDefinitions()
	if err != nil {
		return err
	}

	reports := filing.NewService(txSvc, rc.charts, defs)

	report, err := reports.Build(ctx, b.ID)
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		slog.Warn(w)
	}

	if err := c.write(rc, report); err != nil {
		return err
	}

	for _, number := range c.Explain {
		bd, err := reports.Breakdown(ctx, b.ID, number)
		if err != nil {
			return fmt.Errorf("line %s: %w", number, err)
		}

		printBreakdown(rc.out, bd)
	}

	return nil
}

func (c *calcCmd) write(rc *runContext, report *filing.Report) error {
	format := export.Format(c.Format)

	data, err := export.Render(format, report)
	if err != nil {
		return gate(err)
	}

	if c.Output == "" {
		_, err := rc.out.Write(data)
		return err
	}

	if err := export.WriteFile(c.Output, data); err != nil {
		return err
	}

	slog.Info("wrote report", "path", c.Output, "format", format)

	return nil
}

// gate turns a blocked export into a message that names what to add to
// the profile file.
func gate(err error) error {
	var incomplete *export.IncompleteError
	if errors.As(err, &incomplete) {
		return fmt.Errorf("report incomplete, add to the profile (--profile): %s", strings.Join(incomplete.Missing, ", "))
	}

	return err
}

func readProfile(path string) (*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := profile.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	return p, nil
}
