package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/elster"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func render(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.String())
}

type categoriesCmd struct {
	Variant string `arg:"" optional:"" default:"${variant}" help:"Chart of accounts (skr03, skr04, skr49)."`
	Type    string `short:"t" help:"Only categories of this type (income, expense, private)."`
}

func (c *categoriesCmd) Run(rc *runContext) error {
	tbl, err := rc.charts.Table(context.Background(), category.NormalizeVariant(c.Variant))
	if err != nil {
		return err
	}

	infos := tbl.All()

	switch typ := category.Type(strings.ToLower(c.Type)); typ {
	case "":
	case category.TypeIncome, category.TypeExpense, category.TypePrivate:
		infos = tbl.OfType(typ)
	default:
		return fmt.Errorf("unknown category type %q", c.Type)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Key,
			info.Name,
			string(info.Type),
			info.Code,
			strconv.FormatFloat(info.VATRate, 'f', -1, 64) + " %",
		})
	}

	fmt.Fprintf(rc.out, "%s (%s)\n", tbl.Name, tbl.Variant)
	render(rc.out, []string{"Key", "Name", "Type", "Code", "VAT"}, rows)

	return nil
}

type fieldsCmd struct {
	Definitions string `short:"d" type:"existingfile" help:"Field definition document to use instead of the built-in one."`
	Group       string `short:"g" help:"Only lines of this group."`
}

func (c *fieldsCmd) Run(rc *runContext) error {
	defs, err := c.load()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, d := range defs {
		if c.Group != "" && !strings.EqualFold(d.Group, c.Group) {
			continue
		}

		auto := ""
		if d.AutoCalculated {
			auto = "auto"
		}

		rows = append(rows, []string{
			d.Number,
			d.Label,
			d.Group,
			string(d.Type),
			auto,
			strings.Join(elster.CategoriesFor(d.Number), ", "),
		})
	}

	render(rc.out, []string{"Line", "Label", "Group", "Type", "", "Categories"}, rows)

	return nil
}

func (c *fieldsCmd) load() ([]elster.Definition, error) {
	if c.Definitions == "" {
		return elster.LoadDefinitions()
	}

	f, err := os.Open(c.Definitions)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := elster.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("read definitions %s: %w", c.Definitions, err)
	}

	return elster.Normalize(doc)
}

func printBreakdown(w io.Writer, bd *elster.Breakdown) {
	fmt.Fprintf(w, "\nZeile %s: %s = %.2f\n", bd.Number, bd.Label, bd.Value)

	subtotals := make([][]string, 0, len(bd.Subtotals))
	for _, s := range bd.Subtotals {
		subtotals = append(subtotals, []string{s.Category, s.Name, fmt.Sprintf("%.2f", s.Amount)})
	}

	render(w, []string{"Category", "Name", "Amount"}, subtotals)

	rows := make([][]string, 0, len(bd.Contributions))
	for _, c := range bd.Contributions {
		rows = append(rows, []string{
			strconv.Itoa(c.TransactionID),
			c.Date.Format("02.01.2006"),
			c.Counterparty,
			c.Category,
			fmt.Sprintf("%.2f", c.Gross),
			fmt.Sprintf("%.2f", c.Amount),
		})
	}

	render(w, []string{"ID", "Date", "Counterparty", "Category", "Gross", "Amount"}, rows)
}
