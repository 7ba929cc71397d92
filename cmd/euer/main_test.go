package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/config"
)

const kontistCSV = `Buchungsdatum;Wertstellung;Empfänger/Auftraggeber;IBAN;Verwendungszweck;Betrag (EUR)
15.01.2025;15.01.2025;ACME GmbH;DE02120300000000202051;RE-2025-001 Webentwicklung;119,00
20.01.2025;20.01.2025;Adobe Systems;DE00;Creative Cloud Abo;-59,50
`

const profileYAML = `last_name: Mustermann
first_name: Erika
tax_number: 21/815/08150
profession: Beratung
fiscal_year_start: 2025-01-01T00:00:00Z
fiscal_year_end: 2025-12-31T00:00:00Z
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "euer"
	cfg.Chart.DefaultVariant = "skr03"

	var c cli

	parser, err := newParser(&c, cfg)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = ctx.Run(&runContext{
		charts: category.NewRegistry(category.NewEmbeddedSource(), category.SKR03),
		out:    &out,
	})

	return out.String(), err
}

func TestCalc(t *testing.T) {
	export := writeFile(t, "export.csv", kontistCSV)
	profile := writeFile(t, "profile.yaml", profileYAML)

	type testCase struct {
		name     string
		args     []string
		contains []string
		wantErr  string
	}

	tests := []testCase{
		{
			name:     "CSV with profile",
			args:     []string{"calc", export, "--bank", "kontist", "--profile", profile, "--format", "csv"},
			contains: []string{"Zeile;Bezeichnung;Wert;Quelle", "Mustermann"},
		},
		{
			name:     "JSON keeps the chart",
			args:     []string{"calc", export, "--profile", profile, "--format", "json", "--variant", "skr04"},
			contains: []string{`"variant": "skr04"`},
		},
		{
			name:    "Blocked without profile",
			args:    []string{"calc", export, "--bank", "kontist"},
			wantErr: "report incomplete",
		},
		{
			name:    "Unknown line to explain",
			args:    []string{"calc", export, "--profile", profile, "--explain", "999"},
			wantErr: "line 999",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestCalc_OutputFile(t *testing.T) {
	export := writeFile(t, "export.csv", kontistCSV)
	profile := writeFile(t, "profile.yaml", profileYAML)
	target := filepath.Join(t.TempDir(), "euer.xlsx")

	_, err := run(t, "calc", export, "--profile", profile, "--format", "xlsx", "-o", target)
	require.NoError(t, err)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	blocked := filepath.Join(t.TempDir(), "blocked.csv")

	_, err = run(t, "calc", export, "--format", "csv", "-o", blocked)
	require.Error(t, err)
	assert.NoFileExists(t, blocked)

	existing := writeFile(t, "earlier.csv", "earlier report")

	_, err = run(t, "calc", export, "--format", "csv", "-o", existing)
	require.Error(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "earlier report", string(data))
}

func TestCategories(t *testing.T) {
	out, err := run(t, "categories", "--type", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "software")
	assert.NotContains(t, out, "service_income")

	_, err = run(t, "categories", "--type", "asset")
	require.Error(t, err)
}

func TestFields(t *testing.T) {
	out, err := run(t, "fields", "--group", "Betriebseinnahmen")
	require.NoError(t, err)
	assert.Contains(t, out, "112")
	assert.NotContains(t, out, "Betriebsausgaben")
}
