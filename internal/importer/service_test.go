package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/importer"
	"github.com/MrJamesThe3rd/euer/internal/importer/bankcsv"
)

const kontistCSV = `Buchungsdatum;Empfänger/Auftraggeber;Verwendungszweck;Betrag (EUR)
15.01.2025;ACME GmbH;RE-2025-001;1.190,00
16.01.2025;JetBrains s.r.o.;IntelliJ IDEA;-59,50
`

const n26CSV = `"Date","Payee","Account number","Transaction type","Payment reference","Amount (EUR)"
"2025-01-15","ACME GmbH","DE00","Income","RE-2025-001","1190.00"
`

func TestService_Import(t *testing.T) {
	type testCase struct {
		name     string
		bank     importer.Bank
		csv      string
		wantBank string
		wantLen  int
		wantErr  error
	}

	tests := []testCase{
		{name: "AutoKontist", bank: importer.BankAuto, csv: kontistCSV, wantBank: "kontist", wantLen: 2},
		{name: "AutoN26", bank: importer.BankAuto, csv: n26CSV, wantBank: "n26", wantLen: 1},
		{name: "ExplicitKontist", bank: importer.BankKontist, csv: kontistCSV, wantBank: "kontist", wantLen: 2},
		{name: "WrongBank", bank: importer.BankN26, csv: kontistCSV, wantErr: bankcsv.ErrNoProfile},
		{name: "UnknownBank", bank: "cgd", csv: kontistCSV, wantErr: importer.ErrUnknownBank},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Import(tt.bank, strings.NewReader(tt.csv))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBank, got.Bank)
			assert.Len(t, got.Transactions, tt.wantLen)
		})
	}
}

func TestBanks(t *testing.T) {
	assert.Equal(t, []importer.Bank{importer.BankKontist, importer.BankN26}, importer.Banks())
}
