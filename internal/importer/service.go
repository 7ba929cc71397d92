package importer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/euer/internal/importer/bankcsv"
)

type Service struct {
	importers map[Bank]Importer
}

func NewService() *Service {
	s := &Service{importers: map[Bank]Importer{
		BankAuto: bankcsv.NewParser(bankcsv.Profiles("")),
	}}

	for _, b := range Banks() {
		s.importers[b] = bankcsv.NewParser(bankcsv.Profiles(string(b)))
	}

	return s
}

// Import parses a bank export. An empty bank auto-detects the format.
func (s *Service) Import(bank Bank, r io.Reader) (*bankcsv.Result, error) {
	if !bank.known() {
		return nil, fmt.Errorf("%q: %w", bank, ErrUnknownBank)
	}

	res, err := s.importers[bank].Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s export: %w", bankName(bank), err)
	}

	slog.Info("parsed bank export", "bank", res.Bank, "profile", res.Profile, "transactions", len(res.Transactions))

	return res, nil
}

func bankName(b Bank) string {
	if b == BankAuto {
		return "bank"
	}

	return string(b)
}
