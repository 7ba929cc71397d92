package importer

import (
	"errors"
	"io"
	"slices"

	"github.com/MrJamesThe3rd/euer/internal/importer/bankcsv"
)

var ErrUnknownBank = errors.New("unknown bank")

type Bank string

const (
	BankAuto    Bank = ""
	BankKontist Bank = "kontist"
	BankN26     Bank = "n26"
)

// Banks lists the banks whose exports can be read.
func Banks() []Bank {
	var out []Bank
	for _, b := range bankcsv.Banks() {
		out = append(out, Bank(b))
	}

	return out
}

func (b Bank) known() bool {
	return b == BankAuto || slices.Contains(Banks(), b)
}

type Importer interface {
	Parse(r io.Reader) (*bankcsv.Result, error)
}
