package view

import (
	"context"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const serviceTimeout = 5 * time.Second

var printer = message.NewPrinter(language.German)

// FormatAmount formats euros with German separators.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatDate formats a time.Time into DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// ServiceCtx returns a context with a standard timeout for service calls.
func ServiceCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), serviceTimeout)
}
