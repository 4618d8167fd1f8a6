package i18n

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter rounds to a whole currency unit and groups thousands per
// locale: 29000 in "vi" becomes "29.000₫".
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
}

func NewMoneyFormatter(tag language.Tag, symbol string) *MoneyFormatter {
	return &MoneyFormatter{printer: message.NewPrinter(tag), symbol: symbol}
}

func (f *MoneyFormatter) Format(v float64) string {
	return f.printer.Sprintf("%d", int64(math.Round(v))) + f.symbol
}
