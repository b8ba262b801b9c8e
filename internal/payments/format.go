package payments

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts use Spanish separators: "." groups thousands and "," marks cents.
var arsTag = language.Spanish

// FormatARS renders an amount in Argentine pesos, for example
// "$ 12.345,50".
func FormatARS(amount float64) string {
	p := message.NewPrinter(arsTag)
	return p.Sprintf("$ %v", number.Decimal(amount, number.Scale(2)))
}
