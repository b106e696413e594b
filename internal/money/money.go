package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency every amount in the catalog is expressed in.
var Currency = currency.MustParseISO("LKR")

var printer = message.NewPrinter(language.English)

// Format renders an integer amount as "LKR 1,500,000". Display only.
func Format(amount int64) string {
	return fmt.Sprintf("%s %s", Currency, printer.Sprintf("%d", amount))
}
