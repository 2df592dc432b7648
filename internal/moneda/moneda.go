// Package moneda renders decimal amounts as Colombian peso text.
// Amounts are always rounded to whole pesos — the UI never shows centavos.
package moneda

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var esCO = message.NewPrinter(language.MustParse("es-CO"))

// Formatear returns "$ 2.580.000"-style currency text for an amount.
// Rounding is half-up to whole pesos.
func Formatear(monto decimal.Decimal) string {
	entero := monto.Round(0).IntPart()
	return esCO.Sprintf("$ %d", entero)
}

// Redondear normalizes an amount to whole pesos (half-up). Aggregation
// results pass through here before being formatted or compared in responses.
func Redondear(monto decimal.Decimal) decimal.Decimal {
	return monto.Round(0)
}
