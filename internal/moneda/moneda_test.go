package moneda

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatear_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "$ 2.580.000", Formatear(decimal.NewFromInt(2_580_000)))
	assert.Equal(t, "$ 50.000", Formatear(decimal.NewFromInt(50_000)))
	assert.Equal(t, "$ 0", Formatear(decimal.Zero))
}

func TestFormatear_RedondeaAPesosEnteros(t *testing.T) {
	assert.Equal(t, "$ 1.234.568", Formatear(decimal.NewFromFloat(1_234_567.89)))
	assert.Equal(t, "$ 100", Formatear(decimal.NewFromFloat(99.50)))
	assert.Equal(t, "$ 99", Formatear(decimal.NewFromFloat(99.49)))
}

func TestRedondear(t *testing.T) {
	assert.Equal(t, "1218660", Redondear(decimal.NewFromFloat(1_218_660.4)).String())
	assert.Equal(t, "1218661", Redondear(decimal.NewFromFloat(1_218_660.5)).String())
}
