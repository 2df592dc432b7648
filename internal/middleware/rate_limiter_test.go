package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVentanaCortaEnElLimite(t *testing.T) {
	v := &ventana{ips: make(map[string]*contadorIP), limite: 2, lapso: time.Minute}

	ok, _ := v.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = v.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = v.permitir("10.0.0.1")
	assert.False(t, ok)

	// Another IP keeps its own counter.
	ok, _ = v.permitir("10.0.0.2")
	assert.True(t, ok)
}

func TestVentanaReiniciaAlVencer(t *testing.T) {
	v := &ventana{ips: make(map[string]*contadorIP), limite: 1, lapso: 10 * time.Millisecond}

	ok, _ := v.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = v.permitir("10.0.0.1")
	assert.False(t, ok)

	time.Sleep(15 * time.Millisecond)
	ok, _ = v.permitir("10.0.0.1")
	assert.True(t, ok)
}
