package middleware

import (
	"net/http"
	"sync"
	"time"

	"listacomparativa/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is a per-IP sliding window counter. Both limiters (general API and
// login brute-force) share the implementation and differ only in limit,
// window and rejection message.
type ventana struct {
	mu     sync.Mutex
	ips    map[string]*contadorIP
	limite int
	lapso  time.Duration
}

type contadorIP struct {
	conteo int
	vence  time.Time
}

func newVentana(limite int, lapso time.Duration) *ventana {
	v := &ventana{ips: make(map[string]*contadorIP), limite: limite, lapso: lapso}
	go v.purgar()
	return v
}

// permitir counts a hit and reports whether the IP is still under the limit,
// returning when its current window closes.
func (v *ventana) permitir(ip string) (bool, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	e, ok := v.ips[ip]
	if !ok || now.After(e.vence) {
		e = &contadorIP{vence: now.Add(v.lapso)}
		v.ips[ip] = e
	}
	e.conteo++
	return e.conteo <= v.limite, e.vence
}

const purgeInterval = 5 * time.Minute

// purgar drops expired IPs so the map never grows with one-off clients.
func (v *ventana) purgar() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		v.mu.Lock()
		purgadas := 0
		for ip, e := range v.ips {
			if now.After(e.vence) {
				delete(v.ips, ip)
				purgadas++
			}
		}
		restantes := len(v.ips)
		v.mu.Unlock()

		if purgadas > 0 {
			log.Debug().
				Int("purged", purgadas).
				Int("remaining", restantes).
				Msg("rate limiter window purged")
		}
	}
}

// loginVentana is stricter than the API limiter: 20 attempts per minute per
// IP keeps credential stuffing slow without locking out a shared office NAT.
var loginVentana = newVentana(20, time.Minute)

// LoginRateLimiter guards POST /v1/auth/login.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginVentana.permitir(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter applies a per-IP limit to the whole API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	v := newVentana(limit, window)
	return func(c *gin.Context) {
		ok, vence := v.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", vence.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
