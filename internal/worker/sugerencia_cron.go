package worker

import (
	"context"
	"time"

	"listacomparativa/internal/dto"

	"github.com/rs/zerolog/log"
)

// Reorder suggestions are cheap to rebuild, so a coarse tick is enough;
// users can always force a rebuild from the API.
const sugerenciaTickInterval = 1 * time.Hour

// SugerenciaGenerator is the slice of the inventory service the cron needs.
type SugerenciaGenerator interface {
	GenerarSugerencias(ctx context.Context) ([]dto.SugerenciaCompraResponse, error)
}

// StartSugerenciaCron launches a background goroutine that periodically
// rebuilds the pending reorder suggestions from current stock and analysis
// data. It respects the context for graceful shutdown.
func StartSugerenciaCron(ctx context.Context, gen SugerenciaGenerator) {
	go func() {
		ticker := time.NewTicker(sugerenciaTickInterval)
		defer ticker.Stop()

		log.Info().Msg("sugerencia_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sugerencia_cron: shutting down")
				return
			case <-ticker.C:
				sugerencias, err := gen.GenerarSugerencias(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("sugerencia_cron: rebuild failed")
					continue
				}
				log.Info().Int("pendientes", len(sugerencias)).Msg("sugerencia_cron: suggestions rebuilt")
			}
		}
	}()
}
