package worker

// orden_worker.go
// Processes purchase-order dispatch jobs from QueueOrdenes:
// generates the order PDF and enqueues the supplier notification email.
// SMTP delivery failures leave the order pendiente for the retry cron.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listacomparativa/internal/infra"
	"listacomparativa/internal/model"
	"listacomparativa/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxOrdenRetries caps the retry cron attempts before an order goes to the DLQ.
const MaxOrdenRetries = 3

// OrdenJobPayload is the job envelope sent to QueueOrdenes.
type OrdenJobPayload struct {
	OrdenID string `json:"orden_id"`
}

// OrdenWorker turns a confirmed purchase order into its outgoing artifacts:
// the PDF document and the email job carrying it to the supplier.
type OrdenWorker struct {
	ordenRepo      repository.OrdenRepository
	dispatcher     *Dispatcher
	cb             *infra.CircuitBreaker
	pdfStoragePath string
}

func NewOrdenWorker(
	ordenRepo repository.OrdenRepository,
	dispatcher *Dispatcher,
	cb *infra.CircuitBreaker,
	pdfStoragePath string,
) *OrdenWorker {
	return &OrdenWorker{
		ordenRepo:      ordenRepo,
		dispatcher:     dispatcher,
		cb:             cb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single orden job:
//  1. Parse OrdenJobPayload from the job envelope
//  2. Fetch the orden (with items+proveedor) from DB
//  3. Generate the PDF (idempotent — same path per numero)
//  4. Enqueue the email job for the supplier contact
//  5. Mark the orden enviada, or schedule a retry on failure
func (w *OrdenWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload OrdenJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("orden_worker: invalid payload")
		return
	}
	ordenID, err := uuid.Parse(payload.OrdenID)
	if err != nil {
		log.Error().Str("orden_id", payload.OrdenID).Msg("orden_worker: invalid orden_id")
		return
	}

	orden, err := w.ordenRepo.FindByID(ctx, ordenID)
	if err != nil {
		log.Error().Err(err).Str("orden_id", payload.OrdenID).Msg("orden_worker: orden not found")
		return
	}
	if orden.Estado == model.EstadoOrdenEnviada {
		log.Info().Str("orden_id", payload.OrdenID).Msg("orden_worker: orden already sent, skipping")
		return
	}

	pdfPath, err := infra.GenerarOrdenPDF(orden, w.pdfStoragePath)
	if err != nil {
		w.scheduleRetry(ctx, orden, fmt.Errorf("pdf: %w", err))
		return
	}
	orden.PDFPath = &pdfPath

	destinatario := proveedorEmail(orden)
	if destinatario == "" {
		// No deliverable address: the PDF still exists for manual download.
		orden.Estado = model.EstadoOrdenEnviada
		orden.NextRetryAt = nil
		orden.LastError = nil
		_ = w.ordenRepo.Update(ctx, orden)
		log.Warn().
			Str("orden_id", orden.ID.String()).
			Msg("orden_worker: supplier has no email, PDF generated only")
		return
	}

	emailErr := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: destinatario,
		Subject: fmt.Sprintf("Orden de compra N° %d", orden.Numero),
		Body: fmt.Sprintf(
			"Adjuntamos la orden de compra N° %d por un total de $%s.\n\nPor favor confirmar recepcion.",
			orden.Numero, orden.Total.StringFixed(2)),
		PDFPath: pdfPath,
	})
	if emailErr != nil {
		w.scheduleRetry(ctx, orden, fmt.Errorf("enqueue email: %w", emailErr))
		return
	}

	orden.Estado = model.EstadoOrdenEnviada
	orden.NextRetryAt = nil
	orden.LastError = nil
	if err := w.ordenRepo.Update(ctx, orden); err != nil {
		log.Error().Err(err).Str("orden_id", orden.ID.String()).Msg("orden_worker: failed to update orden")
		return
	}
	log.Info().
		Str("orden_id", orden.ID.String()).
		Int64("numero", orden.Numero).
		Msg("orden_worker: orden dispatched")
}

func (w *OrdenWorker) scheduleRetry(ctx context.Context, orden *model.OrdenCompra, cause error) {
	orden.RetryCount++
	msg := cause.Error()
	orden.LastError = &msg

	if orden.RetryCount >= MaxOrdenRetries {
		orden.Estado = model.EstadoOrdenError
		orden.NextRetryAt = nil
		_ = w.ordenRepo.Update(ctx, orden)

		payload, _ := json.Marshal(OrdenJobPayload{OrdenID: orden.ID.String()})
		SendToDLQ(ctx, w.dispatcher.rdb, QueueOrdenes, "orden", payload,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxOrdenRetries, msg),
			orden.RetryCount)
		return
	}

	next := time.Now().Add(computeRetryBackoff(orden.RetryCount))
	orden.NextRetryAt = &next
	_ = w.ordenRepo.Update(ctx, orden)
	log.Warn().
		Str("orden_id", orden.ID.String()).
		Int("retry_count", orden.RetryCount).
		Time("next_retry_at", next).
		Err(cause).
		Msg("orden_worker: dispatch failed, retry scheduled")
}

// computeRetryBackoff: 1m, 5m, 15m for attempts 1..3.
func computeRetryBackoff(attempt int) time.Duration {
	switch {
	case attempt <= 1:
		return 1 * time.Minute
	case attempt == 2:
		return 5 * time.Minute
	default:
		return 15 * time.Minute
	}
}

// proveedorEmail picks the delivery address: the supplier's own email first,
// else the first contact with one.
func proveedorEmail(orden *model.OrdenCompra) string {
	if orden.Proveedor == nil {
		return ""
	}
	if orden.Proveedor.Email != nil && *orden.Proveedor.Email != "" {
		return *orden.Proveedor.Email
	}
	for _, c := range orden.Proveedor.Contactos {
		if c.Email != nil && *c.Email != "" {
			return *c.Email
		}
	}
	return ""
}
