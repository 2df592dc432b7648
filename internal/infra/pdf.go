package infra

// pdf.go — purchase-order PDF generation using go-pdf/fpdf.
// Produces an A4 document with supplier and buyer data, the order lines,
// and the totals block (subtotal, descuento, envío, IVA, total).
// The output file is saved to storagePath/orden_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"listacomparativa/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarOrdenPDF writes the PDF for a purchase order and returns its path.
// storagePath is created if it does not exist.
func GenerarOrdenPDF(orden *model.OrdenCompra, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_%d.pdf", orden.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Orden de Compra", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("N° %d", orden.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, orden.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Supplier block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Proveedor", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if orden.Proveedor != nil {
		pdf.CellFormat(contentW, 5, orden.Proveedor.RazonSocial, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "NIT: "+orden.Proveedor.NIT, "", 1, "L", false, 0, "")
		if orden.Proveedor.Direccion != nil {
			pdf.CellFormat(contentW, 5, *orden.Proveedor.Direccion, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(2)

	// ── Buyer block ──────────────────────────────────────────────────────────
	if orden.Usuario != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Solicitante", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, orden.Usuario.Nombre+" — "+orden.Usuario.Empresa, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, orden.Usuario.Email, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // product
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.16 // unit price
	col4 := contentW * 0.12 // discount
	col5 := contentW * 0.16 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Desc", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range orden.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if len(nombre) > 40 {
			nombre = nombre[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, item.DescuentoPct.StringFixed(1)+"%", "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3 + col4
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 5, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 5, "$"+orden.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !orden.DescuentoTotal.IsZero() {
		pdf.CellFormat(labelW, 5, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, "-$"+orden.DescuentoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(labelW, 5, "Envio:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 5, "$"+orden.Envio.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 5, "IVA (19%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 5, "$"+orden.Impuestos.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "$"+orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Documento generado automaticamente por el sistema de compras.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
