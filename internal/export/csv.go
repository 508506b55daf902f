// Package export projects order records through a column mapping into flat
// tabular output for spreadsheet download.
package export

import (
	"encoding/csv"
	"io"

	"techos-service/internal/model"
	"techos-service/internal/order"
)

// Column maps one output column: a stable key, the header label and the
// projection from an order record to cell text.
type Column struct {
	Key   string
	Label string
	Value func(o *model.ServiceOrder) string
}

// Lookups resolve the order's weak references to display names. A missing id
// renders as the fallback label instead of failing: deletes never cascade,
// so dangling references are expected.
type Lookups struct {
	Products    map[uint]string
	Brands      map[uint]string
	Technicians map[uint]string
}

const missingLabel = "-"

func (l Lookups) product(id uint) string { return l.resolve(l.Products, id) }
func (l Lookups) brand(id uint) string   { return l.resolve(l.Brands, id) }
func (l Lookups) technician(id *uint) string {
	if id == nil {
		return missingLabel
	}
	return l.resolve(l.Technicians, *id)
}

func (l Lookups) resolve(m map[uint]string, id uint) string {
	if name, ok := m[id]; ok {
		return name
	}
	return missingLabel
}

var categoryLabels = map[string]string{
	order.CategoryQuote:    "Orçamento",
	order.CategorySale:     "Venda Balcão",
	order.CategoryWarranty: "Garantia",
	order.CategoryVisit:    "Visita Técnica",
}

var statusLabels = map[string]string{
	order.StatusOpen:       "Aberta",
	order.StatusWaiting:    "Aguardando Peça",
	order.StatusInProgress: "Em Andamento",
	order.StatusDone:       "Concluída",
	order.StatusCanceled:   "Cancelada",
}

func label(m map[string]string, value string) string {
	if l, ok := m[value]; ok {
		return l
	}
	return value
}

// OrderColumns is the standard export layout for the order list screen.
func OrderColumns(lookups Lookups) []Column {
	return []Column{
		{Key: "number", Label: "Nº OS", Value: func(o *model.ServiceOrder) string {
			return order.FormatNumber(o.ID)
		}},
		{Key: "category", Label: "Categoria", Value: func(o *model.ServiceOrder) string {
			return label(categoryLabels, o.Category)
		}},
		{Key: "status", Label: "Status", Value: func(o *model.ServiceOrder) string {
			return label(statusLabels, o.Status)
		}},
		{Key: "opened_at", Label: "Data Abertura", Value: func(o *model.ServiceOrder) string {
			return o.OpenedAt.Local().Format("02/01/2006")
		}},
		{Key: "client", Label: "Cliente", Value: func(o *model.ServiceOrder) string {
			return o.ClientName
		}},
		{Key: "phone", Label: "Telefone", Value: func(o *model.ServiceOrder) string {
			return order.FormatPhone(o.ClientPhone)
		}},
		{Key: "address", Label: "Endereço", Value: func(o *model.ServiceOrder) string {
			return order.FullAddress(o)
		}},
		{Key: "product", Label: "Equipamento", Value: func(o *model.ServiceOrder) string {
			return lookups.product(o.ProductID)
		}},
		{Key: "brand", Label: "Marca", Value: func(o *model.ServiceOrder) string {
			return lookups.brand(o.BrandID)
		}},
		{Key: "technician", Label: "Técnico", Value: func(o *model.ServiceOrder) string {
			return lookups.technician(o.TechnicianID)
		}},
		{Key: "defect", Label: "Defeito", Value: func(o *model.ServiceOrder) string {
			return o.Defect
		}},
	}
}

// WriteCSV writes the projected rows as semicolon-separated CSV with a UTF-8
// BOM so spreadsheet applications pick up the encoding and the separator.
func WriteCSV(w io.Writer, columns []Column, orders []model.ServiceOrder) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for i := range orders {
		for j, col := range columns {
			row[j] = col.Value(&orders[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
