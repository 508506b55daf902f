package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"techos-service/internal/model"
	"techos-service/internal/order"
)

func sampleLookups() Lookups {
	return Lookups{
		Products:    map[uint]string{1: "Geladeira"},
		Brands:      map[uint]string{2: "Electrolux"},
		Technicians: map[uint]string{3: "Carlos Silva"},
	}
}

func TestWriteCSVLayout(t *testing.T) {
	techID := uint(3)
	orders := []model.ServiceOrder{
		{
			ID:           42,
			Category:     order.CategoryQuote,
			Status:       order.StatusOpen,
			OpenedAt:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local),
			ClientName:   "Maria Souza",
			ClientPhone:  "11987654321",
			AddressCity:  "São Paulo",
			AddressState: "SP",
			ProductID:    1,
			BrandID:      2,
			TechnicianID: &techID,
			Defect:       "Não gela",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, OrderColumns(sampleLookups()), orders); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "\uFEFF") {
		t.Error("output should start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(out, "\uFEFF"), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}

	header := strings.Split(lines[0], ";")
	if header[0] != "Nº OS" || header[len(header)-1] != "Defeito" {
		t.Errorf("unexpected header shape: %v", header)
	}

	row := strings.Split(lines[1], ";")
	if row[0] != "00042" {
		t.Errorf("order number = %q, want padded 00042", row[0])
	}
	if row[1] != "Orçamento" || row[2] != "Aberta" {
		t.Errorf("labels = %q, %q", row[1], row[2])
	}
	if row[3] != "10/03/2026" {
		t.Errorf("date = %q", row[3])
	}
	if row[5] != "(11) 98765-4321" {
		t.Errorf("phone = %q", row[5])
	}
	if row[7] != "Geladeira" || row[8] != "Electrolux" || row[9] != "Carlos Silva" {
		t.Errorf("lookups resolved to %q, %q, %q", row[7], row[8], row[9])
	}
}

func TestWriteCSVDanglingReferences(t *testing.T) {
	orders := []model.ServiceOrder{
		{
			ID:          1,
			Category:    order.CategorySale,
			Status:      order.StatusDone,
			OpenedAt:    time.Now(),
			ClientName:  "José",
			ClientPhone: "1134567890",
			ProductID:   99, // deleted product
			BrandID:     98, // deleted brand
			// no technician assigned
			Defect: "Troca de peça",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, OrderColumns(Lookups{}), orders); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	row := strings.Split(lines[1], ";")
	for _, idx := range []int{7, 8, 9} {
		if row[idx] != "-" {
			t.Errorf("column %d = %q, want fallback %q", idx, row[idx], "-")
		}
	}
}

func TestWriteCSVQuotesSeparator(t *testing.T) {
	orders := []model.ServiceOrder{
		{
			ID:          1,
			OpenedAt:    time.Now(),
			ClientName:  "Empresa X; Filial Sul",
			ClientPhone: "1134567890",
			Defect:      "linha 1\nlinha 2",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, OrderColumns(Lookups{}), orders); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, `"Empresa X; Filial Sul"`) {
		t.Error("field containing the separator should be quoted")
	}
	if !strings.Contains(out, "\"linha 1\nlinha 2\"") {
		t.Error("field containing a newline should be quoted")
	}
}

func TestWriteCSVEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, OrderColumns(Lookups{}), nil); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("empty collection should still produce the header, got %d lines", len(lines))
	}
}
