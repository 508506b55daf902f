package order

import (
	"testing"

	"techos-service/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		id   uint
		want string
	}{
		{1, "00001"},
		{42, "00042"},
		{99999, "99999"},
		{123456, "123456"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.id); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"150", 150},
		{"150,00", 150},
		{"150.50", 150.50},
		{"1.234,56", 1234.56},
		{"R$ 1.234,56", 1234.56},
		{"R$150,00", 150},
		{"0,99", 0.99},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if err != nil {
			t.Errorf("ParseMoney(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoneyRejects(t *testing.T) {
	for _, in := range []string{"abc", "-10", "-1,50", "R$ dez"} {
		if _, err := ParseMoney(in); err == nil {
			t.Errorf("ParseMoney(%q) should fail", in)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11987654321", "(11) 98765-4321"},
		{"1134567890", "(11) 3456-7890"},
		{"(11) 98765-4321", "(11) 98765-4321"},
		{"123", "123"}, // unknown shape passes through
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCEP(t *testing.T) {
	if got := FormatCEP("01310100"); got != "01310-100" {
		t.Errorf("FormatCEP = %q", got)
	}
	if got := FormatCEP("123"); got != "123" {
		t.Errorf("short CEP should pass through, got %q", got)
	}
}

func TestFullAddress(t *testing.T) {
	o := &model.ServiceOrder{
		AddressStreet:     "Av. Paulista",
		AddressNumber:     "1000",
		AddressComplement: "Sala 12",
		AddressDistrict:   "Bela Vista",
		AddressCity:       "São Paulo",
		AddressState:      "SP",
		AddressCEP:        "01310100",
	}
	want := "Av. Paulista, 1000 - Sala 12, Bela Vista, São Paulo - SP, CEP: 01310-100"
	if got := FullAddress(o); got != want {
		t.Errorf("FullAddress = %q, want %q", got, want)
	}
}

func TestFullAddressSkipsEmptyParts(t *testing.T) {
	o := &model.ServiceOrder{AddressCity: "São Paulo"}
	if got := FullAddress(o); got != "São Paulo" {
		t.Errorf("FullAddress = %q", got)
	}
	if got := FullAddress(&model.ServiceOrder{}); got != "" {
		t.Errorf("empty order should render empty address, got %q", got)
	}
}
