package order

import (
	"fmt"
	"strconv"
	"strings"

	"techos-service/internal/model"
	"techos-service/internal/store"
)

// FormatNumber renders the order id as the five-digit padded number printed
// on paperwork and shown in every list.
func FormatNumber(id uint) string {
	return fmt.Sprintf("%05d", id)
}

// ParseMoney converts user-typed monetary input into a float. Brazilian
// formatting is accepted: "R$ 1.234,56" parses as 1234.56, a bare comma works
// as the decimal separator. Empty input is zero; a negative or unparseable
// value is an error.
func ParseMoney(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	cleaned := strings.ReplaceAll(v, "R$", "")
	cleaned = strings.TrimSpace(cleaned)
	if strings.Contains(cleaned, ",") {
		// comma is the decimal separator, dots are thousands markers
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid monetary value %q", v)
	}
	return n, nil
}

// FormatPhone renders a normalized phone for display:
// 11 digits as (XX) XXXXX-XXXX, 10 digits as (XX) XXXX-XXXX,
// anything else unchanged.
func FormatPhone(phone string) string {
	d := store.DigitsOnly(phone)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:6], d[6:])
	default:
		return phone
	}
}

// FormatCEP renders an 8-digit CEP as XXXXX-XXX, anything else unchanged.
func FormatCEP(cep string) string {
	d := store.DigitsOnly(cep)
	if len(d) != 8 {
		return cep
	}
	return d[0:5] + "-" + d[5:]
}

// FullAddress assembles the order's address fields into a single display
// line, skipping whatever is empty.
func FullAddress(o *model.ServiceOrder) string {
	parts := []string{}

	if o.AddressStreet != "" {
		street := o.AddressStreet
		if o.AddressNumber != "" {
			street += ", " + o.AddressNumber
		}
		if o.AddressComplement != "" {
			street += " - " + o.AddressComplement
		}
		parts = append(parts, street)
	}
	if o.AddressDistrict != "" {
		parts = append(parts, o.AddressDistrict)
	}
	if o.AddressCity != "" {
		city := o.AddressCity
		if o.AddressState != "" {
			city += " - " + o.AddressState
		}
		parts = append(parts, city)
	}
	if o.AddressCEP != "" {
		parts = append(parts, "CEP: "+FormatCEP(o.AddressCEP))
	}

	return strings.Join(parts, ", ")
}
