package order

import (
	"strconv"
	"strings"

	"techos-service/internal/model"
	"techos-service/internal/store"
)

// Validate checks a service-order draft before it reaches the store. Every
// rule runs independently and the result maps each violated field to its
// message, so the form can surface all of them at once. An empty map means
// the draft is valid; no write happens while the map is non-empty.
func Validate(draft *model.ServiceOrder) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(draft.Category) == "" {
		errs["category"] = "Categoria é obrigatória"
	} else if !ValidCategory(draft.Category) {
		errs["category"] = "Categoria inválida"
	}

	if draft.Status != "" && !ValidStatus(draft.Status) {
		errs["status"] = "Status inválido"
	}

	if strings.TrimSpace(draft.ClientName) == "" {
		errs["client_name"] = "Nome do cliente é obrigatório"
	}

	if strings.TrimSpace(draft.ClientPhone) == "" {
		errs["client_phone"] = "Telefone é obrigatório"
	} else if !validPhone(draft.ClientPhone) {
		errs["client_phone"] = "Telefone inválido"
	}

	if strings.TrimSpace(draft.AddressCEP) == "" {
		errs["address_cep"] = "CEP é obrigatório"
	} else if !validCEP(draft.AddressCEP) {
		errs["address_cep"] = "CEP inválido"
	}

	if strings.TrimSpace(draft.AddressStreet) == "" {
		errs["address_street"] = "Rua é obrigatória"
	}
	if strings.TrimSpace(draft.AddressDistrict) == "" {
		errs["address_district"] = "Bairro é obrigatório"
	}
	if strings.TrimSpace(draft.AddressCity) == "" {
		errs["address_city"] = "Cidade é obrigatória"
	}
	if strings.TrimSpace(draft.AddressState) == "" {
		errs["address_state"] = "UF é obrigatório"
	}

	if draft.ProductID == 0 {
		errs["product_id"] = "Tipo de equipamento é obrigatório"
	}
	if draft.BrandID == 0 {
		errs["brand_id"] = "Marca é obrigatória"
	}

	if strings.TrimSpace(draft.Defect) == "" {
		errs["defect"] = "Descrição do defeito é obrigatória"
	}

	if draft.TotalValue < 0 {
		errs["total_value"] = "Valor inválido"
	}
	if draft.DisplacementFee < 0 {
		errs["displacement_fee"] = "Valor inválido"
	}

	if !ValidPaymentMethod(draft.PaymentMethod) {
		errs["payment_method"] = "Forma de pagamento inválida"
	}

	if len(draft.Photos) > model.MaxOrderPhotos {
		errs["photos"] = "Máximo de " + strconv.Itoa(model.MaxOrderPhotos) + " fotos por ordem"
	}

	return errs
}

// Brazilian phone numbers normalize to 10 digits (landline) or 11 (mobile).
func validPhone(phone string) bool {
	n := len(store.DigitsOnly(phone))
	return n == 10 || n == 11
}

// CEP normalizes to exactly 8 digits, whatever separators were typed.
func validCEP(cep string) bool {
	return len(store.DigitsOnly(cep)) == 8
}
