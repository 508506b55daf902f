package order

import (
	"testing"

	"techos-service/internal/model"
)

func validDraft() *model.ServiceOrder {
	return &model.ServiceOrder{
		Category:        CategoryQuote,
		ClientName:      "Maria Souza",
		ClientPhone:     "(11) 98765-4321",
		AddressCEP:      "01310-100",
		AddressStreet:   "Av. Paulista",
		AddressDistrict: "Bela Vista",
		AddressCity:     "São Paulo",
		AddressState:    "SP",
		ProductID:       1,
		BrandID:         2,
		Defect:          "Não liga",
		PaymentMethod:   "pix",
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	if errs := Validate(validDraft()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	errs := Validate(&model.ServiceOrder{})

	wantKeys := []string{
		"category", "client_name", "client_phone", "address_cep",
		"address_street", "address_district", "address_city", "address_state",
		"product_id", "brand_id", "defect",
	}
	for _, key := range wantKeys {
		if _, ok := errs[key]; !ok {
			t.Errorf("missing error for field %q", key)
		}
	}
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.ServiceOrder)
		wantKey string
	}{
		{"unknown category", func(o *model.ServiceOrder) { o.Category = "reforma" }, "category"},
		{"unknown status", func(o *model.ServiceOrder) { o.Status = "pausada" }, "status"},
		{"phone with nine digits", func(o *model.ServiceOrder) { o.ClientPhone = "987654321" }, "client_phone"},
		{"phone with twelve digits", func(o *model.ServiceOrder) { o.ClientPhone = "551198765432" }, "client_phone"},
		{"CEP with seven digits", func(o *model.ServiceOrder) { o.AddressCEP = "0131010" }, "address_cep"},
		{"CEP with nine digits", func(o *model.ServiceOrder) { o.AddressCEP = "013101000" }, "address_cep"},
		{"negative total", func(o *model.ServiceOrder) { o.TotalValue = -1 }, "total_value"},
		{"negative displacement fee", func(o *model.ServiceOrder) { o.DisplacementFee = -0.5 }, "displacement_fee"},
		{"unknown payment method", func(o *model.ServiceOrder) { o.PaymentMethod = "fiado" }, "payment_method"},
		{"too many photos", func(o *model.ServiceOrder) {
			o.Photos = make([]model.OrderPhoto, model.MaxOrderPhotos+1)
		}, "photos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)
			errs := Validate(draft)
			if _, ok := errs[tt.wantKey]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantKey, errs)
			}
		})
	}
}

func TestValidatePhoneAndCEPAcceptFormatting(t *testing.T) {
	draft := validDraft()
	draft.ClientPhone = "11 3456-7890" // landline, 10 digits
	draft.AddressCEP = "01310100"
	if errs := Validate(draft); len(errs) != 0 {
		t.Errorf("formatted input should pass, got %v", errs)
	}
}

func TestValidateEmptyStatusAndPaymentAllowed(t *testing.T) {
	draft := validDraft()
	draft.Status = ""
	draft.PaymentMethod = ""
	if errs := Validate(draft); len(errs) != 0 {
		t.Errorf("empty status and payment are allowed, got %v", errs)
	}
}

func TestValidateMaxPhotosExactlyAtLimit(t *testing.T) {
	draft := validDraft()
	draft.Photos = make([]model.OrderPhoto, model.MaxOrderPhotos)
	if errs := Validate(draft); len(errs) != 0 {
		t.Errorf("photo count at the limit should pass, got %v", errs)
	}
}
