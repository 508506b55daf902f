package store

import (
	"context"

	"techos-service/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads the development fixtures: one tenant, the three account roles
// and the default catalog. It is idempotent, keyed on the user table being
// empty, and is only called in the development environment.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	company := model.Company{
		LegalName: "TechOS Assistência Técnica Ltda",
		TradeName: "TechOS",
		TaxID:     "12.345.678/0001-90",
		Email:     "contato@techos.com.br",
		Phone:     "(11) 3456-7890",
		Address:   "Rua das Oficinas, 120",
		City:      "São Paulo",
		State:     "SP",
		CEP:       "01310-100",
		Plan:      "premium",
		Active:    true,
	}
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []model.User{
		{Name: "Super Admin", Email: "super@techos.com.br", Password: string(hash), Role: model.RoleSuperAdmin, Active: true},
		{Name: "Administrador", Email: "admin@techos.com.br", Password: string(hash), Role: model.RoleCompanyAdmin, CompanyID: &company.ID, Active: true},
		{Name: "Técnico Padrão", Email: "tecnico@techos.com.br", Password: string(hash), Role: model.RoleUser, CompanyID: &company.ID, Active: true},
	}
	if err := db.WithContext(ctx).Create(&users).Error; err != nil {
		return err
	}

	productNames := []string{
		"Ar Condicionado Split", "Ar Condicionado Janela", "Geladeira", "Freezer",
		"Máquina de Lavar", "Lava e Seca", "Secadora", "Micro-ondas", "Forno Elétrico",
		"Fogão", "Lava-Louças", "Purificador de Água", "Adega Climatizada",
	}
	products := make([]model.Product, len(productNames))
	for i, name := range productNames {
		products[i] = model.Product{CompanyID: company.ID, Name: name, Active: true}
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return err
	}

	brandNames := []string{
		"Samsung", "LG", "Electrolux", "Brastemp", "Consul", "Philco", "Midea",
		"Springer", "Carrier", "Gree", "Panasonic", "Bosch", "Fischer",
	}
	brands := make([]model.Brand, len(brandNames))
	for i, name := range brandNames {
		brands[i] = model.Brand{CompanyID: company.ID, Name: name, Active: true}
	}
	if err := db.WithContext(ctx).Create(&brands).Error; err != nil {
		return err
	}

	clients := []model.Client{
		{
			CompanyID: company.ID, Name: "Maria Souza", Phone: "(11) 98888-7766",
			TaxID: "123.456.789-09", AddressCEP: "01310-100", AddressStreet: "Av. Paulista",
			AddressNumber: "1000", AddressDistrict: "Bela Vista", AddressCity: "São Paulo",
			AddressState: "SP", Active: true,
		},
		{
			CompanyID: company.ID, Name: "José Pereira", Phone: "(11) 3456-1234",
			AddressCity: "São Paulo", AddressState: "SP", Active: true,
		},
	}
	if err := db.WithContext(ctx).Create(&clients).Error; err != nil {
		return err
	}

	technicians := []model.Technician{
		{CompanyID: company.ID, Name: "Carlos Silva", Phone: "(11) 98765-4321", Active: true},
		{CompanyID: company.ID, Name: "João Santos", Phone: "(11) 97654-3210", Active: true},
		{CompanyID: company.ID, Name: "Pedro Oliveira", Phone: "(11) 96543-2109", Active: true},
	}
	if err := db.WithContext(ctx).Create(&technicians).Error; err != nil {
		return err
	}

	log.Info("Development fixtures seeded",
		zap.Uint("company_id", company.ID),
		zap.Int("products", len(products)),
		zap.Int("brands", len(brands)),
		zap.Int("technicians", len(technicians)))
	return nil
}
