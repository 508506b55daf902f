package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"techos-service/internal/middleware"
	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CompanyHandler exposes tenant management. Full CRUD and the platform stats
// are super-admin territory; the settings pair is the company admin's window
// onto its own record.
type CompanyHandler struct {
	companies *store.CompanyStore
}

// NewCompanyHandler wires the company endpoints.
func NewCompanyHandler(companies *store.CompanyStore) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type companyRequest struct {
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	CEP       string `json:"cep"`
	Plan      string `json:"plan"`
	Terms     string `json:"terms"`
	Active    *bool  `json:"active"`
}

func (r *companyRequest) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.LegalName) == "" {
		errs["legal_name"] = "Razão social é obrigatória"
	}
	if len(store.DigitsOnly(r.TaxID)) != 14 {
		errs["tax_id"] = "CNPJ inválido"
	}
	if r.Plan != "" && r.Plan != "basico" && r.Plan != "premium" {
		errs["plan"] = "Plano inválido"
	}
	return errs
}

func (r *companyRequest) apply(c *model.Company) {
	c.LegalName = strings.TrimSpace(r.LegalName)
	c.TradeName = r.TradeName
	c.TaxID = r.TaxID
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.State = r.State
	c.CEP = r.CEP
	if r.Plan != "" {
		c.Plan = r.Plan
	}
	c.Terms = r.Terms
}

// List returns every tenant sorted by legal name.
func (h *CompanyHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	companies, err := h.companies.List(c.Request().Context(), 0)
	if err != nil {
		log.Error("Failed to list companies", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list companies"})
	}

	prometheus.RecordEntityOp("company", "list")
	return c.JSON(http.StatusOK, companies)
}

// Get fetches one tenant by id.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	company, err := h.companies.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch company"})
	}
	return c.JSON(http.StatusOK, company)
}

// Create registers a new tenant. CNPJ uniqueness is digits-only across the
// whole platform.
func (h *CompanyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	company := &model.Company{Plan: "basico", Active: req.Active == nil || *req.Active}
	req.apply(company)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.companies.Create(c.Request().Context(), company); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			log.Warn("Duplicate company CNPJ rejected", zap.String("tax_id", req.TaxID))
			return c.JSON(http.StatusConflict, echo.Map{"error": "CNPJ already registered"})
		}
		log.Error("Failed to create company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create company"})
	}

	prometheus.RecordEntityOp("company", "create")
	log.Info("Company created", zap.Uint("id", company.ID), zap.String("legal_name", company.LegalName))
	return c.JSON(http.StatusCreated, company)
}

// Update replaces a tenant's editable fields.
func (h *CompanyHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	company, err := h.companies.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch company"})
	}

	req.apply(&company)
	if req.Active != nil {
		company.Active = *req.Active
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.companies.Update(c.Request().Context(), &company); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "CNPJ already registered"})
		}
		log.Error("Failed to update company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update company"})
	}

	prometheus.RecordEntityOp("company", "update")
	return c.JSON(http.StatusOK, company)
}

// Delete hard-deletes a tenant record. Its users and business data stay
// behind, unreachable until reassigned.
func (h *CompanyHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.companies.Delete(c.Request().Context(), 0, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		log.Error("Failed to delete company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete company"})
	}

	prometheus.RecordEntityOp("company", "delete")
	log.Info("Company deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "company deleted"})
}

// Toggle flips the tenant's active flag. Users of a deactivated company can
// still sign in; the flag is informational for the platform dashboard.
func (h *CompanyHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	company, err := h.companies.ToggleActive(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle company"})
	}

	prometheus.RecordEntityOp("company", "toggle")
	return c.JSON(http.StatusOK, company)
}

// Stats answers the super-admin dashboard totals.
func (h *CompanyHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	stats, err := h.companies.Stats(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute platform stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetSettings returns the authenticated admin's own company record.
func (h *CompanyHandler) GetSettings(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	company, err := h.companies.GetByID(c.Request().Context(), 0, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch settings"})
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateSettings applies the whitelisted settings patch to the admin's own
// company. Fields outside the whitelist are silently ignored.
func (h *CompanyHandler) UpdateSettings(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)

	var patch model.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	company, err := h.companies.UpdateSettings(c.Request().Context(), companyID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		log.Error("Failed to update settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
	}

	prometheus.RecordEntityOp("company", "update_settings")
	log.Info("Company settings updated", zap.Uint("company_id", companyID))
	return c.JSON(http.StatusOK, company)
}
