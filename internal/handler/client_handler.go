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

// ClientHandler exposes the customer registry: CRUD, the active toggle and
// the live search the order form uses to snapshot client data.
type ClientHandler struct {
	clients *store.ClientStore
}

// NewClientHandler wires the client endpoints.
func NewClientHandler(clients *store.ClientStore) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	TaxID string `json:"tax_id"`

	AddressCEP        string `json:"address_cep"`
	AddressStreet     string `json:"address_street"`
	AddressNumber     string `json:"address_number"`
	AddressComplement string `json:"address_complement"`
	AddressDistrict   string `json:"address_district"`
	AddressCity       string `json:"address_city"`
	AddressState      string `json:"address_state"`
	AddressLandmark   string `json:"address_landmark"`

	Notes  string `json:"notes"`
	Active *bool  `json:"active"`
}

func (r *clientRequest) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Nome é obrigatório"
	}
	if d := store.DigitsOnly(r.Phone); len(d) < 10 || len(d) > 11 {
		errs["phone"] = "Telefone inválido"
	}
	if r.TaxID != "" {
		if d := store.DigitsOnly(r.TaxID); len(d) != 11 && len(d) != 14 {
			errs["tax_id"] = "CPF/CNPJ inválido"
		}
	}
	return errs
}

func (r *clientRequest) apply(c *model.Client) {
	c.Name = strings.TrimSpace(r.Name)
	c.Phone = r.Phone
	c.Email = r.Email
	c.TaxID = r.TaxID
	c.AddressCEP = r.AddressCEP
	c.AddressStreet = r.AddressStreet
	c.AddressNumber = r.AddressNumber
	c.AddressComplement = r.AddressComplement
	c.AddressDistrict = r.AddressDistrict
	c.AddressCity = r.AddressCity
	c.AddressState = r.AddressState
	c.AddressLandmark = r.AddressLandmark
	c.Notes = r.Notes
}

// List returns the company's clients sorted by name; ?active=true narrows
// the result to active records.
func (h *ClientHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	var (
		clients []model.Client
		err     error
	)
	if c.QueryParam("active") == "true" {
		clients, err = h.clients.ListActive(c.Request().Context(), companyID)
	} else {
		clients, err = h.clients.List(c.Request().Context(), companyID)
	}
	if err != nil {
		log.Error("Failed to list clients", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list clients"})
	}

	prometheus.RecordEntityOp("client", "list")
	return c.JSON(http.StatusOK, clients)
}

// Search answers the order form's live lookup: at most ten active clients
// matching the term by name, phone or tax id. An empty term is an empty list.
func (h *ClientHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	clients, err := h.clients.Search(c.Request().Context(), companyID, c.QueryParam("q"))
	if err != nil {
		log.Error("Client search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	prometheus.RecordEntityOp("client", "search")
	return c.JSON(http.StatusOK, clients)
}

// Get fetches one client by id.
func (h *ClientHandler) Get(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	client, err := h.clients.GetByID(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch client"})
	}
	return c.JSON(http.StatusOK, client)
}

// Create registers a new client. The tax id is optional but, when present,
// must be unique within the company after stripping formatting.
func (h *ClientHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	client := &model.Client{CompanyID: companyID, Active: req.Active == nil || *req.Active}
	req.apply(client)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.clients.Create(c.Request().Context(), client); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			log.Warn("Duplicate client tax id rejected", zap.String("tax_id", req.TaxID))
			return c.JSON(http.StatusConflict, echo.Map{"error": "tax id already registered"})
		}
		log.Error("Failed to create client", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create client"})
	}

	prometheus.RecordEntityOp("client", "create")
	log.Info("Client created", zap.Uint("id", client.ID))
	return c.JSON(http.StatusCreated, client)
}

// Update replaces a client's editable fields.
func (h *ClientHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	client, err := h.clients.GetByID(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch client"})
	}

	req.apply(&client)
	if req.Active != nil {
		client.Active = *req.Active
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.clients.Update(c.Request().Context(), &client); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "tax id already registered"})
		}
		log.Error("Failed to update client", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update client"})
	}

	prometheus.RecordEntityOp("client", "update")
	return c.JSON(http.StatusOK, client)
}

// Delete hard-deletes a client. Orders keep their snapshotted client data, so
// nothing cascades.
func (h *ClientHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.clients.Delete(c.Request().Context(), companyID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		log.Error("Failed to delete client", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete client"})
	}

	prometheus.RecordEntityOp("client", "delete")
	log.Info("Client deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "client deleted"})
}

// Toggle flips the client's active flag.
func (h *ClientHandler) Toggle(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	client, err := h.clients.ToggleActive(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle client"})
	}

	prometheus.RecordEntityOp("client", "toggle")
	return c.JSON(http.StatusOK, client)
}
