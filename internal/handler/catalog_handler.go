package handler

import (
	"errors"
	"net/http"
	"strconv"
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

// CatalogRequest is the shared payload for the flat reference-data kinds.
// Phone is only meaningful for technicians; the other kinds ignore it.
// Active defaults to true when omitted.
type CatalogRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

// CatalogHandler exposes CRUD plus the active toggle for one reference-data
// kind (products, brands, technicians). The apply function copies the request
// onto the concrete record; everything else is identical across kinds.
type CatalogHandler[T any, PT interface {
	*T
	store.Record
}] struct {
	entity string
	store  *store.Store[T, PT]
	apply  func(target PT, req CatalogRequest)
}

// NewCatalogHandler wires one reference-data endpoint set. The entity name
// labels metrics and log lines.
func NewCatalogHandler[T any, PT interface {
	*T
	store.Record
}](entity string, s *store.Store[T, PT], apply func(PT, CatalogRequest)) *CatalogHandler[T, PT] {
	return &CatalogHandler[T, PT]{entity: entity, store: s, apply: apply}
}

// List returns the collection sorted by name; ?active=true narrows it to
// active records, the shape pickers consume.
func (h *CatalogHandler[T, PT]) List(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	var (
		items []T
		err   error
	)
	if c.QueryParam("active") == "true" {
		items, err = h.store.ListActive(c.Request().Context(), companyID)
	} else {
		items, err = h.store.List(c.Request().Context(), companyID)
	}
	if err != nil {
		log.Error("Failed to list records", zap.String("entity", h.entity), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list records"})
	}

	prometheus.RecordEntityOp(h.entity, "list")
	return c.JSON(http.StatusOK, items)
}

// Get fetches one record by id.
func (h *CatalogHandler[T, PT]) Get(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	item, err := h.store.GetByID(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch record"})
	}
	return c.JSON(http.StatusOK, item)
}

// Create inserts a new record. The name is required and must not collide with
// an existing record of the same kind, active or not.
func (h *CatalogHandler[T, PT]) Create(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)

	var req CatalogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	entity := PT(new(T))
	h.apply(entity, req)
	entity.SetCompanyID(companyID)
	entity.SetActive(req.Active == nil || *req.Active)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.store.Create(c.Request().Context(), entity); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			log.Warn("Duplicate name rejected",
				zap.String("entity", h.entity), zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{"error": "name already in use"})
		}
		log.Error("Failed to create record", zap.String("entity", h.entity), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create record"})
	}

	prometheus.RecordEntityOp(h.entity, "create")
	log.Info("Record created", zap.String("entity", h.entity), zap.Uint("id", entity.GetID()))
	return c.JSON(http.StatusCreated, entity)
}

// Update replaces a record's editable fields. Saving an unchanged name is not
// treated as a collision.
func (h *CatalogHandler[T, PT]) Update(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req CatalogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	current, err := h.store.GetByID(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch record"})
	}

	entity := PT(&current)
	h.apply(entity, req)
	if req.Active != nil {
		entity.SetActive(*req.Active)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.store.Update(c.Request().Context(), entity); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "name already in use"})
		}
		log.Error("Failed to update record", zap.String("entity", h.entity), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update record"})
	}

	prometheus.RecordEntityOp(h.entity, "update")
	return c.JSON(http.StatusOK, entity)
}

// Delete hard-deletes a record. Orders referencing it keep the stale id and
// render a fallback label.
func (h *CatalogHandler[T, PT]) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.store.Delete(c.Request().Context(), companyID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		log.Error("Failed to delete record", zap.String("entity", h.entity), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete record"})
	}

	prometheus.RecordEntityOp(h.entity, "delete")
	log.Info("Record deleted", zap.String("entity", h.entity), zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "record deleted"})
}

// Toggle flips the record's active flag and returns the updated record.
func (h *CatalogHandler[T, PT]) Toggle(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	item, err := h.store.ToggleActive(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle record"})
	}

	prometheus.RecordEntityOp(h.entity, "toggle")
	return c.JSON(http.StatusOK, item)
}

// NewProductHandler builds the product endpoint set.
func NewProductHandler(s *store.Store[model.Product, *model.Product]) *CatalogHandler[model.Product, *model.Product] {
	return NewCatalogHandler("product", s, func(p *model.Product, req CatalogRequest) {
		p.Name = req.Name
	})
}

// NewBrandHandler builds the brand endpoint set.
func NewBrandHandler(s *store.Store[model.Brand, *model.Brand]) *CatalogHandler[model.Brand, *model.Brand] {
	return NewCatalogHandler("brand", s, func(b *model.Brand, req CatalogRequest) {
		b.Name = req.Name
	})
}

// NewTechnicianHandler builds the technician endpoint set.
func NewTechnicianHandler(s *store.Store[model.Technician, *model.Technician]) *CatalogHandler[model.Technician, *model.Technician] {
	return NewCatalogHandler("technician", s, func(t *model.Technician, req CatalogRequest) {
		t.Name = req.Name
		t.Phone = req.Phone
	})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
