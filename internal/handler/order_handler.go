package handler

import (
	"errors"
	"net/http"
	"time"

	"techos-service/internal/middleware"
	"techos-service/internal/model"
	"techos-service/internal/order"
	"techos-service/internal/store"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandler exposes the service-order lifecycle: CRUD, search, the
// dashboard aggregates and the calendar grouping.
type OrderHandler struct {
	orders *store.OrderStore
}

// NewOrderHandler wires the service-order endpoints.
func NewOrderHandler(orders *store.OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderPhotoRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// orderRequest carries the order form payload. Monetary fields arrive as the
// user typed them ("R$ 1.234,56", "150,00") and are parsed server-side.
type orderRequest struct {
	Category string `json:"category"`
	Status   string `json:"status"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	AddressCEP        string `json:"address_cep"`
	AddressStreet     string `json:"address_street"`
	AddressNumber     string `json:"address_number"`
	AddressComplement string `json:"address_complement"`
	AddressDistrict   string `json:"address_district"`
	AddressCity       string `json:"address_city"`
	AddressState      string `json:"address_state"`
	AddressLandmark   string `json:"address_landmark"`

	ProductID      uint   `json:"product_id"`
	BrandID        uint   `json:"brand_id"`
	EquipmentModel string `json:"equipment_model"`

	TechnicianID    *uint  `json:"technician_id"`
	DisplacementFee string `json:"displacement_fee"`
	PaymentMethod   string `json:"payment_method"`
	TotalValue      string `json:"total_value"`

	Defect        string `json:"defect"`
	PendingIssues string `json:"pending_issues"`
	VisitHistory  string `json:"visit_history"`
	WarrantyNotes string `json:"warranty_notes"`

	Photos []orderPhotoRequest `json:"photos"`
}

// toDraft builds the order record and collects the field errors, monetary
// parse failures included, so the caller answers with all of them at once.
func (r *orderRequest) toDraft(companyID uint) (*model.ServiceOrder, map[string]string) {
	draft := &model.ServiceOrder{
		CompanyID:         companyID,
		Category:          r.Category,
		Status:            r.Status,
		ClientID:          r.ClientID,
		ClientName:        r.ClientName,
		ClientPhone:       r.ClientPhone,
		AddressCEP:        r.AddressCEP,
		AddressStreet:     r.AddressStreet,
		AddressNumber:     r.AddressNumber,
		AddressComplement: r.AddressComplement,
		AddressDistrict:   r.AddressDistrict,
		AddressCity:       r.AddressCity,
		AddressState:      r.AddressState,
		AddressLandmark:   r.AddressLandmark,
		ProductID:         r.ProductID,
		BrandID:           r.BrandID,
		EquipmentModel:    r.EquipmentModel,
		TechnicianID:      r.TechnicianID,
		PaymentMethod:     r.PaymentMethod,
		Defect:            r.Defect,
		PendingIssues:     r.PendingIssues,
		VisitHistory:      r.VisitHistory,
		WarrantyNotes:     r.WarrantyNotes,
	}

	moneyErrs := map[string]string{}
	total, err := order.ParseMoney(r.TotalValue)
	if err != nil {
		moneyErrs["total_value"] = "Valor inválido"
	}
	draft.TotalValue = total

	fee, err := order.ParseMoney(r.DisplacementFee)
	if err != nil {
		moneyErrs["displacement_fee"] = "Valor inválido"
	}
	draft.DisplacementFee = fee

	now := time.Now()
	for _, p := range r.Photos {
		draft.Photos = append(draft.Photos, model.OrderPhoto{
			Filename:   p.Filename,
			URL:        p.URL,
			UploadedAt: now,
		})
	}

	errs := order.Validate(draft)
	for k, v := range moneyErrs {
		errs[k] = v
	}
	return draft, errs
}

// List returns the company's orders, most recently opened first.
func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.List(c.Request().Context(), companyID)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list orders"})
	}

	prometheus.RecordOrderOp("list")
	return c.JSON(http.StatusOK, orders)
}

// Get fetches one order with its photo list.
func (h *OrderHandler) Get(c echo.Context) error {
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	o, err := h.orders.GetByID(c.Request().Context(), companyID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	return c.JSON(http.StatusOK, o)
}

// Create validates the draft and opens a new order. The status always starts
// at 'aberta' whatever the payload says, and the opening timestamp is set
// server-side.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	draft, errs := req.toDraft(companyID)
	if len(errs) > 0 {
		prometheus.OrderValidationCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.orders.Create(c.Request().Context(), draft); err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	prometheus.RecordOrderOp("create")
	log.Info("Order opened",
		zap.Uint("id", draft.ID),
		zap.String("number", order.FormatNumber(draft.ID)),
		zap.String("category", draft.Category))
	return c.JSON(http.StatusCreated, draft)
}

// Update validates and replaces an order's mutable fields. Any status may
// follow any other; only membership in the status set is enforced. The photo
// list is replaced wholesale.
func (h *OrderHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	draft, errs := req.toDraft(companyID)
	if len(errs) > 0 {
		prometheus.OrderValidationCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}
	draft.ID = id
	if draft.Status == "" {
		draft.Status = order.StatusOpen
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.orders.Update(c.Request().Context(), draft); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		log.Error("Failed to update order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
	}

	prometheus.RecordOrderOp("update")
	return c.JSON(http.StatusOK, draft)
}

// Delete hard-deletes an order and its photo metadata.
func (h *OrderHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.orders.Delete(c.Request().Context(), companyID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		log.Error("Failed to delete order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order"})
	}

	prometheus.RecordOrderOp("delete")
	log.Info("Order deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted"})
}

// Search matches orders by client name or order number.
func (h *OrderHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.Search(c.Request().Context(), companyID, c.QueryParam("q"))
	if err != nil {
		log.Error("Order search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}

	prometheus.RecordOrderOp("search")
	return c.JSON(http.StatusOK, orders)
}

// Stats answers the dashboard counts per status and category.
func (h *OrderHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.List(c.Request().Context(), companyID)
	if err != nil {
		log.Error("Failed to compute order stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute stats"})
	}

	prometheus.RecordOrderOp("stats")
	return c.JSON(http.StatusOK, order.ComputeStats(orders))
}

// Urgent returns open or in-progress orders older than the SLA threshold.
func (h *OrderHandler) Urgent(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.List(c.Request().Context(), companyID)
	if err != nil {
		log.Error("Failed to list urgent orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list urgent orders"})
	}

	prometheus.RecordOrderOp("urgent")
	return c.JSON(http.StatusOK, order.UrgentOrders(orders, time.Now()))
}

// Calendar groups the company's orders by the local day they were opened.
func (h *OrderHandler) Calendar(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.List(c.Request().Context(), companyID)
	if err != nil {
		log.Error("Failed to build order calendar", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build calendar"})
	}

	prometheus.RecordOrderOp("calendar")
	return c.JSON(http.StatusOK, order.GroupByDate(orders))
}
