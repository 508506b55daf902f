package handler

import (
	"bytes"
	"net/http"
	"time"

	"techos-service/internal/export"
	"techos-service/internal/middleware"
	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExportHandler streams the order list as a spreadsheet download. Catalog
// stores resolve the orders' weak references to display names; anything
// dangling becomes a fallback label, never an error.
type ExportHandler struct {
	orders      *store.OrderStore
	products    *store.Store[model.Product, *model.Product]
	brands      *store.Store[model.Brand, *model.Brand]
	technicians *store.Store[model.Technician, *model.Technician]
}

// NewExportHandler wires the CSV export endpoint.
func NewExportHandler(
	orders *store.OrderStore,
	products *store.Store[model.Product, *model.Product],
	brands *store.Store[model.Brand, *model.Brand],
	technicians *store.Store[model.Technician, *model.Technician],
) *ExportHandler {
	return &ExportHandler{orders: orders, products: products, brands: brands, technicians: technicians}
}

// Orders writes the company's orders as semicolon-separated CSV with a UTF-8
// BOM, named by the export date.
func (h *ExportHandler) Orders(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	ctx := c.Request().Context()
	defer prometheus.TrackDBOperation("query")(time.Now())

	orders, err := h.orders.List(ctx, companyID)
	if err != nil {
		log.Error("Failed to load orders for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	lookups, err := h.buildLookups(c, companyID)
	if err != nil {
		log.Error("Failed to load catalog lookups for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, export.OrderColumns(lookups), orders); err != nil {
		log.Error("Failed to write export CSV", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	prometheus.RecordOrderOp("export")
	log.Info("Orders exported", zap.Int("count", len(orders)))

	filename := "ordens_" + time.Now().Local().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) buildLookups(c echo.Context, companyID uint) (export.Lookups, error) {
	ctx := c.Request().Context()
	lookups := export.Lookups{
		Products:    map[uint]string{},
		Brands:      map[uint]string{},
		Technicians: map[uint]string{},
	}

	products, err := h.products.List(ctx, companyID)
	if err != nil {
		return lookups, err
	}
	for _, p := range products {
		lookups.Products[p.ID] = p.Name
	}

	brands, err := h.brands.List(ctx, companyID)
	if err != nil {
		return lookups, err
	}
	for _, b := range brands {
		lookups.Brands[b.ID] = b.Name
	}

	technicians, err := h.technicians.List(ctx, companyID)
	if err != nil {
		return lookups, err
	}
	for _, t := range technicians {
		lookups.Technicians[t.ID] = t.Name
	}

	return lookups, nil
}
