package productapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cataloghub/product-service/internal/domain"
	"github.com/cataloghub/product-service/internal/product"
	"github.com/cataloghub/product-service/internal/report"
	"github.com/cataloghub/product-service/internal/webserver"
	"github.com/cataloghub/product-service/pkg/images"
)

const contentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductService is the slice of the lifecycle service the handlers need.
type ProductService interface {
	Add(ctx context.Context, req product.AddRequest) (*domain.Product, error)
	Update(ctx context.Context, req product.UpdateRequest) (*domain.Product, error)
	SoftDelete(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, name, code string) ([]domain.Product, error)
	GenerateReport(ctx context.Context, start, end *time.Time) ([]byte, error)
	ExportExcel(ctx context.Context, start, end *time.Time) ([]byte, error)
}

type Handler struct {
	service ProductService
}

func NewHandler(service ProductService) *Handler {
	return &Handler{service: service}
}

// Register mounts the product routes under /api/products.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api/products")
	g.POST("/add-product", h.addProduct)
	g.POST("/update-product", h.updateProduct)
	g.POST("/soft-delete", h.softDeleteProduct)
	g.GET("/search", h.searchProducts)
	g.GET("/report", h.downloadReport)
	g.GET("/export", h.downloadExport)
}

func (h *Handler) addProduct(c echo.Context) error {
	form, fieldErrs := parseProductForm(c, false)
	if len(fieldErrs) > 0 {
		return webserver.FailWithPayload(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	}

	image, err := readImageUpload(c)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Add(c.Request().Context(), product.AddRequest{
		Name:        form.Name,
		Code:        form.Code,
		Description: form.Description,
		Image:       image,
		Cost:        form.Cost,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateCode):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product with code %s already exists", form.Code))
		case errors.Is(err, domain.ErrDuplicateName):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product with name %s already exists", form.Name))
		default:
			zap.S().Errorf("add product failed: %+v", err)
			return webserver.Fail(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
	}
	return webserver.OK(c, http.StatusCreated, "Product added successfully", toResponse(created))
}

func (h *Handler) updateProduct(c echo.Context) error {
	form, fieldErrs := parseProductForm(c, true)
	if len(fieldErrs) > 0 {
		return webserver.FailWithPayload(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	}

	image, err := readImageUpload(c)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), product.UpdateRequest{
		ID:          form.ID,
		Name:        form.Name,
		Code:        form.Code,
		Description: form.Description,
		Image:       image,
		Cost:        form.Cost,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product not found with ID: %d", form.ID))
		case errors.Is(err, domain.ErrDuplicateCode):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product with code %s already exists", form.Code))
		case errors.Is(err, domain.ErrDuplicateName):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product with name %s already exists", form.Name))
		case errors.Is(err, domain.ErrProductIDChanged):
			return webserver.Fail(c, http.StatusBadRequest, "Product ID cannot be changed")
		default:
			zap.S().Errorf("update product failed: %+v", err)
			return webserver.Fail(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
	}
	return webserver.OK(c, http.StatusOK, "Product updated successfully", toResponse(updated))
}

type softDeletePayload struct {
	ProdID *int64 `json:"prodId"`
}

func (h *Handler) softDeleteProduct(c echo.Context) error {
	var payload softDeletePayload
	if err := c.Bind(&payload); err != nil || payload.ProdID == nil {
		return webserver.Fail(c, http.StatusBadRequest, "Product ID is required")
	}

	deleted, err := h.service.SoftDelete(c.Request().Context(), *payload.ProdID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return webserver.Fail(c, http.StatusBadRequest, fmt.Sprintf("Product not found with ID: %d", *payload.ProdID))
		case errors.Is(err, domain.ErrProductAlreadyInactive):
			return webserver.Fail(c, http.StatusBadRequest, "Product is already inactive")
		default:
			zap.S().Errorf("soft delete product failed: %+v", err)
			return webserver.Fail(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
	}
	return webserver.OK(c, http.StatusOK, "Product soft deleted successfully", toResponse(deleted))
}

func (h *Handler) searchProducts(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("productName"))
	code := strings.TrimSpace(c.QueryParam("productCode"))
	if name == "" && code == "" {
		return webserver.Fail(c, http.StatusBadRequest,
			"At least one search parameter (productName or productCode) is required")
	}

	matches, err := h.service.Search(c.Request().Context(), name, code)
	if err != nil {
		zap.S().Errorf("search products failed: %+v", err)
		return webserver.Fail(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
	return webserver.OK(c, http.StatusOK, "Products retrieved successfully", toResponses(matches))
}

func (h *Handler) downloadReport(c echo.Context) error {
	start, err := parseDateParam(c, "startDate")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Invalid startDate, expected an ISO-8601 date-time")
	}
	end, err := parseDateParam(c, "endDate")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Invalid endDate, expected an ISO-8601 date-time")
	}

	pdfBytes, err := h.service.GenerateReport(c.Request().Context(), start, end)
	if err != nil {
		if errors.Is(err, report.ErrGenerate) {
			zap.S().Errorf("report generation failed: %+v", err)
			return c.NoContent(http.StatusInternalServerError)
		}
		zap.S().Errorf("report query failed: %+v", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	filename := fmt.Sprintf("product-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) downloadExport(c echo.Context) error {
	start, err := parseDateParam(c, "startDate")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Invalid startDate, expected an ISO-8601 date-time")
	}
	end, err := parseDateParam(c, "endDate")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Invalid endDate, expected an ISO-8601 date-time")
	}

	xlsxBytes, err := h.service.ExportExcel(c.Request().Context(), start, end)
	if err != nil {
		zap.S().Errorf("excel export failed: %+v", err)
		return c.NoContent(http.StatusInternalServerError)
	}

	filename := fmt.Sprintf("product-export-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, contentTypeXlsx, xlsxBytes)
}

// readImageUpload validates and base64-encodes the optional prodImage part.
// Returns "" when no file was uploaded.
func readImageUpload(c echo.Context) (string, error) {
	fh, err := c.FormFile("prodImage")
	if err != nil {
		// no upload present
		return "", nil
	}
	if err := images.Validate(fh.Size, fh.Header.Get(echo.HeaderContentType)); err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(images.ErrImageRead, err.Error())
	}
	defer f.Close()
	return images.EncodeBase64(f)
}
