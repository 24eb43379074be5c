package productapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cataloghub/product-service/internal/domain"
)

// ProductResponse is the lossless projection of a product row returned by the
// JSON endpoints.
type ProductResponse struct {
	ProdID          int64           `json:"prodId"`
	ProdName        string          `json:"prodName"`
	ProdCode        string          `json:"prodCode"`
	ProdDescription string          `json:"prodDescription,omitempty"`
	ProdImage       string          `json:"prodImage,omitempty"`
	ProdCost        decimal.Decimal `json:"prodCost"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProdID:          p.ID,
		ProdName:        p.Name,
		ProdCode:        p.Code,
		ProdDescription: p.Description,
		ProdImage:       p.Image,
		ProdCost:        p.Cost,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toResponse(&products[i]))
	}
	return responses
}
