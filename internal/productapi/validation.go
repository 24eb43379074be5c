package productapi

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cataloghub/product-service/internal/product"
)

// maxCost bounds the integer part of prodCost to 8 digits.
var maxCost = decimal.New(1, 8)

// fieldErrors collects every validation failure keyed by form field, so a
// single 400 response reports them all.
type fieldErrors map[string]string

// parseProductForm reads and validates the multipart product fields. When
// withID is set, prodId is required as well. All checks run; nothing fails
// fast.
func parseProductForm(c echo.Context, withID bool) (product.UpdateRequest, fieldErrors) {
	errs := fieldErrors{}
	var req product.UpdateRequest

	if withID {
		raw := strings.TrimSpace(c.FormValue("prodId"))
		if raw == "" {
			errs["prodId"] = "Product ID is required"
		} else if id, err := strconv.ParseInt(raw, 10, 64); err != nil {
			errs["prodId"] = "Product ID must be a number"
		} else {
			req.ID = id
		}
	}

	name := strings.TrimSpace(c.FormValue("prodName"))
	switch {
	case name == "":
		errs["prodName"] = "Product name is required"
	case utf8.RuneCountInString(name) > 255:
		errs["prodName"] = "Product name must not exceed 255 characters"
	default:
		req.Name = name
	}

	code := strings.TrimSpace(c.FormValue("prodCode"))
	switch {
	case code == "":
		errs["prodCode"] = "Product code is required"
	case utf8.RuneCountInString(code) > 50:
		errs["prodCode"] = "Product code must not exceed 50 characters"
	default:
		req.Code = code
	}

	req.Description = c.FormValue("prodDescription")

	costRaw := strings.TrimSpace(c.FormValue("prodCost"))
	if costRaw == "" {
		errs["prodCost"] = "Product cost is required"
	} else if cost, err := decimal.NewFromString(costRaw); err != nil {
		errs["prodCost"] = "Product cost must be a valid decimal number"
	} else {
		switch {
		case cost.Sign() <= 0:
			errs["prodCost"] = "Product cost must be greater than 0"
		case cost.Exponent() < -2:
			errs["prodCost"] = "Product cost must have at most 2 decimal places"
		case !cost.LessThan(maxCost):
			errs["prodCost"] = "Product cost must have at most 8 integer digits"
		default:
			req.Cost = cost
		}
	}

	return req, errs
}

// parseDateParam reads an optional ISO-8601 date-time query parameter.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
