package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// paramError is a rejected request parameter
type paramError struct {
	field   string
	detail  string
	message string
}

func (e *paramError) Error() string {
	return e.detail
}

func (e *paramError) respond(c echo.Context) error {
	return NewValidationError(c, e.detail, []ValidationError{{Field: e.field, Message: e.message}})
}

func parseIDParam(c echo.Context, name, what string) (int64, *paramError) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &paramError{field: name, detail: "Invalid " + what + " ID", message: "Must be a positive integer"}
	}
	return id, nil
}

// parseWindow reads the optional window query parameter
func parseWindow(c echo.Context, defaultWindow int) (int, *paramError) {
	raw := c.QueryParam("window")
	if raw == "" {
		return defaultWindow, nil
	}
	window, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: "window", detail: "Invalid window format", message: "Must be a valid integer"}
	}
	if window < 1 || window > domain.MaxWindowSize {
		msg := fmt.Sprintf("Must be between 1 and %d", domain.MaxWindowSize)
		return 0, &paramError{field: "window", detail: "Window out of range", message: msg}
	}
	return window, nil
}

func parseTaxFlag(c echo.Context) (bool, *paramError) {
	raw := c.QueryParam("tax")
	if raw == "" {
		return false, nil
	}
	withTax, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{field: "tax", detail: "Invalid tax flag", message: "Must be true or false"}
	}
	return withTax, nil
}

func parseTags(c echo.Context) []string {
	var tags []string
	for _, tag := range strings.Split(c.QueryParam("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseYearMonth reads the :year and :month path parameters. Months are 1-12 on
// the wire and returned zero-based.
func parseYearMonth(c echo.Context) (int, int, *paramError) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, &paramError{field: "year", detail: "Invalid year format", message: "Must be a valid integer"}
	}
	if year < domain.MinYear || year > domain.MaxYear {
		return 0, 0, &paramError{field: "year", detail: "Year must be between 2000 and 2100", message: "Must be between 2000 and 2100"}
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, &paramError{field: "month", detail: "Invalid month format", message: "Must be a valid integer"}
	}
	if month < 1 || month > 12 {
		return 0, 0, &paramError{field: "month", detail: "Month must be between 1 and 12", message: "Must be between 1 and 12"}
	}
	return year, month - 1, nil
}
