package fiber

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"brand-analytics-service/internal/analytics/adapters/export"
	"brand-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetSummaryUseCase interface {
	Execute(ctx context.Context, in usecase.GetSummaryInput) (*usecase.SummaryResult, error)
}

type GetLifecycleUseCase interface {
	Execute(ctx context.Context, in usecase.GetLifecycleInput) (*usecase.LifecycleResult, error)
}

type GetMovementUseCase interface {
	Execute(ctx context.Context, in usecase.GetMovementInput) (*usecase.MovementOutput, error)
}

type AnalyticsHandler struct {
	summaryUC   GetSummaryUseCase
	lifecycleUC GetLifecycleUseCase
	movementUC  GetMovementUseCase
}

func NewAnalyticsHandler(summaryUC GetSummaryUseCase, lifecycleUC GetLifecycleUseCase, movementUC GetMovementUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		summaryUC:   summaryUC,
		lifecycleUC: lifecycleUC,
		movementUC:  movementUC,
	}
}

// allowedBrands reads the caller's brand restriction injected by the upstream
// gateway. Empty header means unrestricted.
func allowedBrands(c *fiber.Ctx) []string {
	header := c.Get("X-Allowed-Brands")
	if header == "" {
		return nil
	}
	var out []string
	for _, b := range strings.Split(header, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// mapUseCaseError translates usecase sentinels to envelope failures.
func mapUseCaseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidYear),
		errors.Is(err, usecase.ErrInvalidMonth),
		errors.Is(err, usecase.ErrInvalidPeriod),
		errors.Is(err, usecase.ErrAmbiguousPeriod):
		return fail(c, http.StatusBadRequest, "invalid_period", err.Error())
	case errors.Is(err, usecase.ErrBrandNotAllowed):
		return fail(c, http.StatusForbidden, "brand_not_allowed", err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "internal_server_error", "analytics query failed")
	}
}

// GetSummary godoc
// @Summary Brand/period KPI summary
// @Description Aggregates raw transaction rows into per-user summaries and period KPIs with MoM deltas
// @Tags Analytics
// @Produce json
// @Param year query int true "Year"
// @Param month query string true "Month name or ALL"
// @Param brand query string false "Brand (line)"
// @Param currency query string false "Currency"
// @Param page query int false "Page number"
// @Param page_size query int false "Records per page"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	in := usecase.GetSummaryInput{
		Year:          c.QueryInt("year"),
		Month:         c.Query("month"),
		Brand:         c.Query("brand"),
		Currency:      c.Query("currency"),
		AllowedBrands: allowedBrands(c),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size"),
	}

	res, err := h.summaryUC.Execute(c.UserContext(), in)
	if err != nil {
		return mapUseCaseError(c, err)
	}

	return c.Status(http.StatusOK).JSON(Envelope{
		Success:    true,
		Data:       toSummaryResponse(res),
		Pagination: toPaginationResponse(res.Pagination),
	})
}

// ExportSummary godoc
// @Summary Export the period summary as CSV
// @Tags Analytics
// @Produce text/csv
// @Param year query int true "Year"
// @Param month query string true "Month name or ALL"
// @Param brand query string false "Brand (line)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} Envelope
// @Router /analytics/summary/export [get]
func (h *AnalyticsHandler) ExportSummary(c *fiber.Ctx) error {
	in := usecase.GetSummaryInput{
		Year:          c.QueryInt("year"),
		Month:         c.Query("month"),
		Brand:         c.Query("brand"),
		Currency:      c.Query("currency"),
		AllowedBrands: allowedBrands(c),
		PageSize:      -1, // everything; exports are never paginated
	}

	res, err := h.summaryUC.Execute(c.UserContext(), in)
	if err != nil {
		return mapUseCaseError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="summary.csv"`)
	return export.WriteSummaryCSV(c.Response().BodyWriter(), res)
}

// GetLifecycle godoc
// @Summary Lifecycle classification for a concrete month
// @Description Labels users NEW / RETENTION / REACTIVATION / CHURNED against the previous calendar month
// @Tags Analytics
// @Produce json
// @Param year query int true "Year"
// @Param month query string true "Month name (ALL is rejected)"
// @Param brand query string false "Brand (line)"
// @Param new_depositor_policy query string false "requested | previous"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /analytics/lifecycle [get]
func (h *AnalyticsHandler) GetLifecycle(c *fiber.Ctx) error {
	in := usecase.GetLifecycleInput{
		Year:               c.QueryInt("year"),
		Month:              c.Query("month"),
		Brand:              c.Query("brand"),
		Currency:           c.Query("currency"),
		AllowedBrands:      allowedBrands(c),
		NewDepositorPolicy: c.Query("new_depositor_policy"),
	}

	res, err := h.lifecycleUC.Execute(c.UserContext(), in)
	if err != nil {
		return mapUseCaseError(c, err)
	}

	return c.Status(http.StatusOK).JSON(Envelope{
		Success: true,
		Data:    toLifecycleResponse(res),
	})
}

// ExportLifecycle godoc
// @Summary Export churned users as CSV
// @Tags Analytics
// @Produce text/csv
// @Param year query int true "Year"
// @Param month query string true "Month name (ALL is rejected)"
// @Param brand query string false "Brand (line)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} Envelope
// @Router /analytics/lifecycle/export [get]
func (h *AnalyticsHandler) ExportLifecycle(c *fiber.Ctx) error {
	in := usecase.GetLifecycleInput{
		Year:               c.QueryInt("year"),
		Month:              c.Query("month"),
		Brand:              c.Query("brand"),
		Currency:           c.Query("currency"),
		AllowedBrands:      allowedBrands(c),
		NewDepositorPolicy: c.Query("new_depositor_policy"),
	}

	res, err := h.lifecycleUC.Execute(c.UserContext(), in)
	if err != nil {
		return mapUseCaseError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="churn.csv"`)
	return export.WriteLifecycleCSV(c.Response().BodyWriter(), res)
}

// GetMovement godoc
// @Summary Tier movement between two periods
// @Description Diffs per-user tier assignments from period A to period B and builds the transition matrix
// @Tags Analytics
// @Produce json
// @Param from_year query int false "Period A year"
// @Param from_month query string false "Period A month name or ALL"
// @Param from_start query string false "Period A start date (YYYY-MM-DD)"
// @Param from_end query string false "Period A end date (YYYY-MM-DD)"
// @Param to_year query int false "Period B year"
// @Param to_month query string false "Period B month name or ALL"
// @Param to_start query string false "Period B start date (YYYY-MM-DD)"
// @Param to_end query string false "Period B end date (YYYY-MM-DD)"
// @Param brand query string false "Brand (line)"
// @Param page query int false "Page number"
// @Param page_size query int false "Records per page"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /analytics/movement [get]
func (h *AnalyticsHandler) GetMovement(c *fiber.Ctx) error {
	in := usecase.GetMovementInput{
		From: usecase.PeriodRef{
			Year:      c.QueryInt("from_year"),
			Month:     c.Query("from_month"),
			StartDate: c.Query("from_start"),
			EndDate:   c.Query("from_end"),
		},
		To: usecase.PeriodRef{
			Year:      c.QueryInt("to_year"),
			Month:     c.Query("to_month"),
			StartDate: c.Query("to_start"),
			EndDate:   c.Query("to_end"),
		},
		Brand:         c.Query("brand"),
		Currency:      c.Query("currency"),
		AllowedBrands: allowedBrands(c),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("page_size"),
	}

	res, err := h.movementUC.Execute(c.UserContext(), in)
	if err != nil {
		return mapUseCaseError(c, err)
	}

	return c.Status(http.StatusOK).JSON(Envelope{
		Success:    true,
		Data:       toMovementResponse(res),
		Pagination: toPaginationResponse(res.Pagination),
	})
}
