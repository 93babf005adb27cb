package handler

import (
	"net/http"

	"saunapos/internal/apierror"
	"saunapos/internal/dto"
	"saunapos/internal/middleware"
	"saunapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClosingHandler struct{ svc service.ClosingService }

func NewClosingHandler(svc service.ClosingService) *ClosingHandler {
	return &ClosingHandler{svc: svc}
}

// CloseDay godoc
// @Summary      Close a business day (blind reconciliation)
// @Description  Compares the staff-declared drawer counts against expected totals, classifies the deviation and locks the day. A critical deviation requires notes. Dispatches the PDF + email report job.
// @Tags         closing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CloseDayRequest true "Declared counts"
// @Success      201  {object} dto.ClosingResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/closing [post]
func (h *ClosingHandler) CloseDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	staffID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CloseDay(c.Request.Context(), staffID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetClosing godoc
// @Summary      Get the closing report for a business day
// @Tags         closing
// @Produce      json
// @Security     BearerAuth
// @Param        date path string true "Business day YYYY-MM-DD"
// @Success      200 {object} dto.ClosingResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/closing/{date} [get]
func (h *ClosingHandler) GetClosing(c *gin.Context) {
	resp, err := h.svc.GetClosing(c.Request.Context(), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
