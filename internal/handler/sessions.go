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

type SessionsHandler struct{ svc service.SessionService }

func NewSessionsHandler(svc service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

// CheckIn godoc
// @Summary      Check a visitor into a locker
// @Description  Assigns a locker and freezes the business day, time tier and base price at the entry instant.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckInRequest true "Check-in details"
// @Success      201  {object} dto.SessionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sessions [post]
func (h *SessionsHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	staffID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CheckIn(c.Request.Context(), staffID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ChangeOption godoc
// @Summary      Change the pricing option of an open session
// @Description  Adjusts discount / foreign-rate / direct-price before checkout. Frozen entry fields never change.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Session UUID"
// @Param        body body dto.ChangeOptionRequest true "New pricing option"
// @Success      200  {object} dto.SessionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sessions/{id}/option [put]
func (h *SessionsHandler) ChangeOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.ChangeOptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ChangeOption(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckOut godoc
// @Summary      Check a visitor out
// @Description  Settles the base fee under the entry business day and any overstay fee under the checkout business day. Each settlement is an exact cash/card/transfer split.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "Session UUID"
// @Param        body body dto.CheckOutRequest true "Payment splits"
// @Success      200  {object} dto.CheckOutResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sessions/{id}/checkout [post]
func (h *SessionsHandler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.CheckOutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel a session
// @Description  Voids an open session with no settlement. Refused while a rental deposit is unresolved.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sessions/{id} [delete]
func (h *SessionsHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Get returns one session with its live accrual state.
func (h *SessionsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        business_day query string false "Business day YYYY-MM-DD (default: today)"
// @Param        status       query string false "in_use | checked_out | cancelled | all"
// @Param        locker       query int    false "Filter by locker number"
// @Param        page         query int    false "Page (default 1)"
// @Param        limit        query int    false "Records per page (default 50)"
// @Success      200 {object} dto.SessionListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sessions [get]
func (h *SessionsHandler) List(c *gin.Context) {
	var filter dto.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list sessions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
