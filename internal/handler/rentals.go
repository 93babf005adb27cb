package handler

import (
	"net/http"

	"saunapos/internal/apierror"
	"saunapos/internal/dto"
	"saunapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalsHandler struct{ svc service.RentalService }

func NewRentalsHandler(svc service.RentalService) *RentalsHandler {
	return &RentalsHandler{svc: svc}
}

// Attach godoc
// @Summary      Attach a rental to an open session
// @Description  Charges the rental fee plus deposit immediately; the deposit stays held until the item comes back.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Session UUID"
// @Param        body body dto.AttachRentalRequest true "Rental details"
// @Success      201  {object} dto.RentalResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sessions/{id}/rentals [post]
func (h *RentalsHandler) Attach(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AttachRentalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Attach(c.Request.Context(), sessionID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Settle godoc
// @Summary      Settle a rental return
// @Description  Marks the item returned and disposes the deposit: refunded on a clean return, forfeited otherwise.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Rental UUID"
// @Param        body body dto.SettleRentalRequest true "Deposit disposition"
// @Success      200  {object} dto.RentalResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/rentals/{id}/settle [post]
func (h *RentalsHandler) Settle(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SettleRentalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Settle(c.Request.Context(), rentalID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListBySession returns every rental attached to one session.
func (h *RentalsHandler) ListBySession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list rentals"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
