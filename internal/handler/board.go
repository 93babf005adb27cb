package handler

import (
	"net/http"

	"saunapos/internal/apierror"
	"saunapos/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct{ svc service.BoardService }

func NewBoardHandler(svc service.BoardService) *BoardHandler { return &BoardHandler{svc: svc} }

// Board godoc
// @Summary      Live locker board
// @Description  Per-locker color state (empty / day / night / carryover / overstay) and accrual badge, recomputed from source timestamps at each call. Snapshot is cached briefly in Redis.
// @Tags         board
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.BoardResponse
// @Failure      500 {object} apierror.APIError
// @Router       /v1/board [get]
func (h *BoardHandler) Board(c *gin.Context) {
	resp, err := h.svc.Board(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not build board"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
