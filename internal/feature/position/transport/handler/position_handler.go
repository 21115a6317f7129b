// Package handler provides the HTTP handlers for the position feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"magang_backend/internal/feature/position/domain/entity"
	"magang_backend/internal/feature/position/transport/http/dto"
	"magang_backend/internal/feature/position/usecase"
	"magang_backend/internal/shared/response"
)

// PositionUsecase defines the posting operations the handler depends on.
type PositionUsecase interface {
	List(ctx context.Context, filter usecase.ListFilter) ([]entity.Position, error)
	Get(ctx context.Context, id uint) (*entity.Position, error)
	Create(ctx context.Context, p *entity.Position) error
	Update(ctx context.Context, id uint, update func(*entity.Position)) (*entity.Position, error)
	Delete(ctx context.Context, id uint) error
	ToggleActive(ctx context.Context, id uint) (*entity.Position, error)
}

// PositionHandler handles HTTP requests for internship positions.
type PositionHandler struct {
	positions PositionUsecase
}

// NewPositionHandler creates a new PositionHandler instance.
func NewPositionHandler(positions PositionUsecase) *PositionHandler {
	return &PositionHandler{positions: positions}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// List handles GET /positions. Public; inactive postings are included only
// when all=true is passed (the admin dashboard does).
func (h *PositionHandler) List(c *gin.Context) {
	filter := usecase.ListFilter{
		ActiveOnly:    c.DefaultQuery("all", "false") != "true",
		ApplicantType: c.Query("applicant_type"),
	}
	positions, err := h.positions.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("position list failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load positions"))
		return
	}
	c.JSON(http.StatusOK, response.OK("positions loaded", dto.FromPositions(positions)))
}

// Get handles GET /positions/:id.
func (h *PositionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.positions.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, response.Error("position not found"))
			return
		}
		slog.Error("position lookup failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load position"))
		return
	}
	c.JSON(http.StatusOK, response.OK("position loaded", dto.FromPosition(p)))
}

// Create handles POST /positions (admin).
func (h *PositionHandler) Create(c *gin.Context) {
	var req dto.PositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	p := &entity.Position{IsActive: true}
	req.Apply(p)
	if err := h.positions.Create(c.Request.Context(), p); err != nil {
		slog.Error("position create failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to create position"))
		return
	}
	c.JSON(http.StatusCreated, response.OK("position created", dto.FromPosition(p)))
}

// Update handles PUT /positions/:id (admin).
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PositionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}
	p, err := h.positions.Update(c.Request.Context(), id, func(p *entity.Position) { req.Apply(p) })
	if err != nil {
		if errors.Is(err, usecase.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, response.Error("position not found"))
			return
		}
		slog.Error("position update failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to update position"))
		return
	}
	c.JSON(http.StatusOK, response.OK("position updated", dto.FromPosition(p)))
}

// Delete handles DELETE /positions/:id (admin). Positions holding accepted
// applications cannot be deleted.
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.positions.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPositionNotFound):
			c.JSON(http.StatusNotFound, response.Error("position not found"))
		case errors.Is(err, usecase.ErrPositionHasAccepted):
			c.JSON(http.StatusBadRequest, response.Error("position has accepted applications and cannot be deleted"))
		default:
			slog.Error("position delete failed", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to delete position"))
		}
		return
	}
	c.JSON(http.StatusOK, response.OK("position deleted", nil))
}

// ToggleActive handles PATCH /positions/:id/toggle-active (admin).
func (h *PositionHandler) ToggleActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.positions.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, response.Error("position not found"))
			return
		}
		slog.Error("position toggle failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to toggle position"))
		return
	}
	c.JSON(http.StatusOK, response.OK("position updated", dto.FromPosition(p)))
}
