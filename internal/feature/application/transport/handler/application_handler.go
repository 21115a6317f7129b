// Package handler provides the HTTP handlers for the application feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"magang_backend/internal/feature/application/domain/entity"
	"magang_backend/internal/feature/application/transport/http/dto"
	"magang_backend/internal/feature/application/usecase"
	jwtmw "magang_backend/internal/platform/jwt"
	"magang_backend/internal/platform/storage"
	"magang_backend/internal/shared/response"
)

// ApplicationUsecase defines the workflow operations the handler depends on.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type ApplicationUsecase interface {
	Submit(ctx context.Context, ownerID uint, in usecase.SubmitInput, staged []*storage.StagedFile) (*entity.Application, error)
	List(ctx context.Context, filter usecase.ListFilter) ([]entity.Application, error)
	Get(ctx context.Context, id uint) (*entity.Application, error)
	Delete(ctx context.Context, id, callerID uint, isAdmin bool) error
	SetStatus(ctx context.Context, id uint, status entity.Status, notes string, staffID uint) (*entity.Application, error)
	Stats(ctx context.Context) (*usecase.Stats, error)
	DocumentPath(ctx context.Context, relPath string, callerID uint, isAdmin bool) (string, error)
}

// Stager parks uploads in the temporary area before the application row
// exists.
type Stager interface {
	Stage(kind, filename, declaredMIME string, size int64, r io.Reader) (*storage.StagedFile, error)
	Discard(staged []*storage.StagedFile)
}

// ApplicationHandler handles HTTP requests for internship applications.
type ApplicationHandler struct {
	apps   ApplicationUsecase
	stager Stager
}

// NewApplicationHandler creates a new ApplicationHandler instance.
func NewApplicationHandler(apps ApplicationUsecase, stager Stager) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, stager: stager}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// stageUploads pulls the document parts out of the multipart form and parks
// each in the temporary area. On any failure everything staged so far is
// discarded.
func (h *ApplicationHandler) stageUploads(c *gin.Context) ([]*storage.StagedFile, []response.FieldError) {
	kinds := append(append([]string{}, entity.RequiredDocs...), entity.DocReferralLetter)

	var staged []*storage.StagedFile
	for _, kind := range kinds {
		fh, err := c.FormFile(kind)
		if err != nil {
			if kind == entity.DocReferralLetter {
				continue // optional
			}
			h.stager.Discard(staged)
			return nil, []response.FieldError{{Field: kind, Message: "this document is required"}}
		}

		f, err := fh.Open()
		if err != nil {
			h.stager.Discard(staged)
			return nil, []response.FieldError{{Field: kind, Message: "unreadable upload"}}
		}
		sf, err := h.stager.Stage(kind, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
		f.Close()
		if err != nil {
			h.stager.Discard(staged)
			switch {
			case errors.Is(err, storage.ErrInvalidFileType):
				return nil, []response.FieldError{{Field: kind, Message: "file type not allowed"}}
			case errors.Is(err, storage.ErrFileTooLarge):
				return nil, []response.FieldError{{Field: kind, Message: "file exceeds the maximum size"}}
			default:
				slog.Error("file staging failed", "kind", kind, "error", err)
				return nil, []response.FieldError{{Field: kind, Message: "failed to store upload"}}
			}
		}
		staged = append(staged, sf)
	}
	return staged, nil
}

// Submit handles POST /applications (multipart/form-data).
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}

	staged, fieldErrs := h.stageUploads(c)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", fieldErrs))
		return
	}

	ownerID := c.GetUint(jwtmw.ContextUserID)
	app, err := h.apps.Submit(c.Request.Context(), ownerID, req.ToInput(), staged)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPositionNotFound):
			c.JSON(http.StatusNotFound, response.Error("position not found"))
		case errors.Is(err, usecase.ErrPositionInactive):
			c.JSON(http.StatusBadRequest, response.Error("position is not accepting applications"))
		case errors.Is(err, usecase.ErrTypeNotAllowed):
			c.JSON(http.StatusBadRequest, response.Error("position is not open to this applicant type"))
		case errors.Is(err, usecase.ErrQuotaFull):
			c.JSON(http.StatusBadRequest, response.Error("position quota is full"))
		case errors.Is(err, usecase.ErrSlotLimitReached):
			c.JSON(http.StatusBadRequest, response.Error("you already have the maximum number of active applications"))
		case errors.Is(err, usecase.ErrInvalidApplicantType),
			errors.Is(err, usecase.ErrInvalidNIK),
			errors.Is(err, usecase.ErrInvalidDateRange),
			errors.Is(err, usecase.ErrMissingDocument):
			c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		default:
			slog.Error("application submit failed", "user_id", ownerID, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to create application"))
		}
		return
	}

	slog.Info("application submitted",
		"application_id", app.ID,
		"registration_number", app.RegistrationNumber,
		"user_id", ownerID)
	c.JSON(http.StatusCreated, response.OK("application submitted", dto.FromApplication(app)))
}

// List handles GET /applications. Users see their own records; admins see
// everything, optionally filtered.
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := usecase.ListFilter{
		Status:        entity.Status(c.Query("status")),
		ApplicantType: entity.ApplicantType(c.Query("applicant_type")),
	}
	if pid, err := strconv.ParseUint(c.Query("position_id"), 10, 32); err == nil {
		filter.PositionID = uint(pid)
	}
	if !jwtmw.IsAdmin(c) {
		filter.UserID = c.GetUint(jwtmw.ContextUserID)
	}

	apps, err := h.apps.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("application list failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load applications"))
		return
	}
	c.JSON(http.StatusOK, response.OK("applications loaded", dto.FromApplications(apps)))
}

// Get handles GET /applications/:id (owner or admin).
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := h.apps.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.Error("application not found"))
			return
		}
		slog.Error("application lookup failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load application"))
		return
	}
	if !jwtmw.IsAdmin(c) && app.UserID != c.GetUint(jwtmw.ContextUserID) {
		c.JSON(http.StatusForbidden, response.Error("not allowed"))
		return
	}
	c.JSON(http.StatusOK, response.OK("application loaded", dto.FromApplication(app)))
}

// Delete handles DELETE /applications/:id. Owners may delete only while
// pending; admins at any status. The file folder goes with the row.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	callerID := c.GetUint(jwtmw.ContextUserID)
	if err := h.apps.Delete(c.Request.Context(), id, callerID, jwtmw.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.Error("application not found"))
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Error("not allowed"))
		case errors.Is(err, usecase.ErrNotPending):
			c.JSON(http.StatusBadRequest, response.Error("only pending applications can be deleted"))
		default:
			slog.Error("application delete failed", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to delete application"))
		}
		return
	}
	c.JSON(http.StatusOK, response.OK("application deleted", nil))
}

// SetStatus handles PUT /applications/:id/status (admin).
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid("validation failed", response.BindingErrors(err)))
		return
	}

	staffID := c.GetUint(jwtmw.ContextUserID)
	app, err := h.apps.SetStatus(c.Request.Context(), id, entity.Status(req.Status), req.Notes, staffID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.Error("application not found"))
		case errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, response.Error("invalid status"))
		default:
			slog.Error("status update failed", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to update status"))
		}
		return
	}

	slog.Info("application status updated", "id", id, "status", req.Status, "reviewer_id", staffID)
	c.JSON(http.StatusOK, response.OK("status updated", dto.FromApplication(app)))
}

// Stats handles GET /applications/stats (admin).
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.apps.Stats(c.Request.Context())
	if err != nil {
		slog.Error("stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.Error("failed to load statistics"))
		return
	}
	c.JSON(http.StatusOK, response.OK("statistics loaded", dto.FromStats(stats)))
}

// Download handles GET /uploads/*filepath (owner or admin). Paths resolving
// outside the uploads root are rejected.
func (h *ApplicationHandler) Download(c *gin.Context) {
	rel := c.Param("filepath")
	callerID := c.GetUint(jwtmw.ContextUserID)

	abs, err := h.apps.DocumentPath(c.Request.Context(), rel, callerID, jwtmw.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.Error("file not found"))
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, response.Error("not allowed"))
		default:
			slog.Error("document resolve failed", "path", rel, "error", err)
			c.JSON(http.StatusInternalServerError, response.Error("failed to load file"))
		}
		return
	}
	c.File(abs)
}
