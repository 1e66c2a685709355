package progress

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/dto"
	"github.com/GlebRadaev/coursepay/pkg/auth"
	"github.com/GlebRadaev/coursepay/pkg/utils"
)

//go:generate mockgen -source=progress.go -destination=mock_progress.go -package=progress

type Service interface {
	ComputeProgress(ctx context.Context, userID string) (*domain.Progress, error)
}

type ProgressHandler struct {
	progressService Service
}

func New(progressService Service) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// GetProgress godoc
//
//	@Summary		Get learning progress
//	@Description	Per-course and overall completion for the user. Users may read only their own progress; service tokens may read any.
//	@Tags			Progress
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userID	path		string					true	"User id"
//	@Success		200		{object}	dto.ProgressResponseDTO	"Progress"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	utils.Response			"Forbidden"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/users/{userID}/progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID := chi.URLParam(r, "userID")
	if claims.UserID != userID && claims.Role != auth.RoleService {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	progress, err := h.progressService.ComputeProgress(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.ProgressResponseDTO{
		PerCourse:      make([]dto.CourseProgressDTO, 0, len(progress.PerCourse)),
		OverallPercent: progress.OverallPercent,
	}
	for _, cp := range progress.PerCourse {
		resp.PerCourse = append(resp.PerCourse, dto.CourseProgressDTO{
			CourseID:  cp.CourseID,
			Completed: cp.Completed,
			Total:     cp.Total,
			Percent:   cp.Percent,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
