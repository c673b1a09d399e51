package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"monagenda.fr/myagenda/internal/dto"
	"monagenda.fr/myagenda/internal/middleware"
	"monagenda.fr/myagenda/internal/service"
	"monagenda.fr/myagenda/pkg/response"
	"monagenda.fr/myagenda/pkg/validator"
)

// commentRateLimit bounds how often one user may post comments.
const commentRateLimit = 10 * time.Second

type HomeworkHandler struct {
	homework    service.HomeworkService
	completions service.CompletionService
	comments    service.CommentService
	redisClient *redis.Client
}

func NewHomeworkHandler(
	homework service.HomeworkService,
	completions service.CompletionService,
	comments service.CommentService,
	redisClient *redis.Client,
) *HomeworkHandler {
	return &HomeworkHandler{
		homework:    homework,
		completions: completions,
		comments:    comments,
		redisClient: redisClient,
	}
}

func (h *HomeworkHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var filter dto.HomeworkFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	items, err := h.homework.List(c.Request.Context(), user, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *HomeworkHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreateHomeworkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	homework, err := h.homework.Create(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": homework})
}

func (h *HomeworkHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	detail, err := h.homework.Get(c.Request.Context(), user, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (h *HomeworkHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	var req dto.UpdateHomeworkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	homework, err := h.homework.Update(c.Request.Context(), user, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": homework})
}

func (h *HomeworkHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	if err := h.homework.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "devoir supprimé"})
}

// ExportICal streams the homework as a downloadable .ics file.
func (h *HomeworkHandler) ExportICal(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	payload, err := h.homework.ExportICal(c.Request.Context(), user, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=event-%s.ics", id))
	c.Data(http.StatusOK, "text/calendar", []byte(payload))
}

func (h *HomeworkHandler) ToggleCompletion(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	completed, err := h.completions.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleCompletionResponse{Success: true, Completed: completed})
}

func (h *HomeworkHandler) CreateComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, user.ID, "comment", commentRateLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "vous commentez trop vite, réessayez dans quelques secondes"})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), user, id, req.Content)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": comment})
}
