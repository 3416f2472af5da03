package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartiq-backend/internal/usecase/exam"
	"smartiq-backend/pkg/utils"
)

type ExamHandler struct {
	service *exam.Service
}

func NewExamHandler(service *exam.Service) *ExamHandler {
	return &ExamHandler{service: service}
}

func (h *ExamHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/exam-categories")
	{
		categories.GET("", h.GetAll)
		categories.GET("/search", h.Search)
		categories.GET("/:category_id", h.GetByID)
	}
}

func (h *ExamHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	categories := router.Group("/exam-categories")
	{
		categories.POST("", h.Create)
		categories.PUT("/:category_id", h.Update)
		categories.DELETE("/:category_id", h.Delete)
	}
}

func (h *ExamHandler) GetAll(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exam categories retrieved successfully", categories)
}

func (h *ExamHandler) GetByID(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("category_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exam category retrieved successfully", category)
}

func (h *ExamHandler) Search(c *gin.Context) {
	var req exam.SearchRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid search parameters")
		return
	}

	req.Query = utils.SanitizeString(req.Query)

	categories, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Search completed successfully", categories)
}

func (h *ExamHandler) Create(c *gin.Context) {
	var req exam.CategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Exam category created successfully", category)
}

func (h *ExamHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("category_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req exam.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.Update(c.Request.Context(), categoryID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exam category updated successfully", category)
}

func (h *ExamHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("category_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Exam category deleted successfully", nil)
}
