package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"safaruz/internal/model"
	"safaruz/internal/service"
)

type reviewRequest struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Type     string `json:"type" binding:"required"`
	TargetID int    `json:"target_id" binding:"required"`
}

// CreateReview обработчик для POST /reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите rating, type и target_id")
		return
	}
	review, err := h.Reviews.Create(c.Request.Context(), principal(c).ID, service.ReviewInput{
		Rating:   req.Rating,
		Comment:  req.Comment,
		Type:     model.ReviewTarget(req.Type),
		TargetID: req.TargetID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Отзыв добавлен", "review": review})
}

// ListReviews обработчик для GET /reviews?type=&id=.
func (h *Handler) ListReviews(c *gin.Context) {
	typ := c.Query("type")
	id, err := strconv.Atoi(c.Query("id"))
	if typ == "" || err != nil || id <= 0 {
		badRequest(c, "Укажите параметры type и id")
		return
	}
	reviews, err := h.Reviews.List(c.Request.Context(), model.ReviewTarget(typ), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
