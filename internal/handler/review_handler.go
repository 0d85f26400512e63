package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/volcano/internal/middleware"
	"github.com/xxxsen/volcano/internal/pkg/response"
	"github.com/xxxsen/volcano/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	body := decodeBody(c)
	input := service.ReviewInput{Rating: body["rating"], Comment: body["comment"]}
	if err := h.reviews.Create(c.Request.Context(), middleware.IdentityFrom(c), c.Param("volcanoID"), input); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, "Review successfully added")
}

func (h *ReviewHandler) List(c *gin.Context) {
	items, err := h.reviews.List(c.Request.Context(), c.Param("volcanoID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ReviewHandler) Average(c *gin.Context) {
	summary, err := h.reviews.Average(c.Request.Context(), c.Param("volcanoID"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}
