package handler

import (
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/consts"
	"Matchpoint/internal/pkg/response"
	"Matchpoint/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc: reviewSvc,
	}
}

// SubmitReview 提交一条评价
func (s *ReviewHandler) SubmitReview(c *gin.Context) {
	reviewerID := c.GetUint64("user_id")

	var req dto.ReviewSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	review, err := s.reviewSvc.SubmitReview(c.Request.Context(), reviewerID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, review)
}

// ListGameReviews 游戏评价列表（仅可见）
func (s *ReviewHandler) ListGameReviews(c *gin.Context) {
	s.listReviews(c, model.ReviewKindGame, "game_id", false)
}

// ListUserReviews 用户评价列表（仅可见）
func (s *ReviewHandler) ListUserReviews(c *gin.Context) {
	s.listReviews(c, model.ReviewKindUser, "user_id", false)
}

// ListReviewsForModeration 审核视角的评价列表，包含被隐藏的评价
func (s *ReviewHandler) ListReviewsForModeration(c *gin.Context) {
	kind, err := strconv.ParseInt(c.Query("kind"), 10, 8)
	if err != nil || (int8(kind) != model.ReviewKindGame && int8(kind) != model.ReviewKindUser) {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	targetID, err := strconv.ParseUint(c.Query("target_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reviewSvc.ListReviews(c.Request.Context(), int8(kind), targetID,
		c.Query("cursor"), parsePageSize(c), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ReviewHandler) listReviews(c *gin.Context, kind int8, paramName string, includeHidden bool) {
	targetID, err := strconv.ParseUint(c.Param(paramName), 10, 64)
	if err != nil || targetID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reviewSvc.ListReviews(c.Request.Context(), kind, targetID,
		c.Query("cursor"), parsePageSize(c), includeHidden)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func parsePageSize(c *gin.Context) int {
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return pageSize
}
