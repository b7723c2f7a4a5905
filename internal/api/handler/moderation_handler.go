package handler

import (
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/pkg/response"
	"Matchpoint/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationSvc service.ModerationService
}

func NewModerationHandler(moderationSvc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
	}
}

// FlagReview 举报一条评价
func (s *ModerationHandler) FlagReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.FlagSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.moderationSvc.FlagReview(c.Request.Context(), c.GetUint64("user_id"), reviewID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// RestoreReview 管理员恢复被隐藏的评价
func (s *ModerationHandler) RestoreReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.moderationSvc.RestoreReview(c.Request.Context(), c.GetUint64("user_id"), reviewID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetAuditTrail 查询某条评价的审核流水
func (s *ModerationHandler) GetAuditTrail(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	audits, err := s.moderationSvc.GetAuditTrail(c.Request.Context(), reviewID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audits)
}
