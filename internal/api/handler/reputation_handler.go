package handler

import (
	"Matchpoint/internal/pkg/response"
	"Matchpoint/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReputationHandler struct {
	reputationSvc service.ReputationService
}

func NewReputationHandler(reputationSvc service.ReputationService) *ReputationHandler {
	return &ReputationHandler{
		reputationSvc: reputationSvc,
	}
}

// GetGameRating 查询游戏的平滑评分
func (s *ReputationHandler) GetGameRating(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil || gameID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reputationSvc.GetGameRating(c.Request.Context(), gameID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetUserReputation 查询用户的综合声誉
func (s *ReputationHandler) GetUserReputation(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reputationSvc.GetUserReputation(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
