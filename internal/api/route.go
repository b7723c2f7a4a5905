package api

import (
	"Matchpoint/internal/api/middleware"
	"Matchpoint/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		reputationGroup := apiGroup.Group("/reputation")
		{
			// 查询接口无需登录
			reputationGroup.GET("/games/:game_id", group.ReputationHandler.GetGameRating)
			reputationGroup.GET("/users/:user_id", group.ReputationHandler.GetUserReputation)
		}

		reviewGroup := apiGroup.Group("/reviews")
		{
			reviewGroup.GET("/games/:game_id", group.ReviewHandler.ListGameReviews)
			reviewGroup.GET("/users/:user_id", group.ReviewHandler.ListUserReviews)

			authGroup := reviewGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ReviewHandler.SubmitReview)
				authGroup.POST("/:review_id/flags", group.ModerationHandler.FlagReview)
			}
		}

		// 需要登录 & 拥有审核角色
		moderationGroup := apiGroup.Group("/moderation")
		moderationGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("AUDIT", "ADMIN"))
		{
			moderationGroup.GET("/reviews", group.ReviewHandler.ListReviewsForModeration)
			moderationGroup.PUT("/reviews/:review_id/restore", group.ModerationHandler.RestoreReview)
			moderationGroup.GET("/reviews/:review_id/audits", group.ModerationHandler.GetAuditTrail)
		}
	}

	return r
}
