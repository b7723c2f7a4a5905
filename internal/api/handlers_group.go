package api

import "Matchpoint/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ReviewHandler     *handler.ReviewHandler
	ModerationHandler *handler.ModerationHandler
	ReputationHandler *handler.ReputationHandler
}
