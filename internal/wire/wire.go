package wire

import (
	"Matchpoint/internal/api"
	"Matchpoint/internal/api/config"
	"Matchpoint/internal/api/handler"
	"Matchpoint/internal/job"
	cronpkg "Matchpoint/internal/pkg/cron"
	"Matchpoint/internal/pkg/kafka"
	pkgmongo "Matchpoint/internal/pkg/mongo"
	"Matchpoint/internal/pkg/signals"
	"Matchpoint/internal/repository"
	"Matchpoint/internal/scheduler"
	"Matchpoint/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Scheduler    *scheduler.Scheduler
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cronpkg.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	reviewRepo := repository.NewReviewRepo(db)
	flagRepo := repository.NewReviewFlagRepo(db)
	aggRepo := repository.NewReputationAggregateRepo(db)
	userRepo := repository.NewUserRepo(db)
	gameRepo := repository.NewGameRepo(db)
	auditRepo := pkgmongo.NewModerationAuditRepo(mongoDB)

	signalProvider := signals.NewProvider(cfg.Signals)

	// 权重或平滑常数配置非法时这里失败，进程拒绝启动
	reputationService, err := service.NewReputationService(reviewRepo, aggRepo, signalProvider, cfg.Reputation)
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(
		cfg.Scheduler.Workers,
		cfg.Scheduler.QueueSize,
		time.Duration(cfg.Scheduler.RecomputeTimeout)*time.Second,
		reputationService.Recompute,
	)

	reviewService := service.NewReviewService(reviewRepo, userRepo, gameRepo, aggRepo, sched)
	moderationService := service.NewModerationService(
		reviewRepo, flagRepo, userRepo, aggRepo, auditRepo, sched, cfg.Moderation.FlagThreshold)

	handlers := &api.HandlersGroup{
		ReviewHandler:     handler.NewReviewHandler(reviewService),
		ModerationHandler: handler.NewModerationHandler(moderationService),
		ReputationHandler: handler.NewReputationHandler(reputationService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, aggRepo, signalProvider, sched)
	if err != nil {
		return nil, err
	}

	sweepJob := job.NewStaleSweepJob(aggRepo, sched)
	cronMgr := cronpkg.NewCronManager(sweepJob, cfg.Scheduler.SweepCron)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Scheduler:    sched,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
