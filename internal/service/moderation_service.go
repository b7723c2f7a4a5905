package service

import (
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/mongo"
	"Matchpoint/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type ModerationService interface {
	// FlagReview 记录举报并累加计数，达到阈值时隐藏评价并触发聚合重算
	FlagReview(ctx context.Context, flaggerID, reviewID uint64, reason string) (*dto.FlagResultDTO, error)
	// RestoreReview 管理员恢复被隐藏的评价，自动隐藏路径不会调用它
	RestoreReview(ctx context.Context, operatorID, reviewID uint64) error
	GetAuditTrail(ctx context.Context, reviewID uint64, limit int) ([]*dto.ModerationAuditDTO, error)
}

type moderationServiceImpl struct {
	reviewRepo repository.ReviewRepo
	flagRepo   repository.ReviewFlagRepo
	userRepo   repository.UserRepo
	aggRepo    repository.ReputationAggregateRepo
	auditRepo  mongo.ModerationAuditRepo
	enqueuer   Enqueuer
	threshold  int
}

func NewModerationService(
	reviewRepo repository.ReviewRepo,
	flagRepo repository.ReviewFlagRepo,
	userRepo repository.UserRepo,
	aggRepo repository.ReputationAggregateRepo,
	auditRepo mongo.ModerationAuditRepo,
	enqueuer Enqueuer,
	threshold int,
) ModerationService {
	if threshold <= 0 {
		threshold = 3
	}
	return &moderationServiceImpl{
		reviewRepo: reviewRepo,
		flagRepo:   flagRepo,
		userRepo:   userRepo,
		aggRepo:    aggRepo,
		auditRepo:  auditRepo,
		enqueuer:   enqueuer,
		threshold:  threshold,
	}
}

func (s *moderationServiceImpl) FlagReview(ctx context.Context, flaggerID, reviewID uint64, reason string) (*dto.FlagResultDTO, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	exists, err := s.userRepo.Exists(ctx, flaggerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReviewerNotFound
	}

	flag := &model.ReviewFlag{
		ReviewID:  reviewID,
		FlaggerID: flaggerID,
		Reason:    reason,
		CreatedAt: time.Now(),
	}

	// 已隐藏的评价仍然接受举报留档，只是不会再发生状态变化
	newCount, hidden, err := s.flagRepo.AppendFlag(ctx, flag, s.threshold)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrFlagDuplicate
		}
		return nil, err
	}

	s.appendAudit(ctx, reviewID, flaggerID, mongo.AuditActionFlag, reason, newCount)

	if hidden {
		s.appendAudit(ctx, reviewID, 0, mongo.AuditActionHide, "", newCount)
		markStaleAndEnqueue(ctx, s.aggRepo, s.enqueuer, review.TargetEntityKind(), review.TargetID)
	}

	return &dto.FlagResultDTO{
		ReviewID:  reviewID,
		FlagCount: newCount,
		Hidden:    hidden,
	}, nil
}

func (s *moderationServiceImpl) RestoreReview(ctx context.Context, operatorID, reviewID uint64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.Visibility != model.VisibilityHidden {
		return ErrReviewNotHidden
	}

	if err := s.reviewRepo.UpdateVisibility(ctx, reviewID, model.VisibilityVisible); err != nil {
		return err
	}

	s.appendAudit(ctx, reviewID, operatorID, mongo.AuditActionRestore, "", review.FlagCount)

	markStaleAndEnqueue(ctx, s.aggRepo, s.enqueuer, review.TargetEntityKind(), review.TargetID)
	return nil
}

func (s *moderationServiceImpl) GetAuditTrail(ctx context.Context, reviewID uint64, limit int) ([]*dto.ModerationAuditDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	audits, err := s.auditRepo.ListByReview(ctx, reviewID, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ModerationAuditDTO, 0, len(audits))
	for _, audit := range audits {
		item := &dto.ModerationAuditDTO{}
		if err := copier.Copy(item, audit); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// appendAudit 审计流水尽力写入，失败只记日志不影响主流程
func (s *moderationServiceImpl) appendAudit(ctx context.Context, reviewID, operatorID uint64, action, reason string, flagCount int) {
	audit := &mongo.ModerationAudit{
		ReviewID:   reviewID,
		OperatorID: operatorID,
		Action:     action,
		Reason:     reason,
		FlagCount:  flagCount,
		CreatedAt:  time.Now(),
	}
	if err := s.auditRepo.Append(ctx, audit); err != nil {
		log.ErrorContext(ctx, "append moderation audit error", "reviewID", reviewID, "action", action, "err", err)
	}
}
