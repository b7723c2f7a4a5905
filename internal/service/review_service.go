package service

import (
	"Matchpoint/internal/api/dto"
	"Matchpoint/internal/model"
	"Matchpoint/internal/pkg/consts"
	"Matchpoint/internal/pkg/util"
	"Matchpoint/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type ReviewService interface {
	// SubmitReview 落库成功即返回，聚合重算异步进行
	SubmitReview(ctx context.Context, reviewerID uint64, req *dto.ReviewSubmitDTO) (*dto.ReviewDTO, error)
	// ListReviews 按创建时间倒序的游标分页列表
	ListReviews(ctx context.Context, kind int8, targetID uint64, cursor string, pageSize int, includeHidden bool) (*dto.ReviewListDTO, error)
}

type reviewServiceImpl struct {
	reviewRepo repository.ReviewRepo
	userRepo   repository.UserRepo
	gameRepo   repository.GameRepo
	aggRepo    repository.ReputationAggregateRepo
	enqueuer   Enqueuer
}

func NewReviewService(
	reviewRepo repository.ReviewRepo,
	userRepo repository.UserRepo,
	gameRepo repository.GameRepo,
	aggRepo repository.ReputationAggregateRepo,
	enqueuer Enqueuer,
) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		aggRepo:    aggRepo,
		enqueuer:   enqueuer,
	}
}

func (s *reviewServiceImpl) SubmitReview(ctx context.Context, reviewerID uint64, req *dto.ReviewSubmitDTO) (*dto.ReviewDTO, error) {
	// 评分必须是 1~5 的整数，聚合阶段不再做任何兜底
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrRatingInvalid
	}
	if req.Kind != model.ReviewKindGame && req.Kind != model.ReviewKindUser {
		return nil, ErrParamInvalid
	}
	if req.Kind == model.ReviewKindUser && req.TargetID == reviewerID {
		return nil, ErrReviewSelf
	}
	if req.Kind == model.ReviewKindGame && req.GameContextID != 0 {
		return nil, ErrParamInvalid
	}

	if err := s.checkEntities(ctx, reviewerID, req); err != nil {
		return nil, err
	}

	review := &model.Review{
		Kind:          req.Kind,
		ReviewerID:    reviewerID,
		TargetID:      req.TargetID,
		GameContextID: req.GameContextID,
		Rating:        req.Rating,
		Tags:          util.NormalizeTags(req.Tags),
		Comment:       req.Comment,
		Visibility:    model.VisibilityVisible,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrReviewDuplicate
		}
		return nil, err
	}

	// 先落 stale 标记再入队，即使事件丢失也能被兜底扫描捡回
	markStaleAndEnqueue(ctx, s.aggRepo, s.enqueuer, review.TargetEntityKind(), review.TargetID)

	res := &dto.ReviewDTO{}
	if err := copier.Copy(res, review); err != nil {
		return nil, err
	}
	return res, nil
}

// checkEntities 评价人与评价对象都必须在主档中存在
func (s *reviewServiceImpl) checkEntities(ctx context.Context, reviewerID uint64, req *dto.ReviewSubmitDTO) error {
	exists, err := s.userRepo.Exists(ctx, reviewerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrReviewerNotFound
	}

	if req.Kind == model.ReviewKindGame {
		exists, err = s.gameRepo.Exists(ctx, req.TargetID)
	} else {
		exists, err = s.userRepo.Exists(ctx, req.TargetID)
	}
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}

	if req.GameContextID != 0 {
		exists, err = s.gameRepo.Exists(ctx, req.GameContextID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrTargetNotFound
		}
	}
	return nil
}

func (s *reviewServiceImpl) ListReviews(ctx context.Context, kind int8, targetID uint64, cursor string, pageSize int, includeHidden bool) (*dto.ReviewListDTO, error) {
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}

	beforeCreatedAt, beforeID, err := util.DecodeReviewCursor(cursor)
	if err != nil {
		return nil, ErrCursorInvalid
	}

	reviews, err := s.reviewRepo.ListByTarget(ctx, kind, targetID, includeHidden, beforeCreatedAt, beforeID, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(reviews) > pageSize
	if hasMore {
		reviews = reviews[:pageSize]
	}

	res := &dto.ReviewListDTO{
		List:    make([]*dto.ReviewDTO, 0, len(reviews)),
		HasMore: hasMore,
	}
	for _, review := range reviews {
		item := &dto.ReviewDTO{}
		if err := copier.Copy(item, review); err != nil {
			return nil, err
		}
		res.List = append(res.List, item)
	}

	if hasMore {
		last := reviews[len(reviews)-1]
		res.NextCursor = util.EncodeReviewCursor(last.CreatedAt, last.ID)
	}

	return res, nil
}
