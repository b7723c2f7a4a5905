package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ModerationAuditRepo interface {
	Append(ctx context.Context, audit *ModerationAudit) error
	ListByReview(ctx context.Context, reviewID uint64, limit int) ([]*ModerationAudit, error)
}

type moderationAuditRepoImpl struct {
	col *mongo.Collection
}

func NewModerationAuditRepo(db *mongo.Database) ModerationAuditRepo {
	return &moderationAuditRepoImpl{
		col: db.Collection("moderation_audit"),
	}
}

// Append 追加一条审核流水
func (s *moderationAuditRepoImpl) Append(ctx context.Context, audit *ModerationAudit) error {
	_, err := s.col.InsertOne(ctx, audit)
	return err
}

// ListByReview 按时间倒序返回某条评价的审核流水
func (s *moderationAuditRepoImpl) ListByReview(ctx context.Context, reviewID uint64, limit int) ([]*ModerationAudit, error) {
	filter := bson.M{"review_id": reviewID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var audits []*ModerationAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}

	return audits, nil
}
