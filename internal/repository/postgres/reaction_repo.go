package postgres

import (
	"context"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func counterColumn(t domain.ReactionType) string {
	if t == domain.ReactionDislike {
		return "amount_dislike"
	}
	return "amount_like"
}

type reactionDetailRow struct {
	ID        uuid.UUID
	Type      domain.ReactionType
	CreatedAt time.Time
	UserID    uuid.UUID
	UserName  string
}

func reactionDetails(rows []reactionDetailRow) []*domain.ReactionDetail {
	details := make([]*domain.ReactionDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, &domain.ReactionDetail{
			ID:        row.ID,
			Type:      row.Type,
			CreatedAt: row.CreatedAt,
			User:      domain.ReactionUser{ID: row.UserID, UserName: row.UserName},
		})
	}
	return details
}

type postReactionRepository struct {
	db *gorm.DB
}

func NewPostReactionRepository(db *gorm.DB) *postReactionRepository {
	return &postReactionRepository{db: db}
}

func (r *postReactionRepository) Get(ctx context.Context, userID, postID uuid.UUID) (*domain.Reaction, error) {
	var pr domain.PostReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&pr).Error
	if err != nil {
		return nil, err
	}
	return &domain.Reaction{
		ID:        pr.ID,
		UserID:    pr.UserID,
		TargetID:  pr.PostID,
		Type:      pr.Type,
		CreatedAt: pr.CreatedAt,
	}, nil
}

// AllByTarget lists the post's reactions together with who made them.
func (r *postReactionRepository) AllByTarget(ctx context.Context, postID uuid.UUID) ([]*domain.ReactionDetail, error) {
	var rows []reactionDetailRow
	err := r.db.WithContext(ctx).
		Table("post_reactions").
		Select("post_reactions.id, post_reactions.type, post_reactions.created_at, users.id AS user_id, users.user_name").
		Joins("JOIN users ON users.id = post_reactions.user_id").
		Where("post_reactions.post_id = ?", postID).
		Order("post_reactions.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return reactionDetails(rows), nil
}

// Create inserts the reaction row and bumps the post counter in one
// transaction so a failed insert never moves the aggregate.
func (r *postReactionRepository) Create(ctx context.Context, reaction *domain.Reaction) error {
	column := counterColumn(reaction.Type)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pr := domain.PostReaction{
			ID:     reaction.ID,
			UserID: reaction.UserID,
			PostID: reaction.TargetID,
			Type:   reaction.Type,
		}
		if err := tx.Create(&pr).Error; err != nil {
			return err
		}
		reaction.CreatedAt = pr.CreatedAt
		return tx.Model(&domain.Post{}).
			Where("id = ?", reaction.TargetID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}

type commentReactionRepository struct {
	db *gorm.DB
}

func NewCommentReactionRepository(db *gorm.DB) *commentReactionRepository {
	return &commentReactionRepository{db: db}
}

func (r *commentReactionRepository) Get(ctx context.Context, userID, commentID uuid.UUID) (*domain.Reaction, error) {
	var cr domain.CommentReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&cr).Error
	if err != nil {
		return nil, err
	}
	return &domain.Reaction{
		ID:        cr.ID,
		UserID:    cr.UserID,
		TargetID:  cr.CommentID,
		Type:      cr.Type,
		CreatedAt: cr.CreatedAt,
	}, nil
}

func (r *commentReactionRepository) AllByTarget(ctx context.Context, commentID uuid.UUID) ([]*domain.ReactionDetail, error) {
	var rows []reactionDetailRow
	err := r.db.WithContext(ctx).
		Table("comment_reactions").
		Select("comment_reactions.id, comment_reactions.type, comment_reactions.created_at, users.id AS user_id, users.user_name").
		Joins("JOIN users ON users.id = comment_reactions.user_id").
		Where("comment_reactions.comment_id = ?", commentID).
		Order("comment_reactions.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return reactionDetails(rows), nil
}

func (r *commentReactionRepository) Create(ctx context.Context, reaction *domain.Reaction) error {
	column := counterColumn(reaction.Type)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cr := domain.CommentReaction{
			ID:        reaction.ID,
			UserID:    reaction.UserID,
			CommentID: reaction.TargetID,
			Type:      reaction.Type,
		}
		if err := tx.Create(&cr).Error; err != nil {
			return err
		}
		reaction.CreatedAt = cr.CreatedAt
		return tx.Model(&domain.Comment{}).
			Where("id = ?", reaction.TargetID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}
