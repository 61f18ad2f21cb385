package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

// LikeService is the engagement ledger. Toggle is the single mutating entry
// point; there is no separate unlike.
type LikeService struct {
	likes         repository.LikeRepository
	posts         repository.PostRepository
	comments      repository.CommentRepository
	notifications *NotificationService
	log           *zap.SugaredLogger
}

func NewLikeService(
	likes repository.LikeRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	notifications *NotificationService,
	log *zap.SugaredLogger,
) *LikeService {
	return &LikeService{
		likes:         likes,
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		log:           log,
	}
}

// Toggle creates the like fact if absent, deletes it if present, and reports
// the resulting state with the live count. Two racing toggles by the same
// user converge: the insert path treats a duplicate-key failure as "already
// liked" instead of erroring or double-counting.
func (s *LikeService) Toggle(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, int64, error) {
	if !kind.Valid() {
		return false, 0, lib.Validation("targetKind must be 'post' or 'comment'")
	}

	targetAuthor, postRef, err := s.resolveTarget(ctx, target, kind)
	if err != nil {
		return false, 0, err
	}

	deleted, err := s.likes.DeleteMatching(ctx, user, target, kind)
	if err != nil {
		return false, 0, err
	}

	liked := false
	if !deleted {
		like := models.Like{User: user, Target: target, TargetKind: kind}
		err = s.likes.Insert(ctx, &like)
		if err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
			return false, 0, err
		}
		liked = true

		if kind == models.TargetKindPost && targetAuthor != user {
			s.notifications.Notify(ctx, targetAuthor, models.NotificationTypeLike, &user, postRef)
		}
	}

	count, err := s.likes.Count(ctx, target, kind)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (s *LikeService) CountFor(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) (int64, error) {
	return s.likes.Count(ctx, target, kind)
}

func (s *LikeService) HasLiked(ctx context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error) {
	return s.likes.Exists(ctx, user, target, kind)
}

func (s *LikeService) resolveTarget(ctx context.Context, target primitive.ObjectID, kind models.TargetKind) (primitive.ObjectID, *primitive.ObjectID, error) {
	if kind == models.TargetKindPost {
		post, err := s.posts.FindByID(ctx, target)
		if err != nil {
			return primitive.NilObjectID, nil, err
		}
		if post == nil {
			return primitive.NilObjectID, nil, lib.NotFound("post not found")
		}
		return post.Author, &post.Id, nil
	}

	comment, err := s.comments.FindByID(ctx, target)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	if comment == nil {
		return primitive.NilObjectID, nil, lib.NotFound("comment not found")
	}
	return comment.Author, &comment.Post, nil
}
