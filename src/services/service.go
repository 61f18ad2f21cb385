// Package services implements the application core: the connection graph,
// content store, engagement ledger, feed composer and discovery composer.
// Services speak repository interfaces only, so storage is swappable and the
// invariants are testable without a running Mongo.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// enrichPosts turns raw posts into feed projections: author profile,
// engagement counts and the viewer's like state, all fetched in batches
// rather than per item.
func enrichPosts(
	ctx context.Context,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
	posts []models.Post,
	viewer *primitive.ObjectID,
) ([]models.PostDto, error) {
	dtos := make([]models.PostDto, 0, len(posts))
	if len(posts) == 0 {
		return dtos, nil
	}

	postIDs := make([]primitive.ObjectID, 0, len(posts))
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.Id)
		authorIDs = append(authorIDs, post.Author)
	}

	authors, err := users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := likes.CountForTargets(ctx, postIDs, models.TargetKindPost)
	if err != nil {
		return nil, err
	}
	commentCounts, err := comments.CountForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	liked := map[primitive.ObjectID]bool{}
	if viewer != nil {
		liked, err = likes.LikedSet(ctx, *viewer, postIDs, models.TargetKindPost)
		if err != nil {
			return nil, err
		}
	}

	for _, post := range posts {
		author := authors[post.Author]
		dtos = append(dtos, models.PostDto{
			ID:            post.Id,
			Author:        author.ToDto(),
			Description:   post.Description,
			Media:         post.Media,
			LikesCount:    likeCounts[post.Id],
			CommentsCount: commentCounts[post.Id],
			IsLiked:       liked[post.Id],
			CreatedAt:     post.CreatedAt,
			UpdatedAt:     post.UpdatedAt,
		})
	}
	return dtos, nil
}

// enrichComments mirrors enrichPosts for comment listings.
func enrichComments(
	ctx context.Context,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments []models.Comment,
	viewer *primitive.ObjectID,
) ([]models.CommentDto, error) {
	dtos := make([]models.CommentDto, 0, len(comments))
	if len(comments) == 0 {
		return dtos, nil
	}

	commentIDs := make([]primitive.ObjectID, 0, len(comments))
	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.Id)
		authorIDs = append(authorIDs, comment.Author)
	}

	authors, err := users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := likes.CountForTargets(ctx, commentIDs, models.TargetKindComment)
	if err != nil {
		return nil, err
	}

	liked := map[primitive.ObjectID]bool{}
	if viewer != nil {
		liked, err = likes.LikedSet(ctx, *viewer, commentIDs, models.TargetKindComment)
		if err != nil {
			return nil, err
		}
	}

	for _, comment := range comments {
		author := authors[comment.Author]
		dtos = append(dtos, models.CommentDto{
			ID:         comment.Id,
			PostID:     comment.Post,
			Author:     author.ToDto(),
			Content:    comment.Content,
			LikesCount: likeCounts[comment.Id],
			IsLiked:    liked[comment.Id],
			CreatedAt:  comment.CreatedAt,
		})
	}
	return dtos, nil
}
