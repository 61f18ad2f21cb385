package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

// FeedService composes the home feed: newest-first posts enriched per viewer.
// It holds no state of its own; everything is read-time orchestration.
type FeedService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
}

func NewFeedService(
	posts repository.PostRepository,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
) *FeedService {
	return &FeedService{posts: posts, users: users, likes: likes, comments: comments}
}

// Feed returns a page of posts. With a viewer, their own posts are excluded
// and isLiked reflects their like facts; anonymously, isLiked is always
// false. hasMore is the approximate returned==limit contract: a short page
// means no next page, a full page only suggests one.
func (s *FeedService) Feed(ctx context.Context, viewer *primitive.ObjectID, page, limit int) ([]models.PostDto, bool, error) {
	page, limit = clampPage(page, limit)

	query := repository.PostQuery{Page: page, Limit: limit}
	if viewer != nil {
		query.ExcludeAuthor = viewer
	}

	posts, err := s.posts.List(ctx, query)
	if err != nil {
		return nil, false, err
	}

	dtos, err := enrichPosts(ctx, s.users, s.likes, s.comments, posts, viewer)
	if err != nil {
		return nil, false, err
	}
	return dtos, len(dtos) == limit, nil
}

// UserPosts lists one author's posts with the same enrichment shape as the
// feed but without the self-exclusion filter. isLiked is computed for the
// requesting viewer, owner or not.
func (s *FeedService) UserPosts(ctx context.Context, author primitive.ObjectID, viewer *primitive.ObjectID, page, limit int) ([]models.PostDto, bool, error) {
	page, limit = clampPage(page, limit)

	posts, err := s.posts.List(ctx, repository.PostQuery{Author: &author, Page: page, Limit: limit})
	if err != nil {
		return nil, false, err
	}

	dtos, err := enrichPosts(ctx, s.users, s.likes, s.comments, posts, viewer)
	if err != nil {
		return nil, false, err
	}
	return dtos, len(dtos) == limit, nil
}
