package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/media"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

const uploadFolder = "posts"

// MediaUpload is a decoded file attached to a create/update request.
type MediaUpload struct {
	Kind     models.MediaKind
	FileName string
	Data     []byte
}

// PostService is the content store: posts and comments with ownership checks
// and the ordered cascades that keep the engagement ledger consistent.
type PostService struct {
	posts         repository.PostRepository
	comments      repository.CommentRepository
	likes         repository.LikeRepository
	users         repository.UserRepository
	uploader      media.Uploader
	notifications *NotificationService
	log           *zap.SugaredLogger
}

func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	uploader media.Uploader,
	notifications *NotificationService,
	log *zap.SugaredLogger,
) *PostService {
	return &PostService{
		posts:         posts,
		comments:      comments,
		likes:         likes,
		users:         users,
		uploader:      uploader,
		notifications: notifications,
		log:           log,
	}
}

// Create stores a new post. Upload failures are non-fatal: the failed item is
// skipped with a diagnostic and the post keeps whatever media succeeded.
func (s *PostService) Create(ctx context.Context, author models.User, description string, uploads []MediaUpload) (*models.PostDto, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, lib.Validation("description is required")
	}

	post := models.Post{
		Author:      author.Id,
		Description: description,
		Media:       s.uploadAll(ctx, uploads),
	}
	if err := s.posts.Insert(ctx, &post); err != nil {
		return nil, err
	}

	return &models.PostDto{
		ID:          post.Id,
		Author:      author.ToDto(),
		Description: post.Description,
		Media:       post.Media,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*models.PostDto, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, lib.NotFound("post not found")
	}

	dtos, err := enrichPosts(ctx, s.users, s.likes, s.comments, []models.Post{*post}, viewer)
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// Update edits description and, when new media is supplied, replaces the
// media list wholesale. Non-owners get the same answer as a missing post.
func (s *PostService) Update(ctx context.Context, id, actingUser primitive.ObjectID, description string, uploads []MediaUpload) (*models.PostDto, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, lib.Validation("description is required")
	}

	var previous []models.MediaRef
	update := repository.PostUpdate{Description: description}
	if len(uploads) > 0 {
		existing, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.Author != actingUser {
			return nil, lib.NotFoundOrNotAuthorized()
		}
		previous = existing.Media
		update.Media = s.uploadAll(ctx, uploads)
	}

	ok, err := s.posts.Update(ctx, id, actingUser, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lib.NotFoundOrNotAuthorized()
	}

	// Replaced files are gone from the post; drop them at the host too.
	s.destroyAll(ctx, previous)

	return s.Get(ctx, id, &actingUser)
}

// Delete removes a post and cascades comments and likes first, as an ordered
// sequence of idempotent steps. Retrying a partially completed delete is
// safe. Absent or non-owned posts report false instead of an error.
func (s *PostService) Delete(ctx context.Context, id, actingUser primitive.ObjectID) (bool, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if post == nil || post.Author != actingUser {
		return false, nil
	}

	commentIDs, err := s.comments.DeleteForPost(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.likes.DeleteForTargets(ctx, commentIDs, models.TargetKindComment); err != nil {
		return false, err
	}
	if err := s.likes.DeleteForTarget(ctx, id, models.TargetKindPost); err != nil {
		return false, err
	}

	ok, err := s.posts.Delete(ctx, id, actingUser)
	if err != nil {
		return false, err
	}
	if ok {
		s.destroyAll(ctx, post.Media)
	}
	return ok, nil
}

// AddComment attaches a comment to an existing post and notifies the post
// author unless they commented on their own post.
func (s *PostService) AddComment(ctx context.Context, author models.User, postID primitive.ObjectID, content string) (*models.CommentDto, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, lib.Validation("content is required")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, lib.NotFound("post not found")
	}

	comment := models.Comment{Post: postID, Author: author.Id, Content: content}
	if err := s.comments.Insert(ctx, &comment); err != nil {
		return nil, err
	}

	if post.Author != author.Id {
		s.notifications.Notify(ctx, post.Author, models.NotificationTypeComment, &author.Id, &postID)
	}

	return &models.CommentDto{
		ID:        comment.Id,
		PostID:    comment.Post,
		Author:    author.ToDto(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *PostService) UpdateComment(ctx context.Context, id, actingUser primitive.ObjectID, content string) (*models.CommentDto, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, lib.Validation("content is required")
	}

	ok, err := s.comments.Update(ctx, id, actingUser, content)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lib.NotFoundOrNotAuthorized()
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, lib.NotFound("comment not found")
	}

	dtos, err := enrichComments(ctx, s.users, s.likes, []models.Comment{*comment}, &actingUser)
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// DeleteComment cascades the comment's likes before removing it.
func (s *PostService) DeleteComment(ctx context.Context, id, actingUser primitive.ObjectID) (bool, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if comment == nil || comment.Author != actingUser {
		return false, nil
	}

	if err := s.likes.DeleteForTarget(ctx, id, models.TargetKindComment); err != nil {
		return false, err
	}
	return s.comments.Delete(ctx, id, actingUser)
}

// CommentsForPost lists a post's comments newest-first with author projection
// and like counts.
func (s *PostService) CommentsForPost(ctx context.Context, postID primitive.ObjectID, viewer *primitive.ObjectID, page, limit int) ([]models.CommentDto, bool, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	if post == nil {
		return nil, false, lib.NotFound("post not found")
	}

	page, limit = clampPage(page, limit)
	comments, err := s.comments.ListForPost(ctx, postID, page, limit)
	if err != nil {
		return nil, false, err
	}

	dtos, err := enrichComments(ctx, s.users, s.likes, comments, viewer)
	if err != nil {
		return nil, false, err
	}
	return dtos, len(dtos) == limit, nil
}

// CommentsByUser lists a user's own comments with the same enrichment shape.
func (s *PostService) CommentsByUser(ctx context.Context, author primitive.ObjectID, viewer *primitive.ObjectID, page, limit int) ([]models.CommentDto, bool, error) {
	page, limit = clampPage(page, limit)
	comments, err := s.comments.ListByAuthor(ctx, author, page, limit)
	if err != nil {
		return nil, false, err
	}

	dtos, err := enrichComments(ctx, s.users, s.likes, comments, viewer)
	if err != nil {
		return nil, false, err
	}
	return dtos, len(dtos) == limit, nil
}

func (s *PostService) uploadAll(ctx context.Context, uploads []MediaUpload) []models.MediaRef {
	refs := make([]models.MediaRef, 0, len(uploads))
	for _, item := range uploads {
		kind := item.Kind
		if kind != models.MediaKindImage && kind != models.MediaKindVideo {
			kind = models.MediaKindImage
		}

		result, err := s.uploader.Upload(ctx, item.Data, item.FileName, uploadFolder)
		if err != nil {
			s.log.Warnw("media upload failed, skipping item", "fileName", item.FileName, "error", err)
			continue
		}

		refs = append(refs, models.MediaRef{
			Kind:       kind,
			URL:        result.URL,
			ExternalID: result.ExternalID,
			FileName:   item.FileName,
			ByteSize:   int64(len(item.Data)),
		})
	}
	return refs
}

func (s *PostService) destroyAll(ctx context.Context, refs []models.MediaRef) {
	for _, ref := range refs {
		if ref.ExternalID == "" {
			continue
		}
		if err := s.uploader.Destroy(ctx, ref.ExternalID); err != nil {
			s.log.Warnw("failed to remove uploaded media", "externalId", ref.ExternalID, "error", err)
		}
	}
}
