package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/media"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

// In-memory repository fakes. They enforce the same uniqueness invariants as
// the Mongo implementations so the services can be tested against the real
// contract, including duplicate-key behavior.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeUserRepo struct {
	mu    sync.Mutex
	clock *fakeClock
	users []models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.Id = primitive.NewObjectID()
	user.CreatedAt = r.clock.next()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Id == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]models.User)
	for _, id := range ids {
		for _, u := range r.users {
			if u.Id == id {
				out[id] = u
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Id != id {
			continue
		}
		if update.Name != nil {
			r.users[i].Name = *update.Name
		}
		if update.Specialty != nil {
			r.users[i].Specialty = *update.Specialty
		}
		if update.Institution != nil {
			r.users[i].Institution = *update.Institution
		}
		if update.Location != nil {
			r.users[i].Location = *update.Location
		}
		if update.About != nil {
			r.users[i].About = *update.About
		}
		if update.ProfilePicture != nil {
			r.users[i].ProfilePicture = *update.ProfilePicture
		}
		copied := r.users[i]
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, q repository.UserQuery) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[primitive.ObjectID]bool, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = true
	}

	var matched []models.User
	// newest account first
	for i := len(r.users) - 1; i >= 0; i-- {
		u := r.users[i]
		if excluded[u.Id] {
			continue
		}
		if q.Search != "" && !userMatches(u, q.Search) {
			continue
		}
		matched = append(matched, u)
	}
	return pageSlice(matched, q.Page, q.Limit), nil
}

func userMatches(u models.User, search string) bool {
	search = strings.ToLower(search)
	for _, field := range []string{u.Name, u.Specialty, u.Institution, u.Location} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

type fakeConnectionRepo struct {
	mu    sync.Mutex
	clock *fakeClock
	conns []models.Connection
}

func (r *fakeConnectionRepo) Insert(_ context.Context, conn *models.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.Requester == conn.Requester && c.Recipient == conn.Recipient {
			return repository.ErrDuplicateKey
		}
	}
	conn.Id = primitive.NewObjectID()
	conn.CreatedAt = r.clock.next()
	r.conns = append(r.conns, *conn)
	return nil
}

func (r *fakeConnectionRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.Id == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeConnectionRepo) FindBetween(_ context.Context, a, b primitive.ObjectID) ([]models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Connection
	for _, c := range r.conns {
		if (c.Requester == a && c.Recipient == b) || (c.Requester == b && c.Recipient == a) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) Accept(_ context.Context, id, recipient primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.conns {
		if r.conns[i].Id == id && r.conns[i].Recipient == recipient && !r.conns[i].Accepted {
			r.conns[i].Accepted = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConnectionRepo) Delete(_ context.Context, id, recipient primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.conns {
		if r.conns[i].Id == id && r.conns[i].Recipient == recipient && !r.conns[i].Accepted {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConnectionRepo) ListPendingFor(_ context.Context, recipient primitive.ObjectID) ([]models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Connection
	for _, c := range r.conns {
		if c.Recipient == recipient && !c.Accepted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) ListAcceptedOf(_ context.Context, user primitive.ObjectID) ([]models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Connection
	for _, c := range r.conns {
		if c.Accepted && (c.Requester == user || c.Recipient == user) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) ListInvolving(_ context.Context, user primitive.ObjectID) ([]models.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Connection
	for _, c := range r.conns {
		if c.Requester == user || c.Recipient == user {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) CountAcceptedFor(_ context.Context, users []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]int64)
	for _, id := range users {
		for _, c := range r.conns {
			if c.Accepted && (c.Requester == id || c.Recipient == id) {
				out[id]++
			}
		}
	}
	return out, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	clock *fakeClock
	posts []models.Post
}

func (r *fakePostRepo) Insert(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.Id = primitive.NewObjectID()
	post.CreatedAt = r.clock.next()
	post.UpdatedAt = post.CreatedAt
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Id == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) Update(_ context.Context, id, author primitive.ObjectID, update repository.PostUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].Id == id && r.posts[i].Author == author {
			r.posts[i].Description = update.Description
			if update.Media != nil {
				r.posts[i].Media = update.Media
			}
			r.posts[i].UpdatedAt = r.clock.next()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id, author primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].Id == id && r.posts[i].Author == author {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) List(_ context.Context, q repository.PostQuery) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Post
	for i := len(r.posts) - 1; i >= 0; i-- {
		p := r.posts[i]
		if q.ExcludeAuthor != nil && p.Author == *q.ExcludeAuthor {
			continue
		}
		if q.Author != nil && p.Author != *q.Author {
			continue
		}
		matched = append(matched, p)
	}
	return pageSlice(matched, q.Page, q.Limit), nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	clock    *fakeClock
	comments []models.Comment
}

func (r *fakeCommentRepo) Insert(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.Id = primitive.NewObjectID()
	comment.CreatedAt = r.clock.next()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.Id == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, id, author primitive.ObjectID, content string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].Id == id && r.comments[i].Author == author {
			r.comments[i].Content = content
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id, author primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].Id == id && r.comments[i].Author == author {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommentRepo) ListForPost(_ context.Context, post primitive.ObjectID, page, limit int) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Comment
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].Post == post {
			matched = append(matched, r.comments[i])
		}
	}
	return pageSlice(matched, page, limit), nil
}

func (r *fakeCommentRepo) ListByAuthor(_ context.Context, author primitive.ObjectID, page, limit int) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Comment
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].Author == author {
			matched = append(matched, r.comments[i])
		}
	}
	return pageSlice(matched, page, limit), nil
}

func (r *fakeCommentRepo) CountForPosts(_ context.Context, posts []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]int64)
	for _, id := range posts {
		for _, c := range r.comments {
			if c.Post == id {
				out[id]++
			}
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteForPost(_ context.Context, post primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var remaining []models.Comment
	var deleted []primitive.ObjectID
	for _, c := range r.comments {
		if c.Post == post {
			deleted = append(deleted, c.Id)
		} else {
			remaining = append(remaining, c)
		}
	}
	r.comments = remaining
	return deleted, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	clock *fakeClock
	likes []models.Like
}

func (r *fakeLikeRepo) Insert(_ context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.User == like.User && l.Target == like.Target && l.TargetKind == like.TargetKind {
			return repository.ErrDuplicateKey
		}
	}
	like.Id = primitive.NewObjectID()
	like.CreatedAt = r.clock.next()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) DeleteMatching(_ context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.likes {
		if r.likes[i].User == user && r.likes[i].Target == target && r.likes[i].TargetKind == kind {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, user, target primitive.ObjectID, kind models.TargetKind) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.User == user && l.Target == target && l.TargetKind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) Count(_ context.Context, target primitive.ObjectID, kind models.TargetKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.Target == target && l.TargetKind == kind {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) CountForTargets(_ context.Context, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]int64)
	for _, id := range targets {
		for _, l := range r.likes {
			if l.Target == id && l.TargetKind == kind {
				out[id]++
			}
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) LikedSet(_ context.Context, user primitive.ObjectID, targets []primitive.ObjectID, kind models.TargetKind) (map[primitive.ObjectID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[primitive.ObjectID]bool)
	for _, id := range targets {
		for _, l := range r.likes {
			if l.User == user && l.Target == id && l.TargetKind == kind {
				out[id] = true
			}
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) DeleteForTarget(_ context.Context, target primitive.ObjectID, kind models.TargetKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var remaining []models.Like
	for _, l := range r.likes {
		if !(l.Target == target && l.TargetKind == kind) {
			remaining = append(remaining, l)
		}
	}
	r.likes = remaining
	return nil
}

func (r *fakeLikeRepo) DeleteForTargets(_ context.Context, targets []primitive.ObjectID, kind models.TargetKind) error {
	for _, target := range targets {
		if err := r.DeleteForTarget(context.Background(), target, kind); err != nil {
			return err
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	clock         *fakeClock
	notifications []models.Notification
}

func (r *fakeNotificationRepo) Insert(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.Id = primitive.NewObjectID()
	n.CreatedAt = r.clock.next()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListForRecipient(_ context.Context, recipient primitive.ObjectID, page, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Recipient == recipient {
			matched = append(matched, r.notifications[i])
		}
	}
	return pageSlice(matched, page, limit), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipient primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].Id == id && r.notifications[i].Recipient == recipient {
			r.notifications[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, recipient primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].Id == id && r.notifications[i].Recipient == recipient {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeUploader fails uploads for file names listed in failing.
type fakeUploader struct {
	mu       sync.Mutex
	failing  map[string]bool
	uploaded []string
	removed  []string
}

func newFakeUploader(failing ...string) *fakeUploader {
	fail := make(map[string]bool, len(failing))
	for _, name := range failing {
		fail[name] = true
	}
	return &fakeUploader{failing: fail}
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, fileName, folder string) (*media.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failing[fileName] {
		return nil, errors.New("upstream unavailable")
	}
	u.uploaded = append(u.uploaded, fileName)
	return &media.UploadResult{
		URL:        "https://cdn.example.com/" + folder + "/" + fileName,
		ExternalID: "ext-" + fileName,
	}, nil
}

func (u *fakeUploader) Destroy(_ context.Context, externalID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removed = append(u.removed, externalID)
	return nil
}

func pageSlice[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// testEnv wires every service over the fakes, the way main.go wires the
// Mongo implementations.
type testEnv struct {
	users         *fakeUserRepo
	connections   *fakeConnectionRepo
	posts         *fakePostRepo
	comments      *fakeCommentRepo
	likes         *fakeLikeRepo
	notifications *fakeNotificationRepo
	uploader      *fakeUploader

	connectionService   *ConnectionService
	postService         *PostService
	likeService         *LikeService
	feedService         *FeedService
	discoveryService    *DiscoveryService
	notificationService *NotificationService
}

func newTestEnv(failingUploads ...string) *testEnv {
	clock := newFakeClock()
	env := &testEnv{
		users:         &fakeUserRepo{clock: clock},
		connections:   &fakeConnectionRepo{clock: clock},
		posts:         &fakePostRepo{clock: clock},
		comments:      &fakeCommentRepo{clock: clock},
		likes:         &fakeLikeRepo{clock: clock},
		notifications: &fakeNotificationRepo{clock: clock},
		uploader:      newFakeUploader(failingUploads...),
	}

	log := zap.NewNop().Sugar()
	env.notificationService = NewNotificationService(env.notifications, log)
	env.connectionService = NewConnectionService(env.connections, env.users, env.notificationService, log)
	env.postService = NewPostService(env.posts, env.comments, env.likes, env.users, env.uploader, env.notificationService, log)
	env.likeService = NewLikeService(env.likes, env.posts, env.comments, env.notificationService, log)
	env.feedService = NewFeedService(env.posts, env.users, env.likes, env.comments)
	env.discoveryService = NewDiscoveryService(env.users, env.connections)
	return env
}

func (env *testEnv) addUser(name string) models.User {
	user := models.User{
		Name:     name,
		Username: strings.ToLower(name),
		Email:    strings.ToLower(name) + "@example.com",
	}
	if err := env.users.Create(context.Background(), &user); err != nil {
		panic(err)
	}
	return user
}

func (env *testEnv) addPost(author models.User, description string) models.PostDto {
	post, err := env.postService.Create(context.Background(), author, description, nil)
	if err != nil {
		panic(err)
	}
	return *post
}
