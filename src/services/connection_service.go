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

// ConnectionService owns the connection graph: directed requests, their
// acceptance state, and the derived views (status, exclusion set, network).
type ConnectionService struct {
	connections   repository.ConnectionRepository
	users         repository.UserRepository
	notifications *NotificationService
	log           *zap.SugaredLogger
}

func NewConnectionService(
	connections repository.ConnectionRepository,
	users repository.UserRepository,
	notifications *NotificationService,
	log *zap.SugaredLogger,
) *ConnectionService {
	return &ConnectionService{
		connections:   connections,
		users:         users,
		notifications: notifications,
		log:           log,
	}
}

// SendRequest creates an unaccepted record from requester to recipient.
// A record in either direction and either state blocks a new one; the unique
// (requester, recipient) index backstops the check under concurrency.
func (s *ConnectionService) SendRequest(ctx context.Context, requester, recipient primitive.ObjectID) (*models.Connection, error) {
	if requester == recipient {
		return nil, lib.Validation("you can't send a connection request to yourself")
	}

	user, err := s.users.FindByID(ctx, recipient)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, lib.NotFound("user not found")
	}

	existing, err := s.connections.FindBetween(ctx, requester, recipient)
	if err != nil {
		return nil, err
	}
	for _, conn := range existing {
		if conn.Accepted {
			return nil, lib.Conflict("you are already connected with this user")
		}
		return nil, lib.Conflict("a connection request already exists")
	}

	conn := models.Connection{Requester: requester, Recipient: recipient}
	if err := s.connections.Insert(ctx, &conn); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, lib.Conflict("a connection request already exists")
		}
		return nil, err
	}
	return &conn, nil
}

// AcceptRequest flips a pending request addressed to actingUser. Re-invocation
// fails: an accepted record no longer matches the pending predicate.
func (s *ConnectionService) AcceptRequest(ctx context.Context, id, actingUser primitive.ObjectID) error {
	conn, err := s.connections.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if conn == nil || conn.Recipient != actingUser || conn.Accepted {
		return lib.NotFound("connection request not found")
	}

	ok, err := s.connections.Accept(ctx, id, actingUser)
	if err != nil {
		return err
	}
	if !ok {
		// lost a race with another accept/reject
		return lib.NotFound("connection request not found")
	}

	s.notifications.Notify(ctx, conn.Requester, models.NotificationTypeConnectionAccepted, &actingUser, nil)
	return nil
}

// RejectRequest deletes a pending request addressed to actingUser. No
// rejected state is retained; the requester may try again later.
func (s *ConnectionService) RejectRequest(ctx context.Context, id, actingUser primitive.ObjectID) error {
	ok, err := s.connections.Delete(ctx, id, actingUser)
	if err != nil {
		return err
	}
	if !ok {
		return lib.NotFound("connection request not found")
	}
	return nil
}

// StatusBetween reports the relationship from a's point of view.
func (s *ConnectionService) StatusBetween(ctx context.Context, a, b primitive.ObjectID) (models.ConnectionStatus, error) {
	conns, err := s.connections.FindBetween(ctx, a, b)
	if err != nil {
		return models.ConnectionStatusNone, err
	}
	for _, conn := range conns {
		if conn.Accepted {
			return models.ConnectionStatusConnected, nil
		}
		if conn.Requester == a {
			return models.ConnectionStatusPending, nil
		}
		return models.ConnectionStatusReceived, nil
	}
	return models.ConnectionStatusNone, nil
}

// ExclusionSetFor returns the ids already connected to user (either
// direction). Discovery subtracts these from its candidate pool; self is
// excluded by the caller.
func (s *ConnectionService) ExclusionSetFor(ctx context.Context, user primitive.ObjectID) ([]primitive.ObjectID, error) {
	conns, err := s.connections.ListAcceptedOf(ctx, user)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(conns))
	for _, conn := range conns {
		ids = append(ids, otherParty(conn, user))
	}
	return ids, nil
}

// Network returns the profiles of every accepted connection of user.
func (s *ConnectionService) Network(ctx context.Context, user primitive.ObjectID) ([]models.UserDto, error) {
	ids, err := s.ExclusionSetFor(ctx, user)
	if err != nil {
		return nil, err
	}

	profiles, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.UserDto, 0, len(ids))
	for _, id := range ids {
		if profile, ok := profiles[id]; ok {
			dtos = append(dtos, profile.ToDto())
		}
	}
	return dtos, nil
}

// Pending lists the requests awaiting the user's decision, enriched with the
// requester profile.
func (s *ConnectionService) Pending(ctx context.Context, user primitive.ObjectID) ([]models.ConnectionRequestDto, error) {
	conns, err := s.connections.ListPendingFor(ctx, user)
	if err != nil {
		return nil, err
	}

	requesterIDs := make([]primitive.ObjectID, 0, len(conns))
	for _, conn := range conns {
		requesterIDs = append(requesterIDs, conn.Requester)
	}
	profiles, err := s.users.FindByIDs(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.ConnectionRequestDto, 0, len(conns))
	for _, conn := range conns {
		profile := profiles[conn.Requester]
		dtos = append(dtos, models.ConnectionRequestDto{
			ID:        conn.Id,
			Requester: profile.ToDto(),
			CreatedAt: conn.CreatedAt,
		})
	}
	return dtos, nil
}

func otherParty(conn models.Connection, user primitive.ObjectID) primitive.ObjectID {
	if conn.Requester == user {
		return conn.Recipient
	}
	return conn.Requester
}
