package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

// DiscoveryService suggests practitioners the viewer is not yet connected to.
type DiscoveryService struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
}

func NewDiscoveryService(users repository.UserRepository, connections repository.ConnectionRepository) *DiscoveryService {
	return &DiscoveryService{users: users, connections: connections}
}

// Discover pages through all users minus the viewer and their accepted
// connections, newest account first. searchTerm narrows by case-insensitive
// substring over name/specialty/institution/location.
//
// The exclusion set and the per-candidate status are read in two steps; a
// connection accepted between them can surface a candidate whose status reads
// "connected". That window is an accepted inconsistency: status is re-read at
// response time rather than locked.
func (s *DiscoveryService) Discover(ctx context.Context, viewer primitive.ObjectID, page, limit int, searchTerm string) ([]models.CandidateDto, bool, error) {
	page, limit = clampPage(page, limit)

	connected, err := s.connections.ListAcceptedOf(ctx, viewer)
	if err != nil {
		return nil, false, err
	}

	exclude := make([]primitive.ObjectID, 0, len(connected)+1)
	exclude = append(exclude, viewer)
	for _, conn := range connected {
		exclude = append(exclude, otherParty(conn, viewer))
	}

	candidates, err := s.users.List(ctx, repository.UserQuery{
		Exclude: exclude,
		Search:  searchTerm,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, false, err
	}

	dtos := make([]models.CandidateDto, 0, len(candidates))
	if len(candidates) == 0 {
		return dtos, false, nil
	}

	// status per candidate from a single read of the viewer's records
	involving, err := s.connections.ListInvolving(ctx, viewer)
	if err != nil {
		return nil, false, err
	}
	status := make(map[primitive.ObjectID]models.ConnectionStatus, len(involving))
	for _, conn := range involving {
		other := otherParty(conn, viewer)
		switch {
		case conn.Accepted:
			status[other] = models.ConnectionStatusConnected
		case conn.Requester == viewer:
			status[other] = models.ConnectionStatusPending
		default:
			status[other] = models.ConnectionStatusReceived
		}
	}

	candidateIDs := make([]primitive.ObjectID, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.Id)
	}

	// one aggregate for the whole page, not a count query per candidate
	counts, err := s.connections.CountAcceptedFor(ctx, candidateIDs)
	if err != nil {
		return nil, false, err
	}

	for _, candidate := range candidates {
		candidateStatus, ok := status[candidate.Id]
		if !ok {
			candidateStatus = models.ConnectionStatusNone
		}
		dtos = append(dtos, models.CandidateDto{
			ID:               candidate.Id,
			Name:             candidate.Name,
			Username:         candidate.Username,
			Specialty:        candidate.Specialty,
			Institution:      candidate.Institution,
			Location:         candidate.Location,
			ProfilePicture:   candidate.ProfilePicture,
			ConnectionStatus: candidateStatus,
			ConnectionCount:  counts[candidate.Id],
		})
	}
	return dtos, len(dtos) == limit, nil
}
