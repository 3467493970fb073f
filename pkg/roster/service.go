package roster

import (
	"context"

	"github.com/klokku/harvest-reminder/pkg/harvest"
	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	FetchRoster(ctx context.Context) ([]Member, error)
}

type ServiceImpl struct {
	client harvest.Client
}

func NewServiceImpl(client harvest.Client) *ServiceImpl {
	return &ServiceImpl{client: client}
}

// FetchRoster returns active, billable, non-contractor users in the order
// Harvest lists them.
func (s *ServiceImpl) FetchRoster(ctx context.Context) ([]Member, error) {
	page, err := s.client.GetUsers(ctx)
	if err != nil {
		log.Errorf("Failed to fetch users: %v", err)
		if upstream.IsDataError(err) {
			return nil, err
		}
		return nil, upstream.WrapDataError("harvest users", err)
	}
	if page.Users == nil {
		message := "response has no users list, the access token may be expired"
		if page.ErrorDescription != "" {
			message = page.ErrorDescription
		}
		err := upstream.NewDataError("harvest users", message)
		log.Error(err)
		return nil, err
	}

	members := make([]Member, 0, len(page.Users))
	for _, u := range page.Users {
		if !isTracked(u) {
			continue
		}
		members = append(members, NewMember(u.Name()))
	}
	log.Debugf("Roster has %d of %d users", len(members), len(page.Users))
	return members, nil
}

// isTracked keeps active employees with a cost rate; a cost rate marks the user as billable.
func isTracked(u harvest.User) bool {
	return u.IsActive && !u.IsContractor && u.CostRate != nil
}
