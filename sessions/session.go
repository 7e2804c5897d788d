package sessions

import (
	"sync"
	"time"

	"gym-management-api/models"

	"github.com/google/uuid"
)

// Session is the per-login context handed to every flow operation. It holds
// a snapshot of the user plus the plan chosen but not yet committed.
type Session struct {
	ID        string
	User      models.User
	CreatedAt time.Time

	mu          sync.Mutex
	pendingPlan *models.Plan
}

func New(user models.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: time.Now(),
	}
}

// PendingPlan returns the uncommitted plan selection, if any.
func (s *Session) PendingPlan() (models.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingPlan == nil {
		return models.Plan{}, false
	}
	return *s.pendingPlan, true
}

func (s *Session) SetPendingPlan(p models.Plan) {
	s.mu.Lock()
	s.pendingPlan = &p
	s.mu.Unlock()
}

func (s *Session) ClearPendingPlan() {
	s.mu.Lock()
	s.pendingPlan = nil
	s.mu.Unlock()
}
