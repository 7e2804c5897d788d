package events

import (
	"context"
	"errors"
	"time"
)

type Type string

const (
	UserRegistered    Type = "user.registered"
	UserVerified      Type = "user.verified"
	TimeSlotCommitted Type = "onboarding.time_slot_committed"
	TrainerAssigned   Type = "onboarding.trainer_assigned"
	TrainerApproved   Type = "trainer.approved"
	TrainerRejected   Type = "trainer.rejected"
	TrainerDeleted    Type = "trainer.deleted"
	MemberDeleted     Type = "member.deleted"
)

// Event is a committed change in one of the flows.
type Event struct {
	Type      Type           `json:"type"`
	ActorID   uint           `json:"actor_id,omitempty"`
	SubjectID uint           `json:"subject_id"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

func New(t Type, actorID, subjectID uint, data map[string]any) Event {
	return Event{Type: t, ActorID: actorID, SubjectID: subjectID, Data: data, At: time.Now().UTC()}
}

// Publisher delivers events to an observer. Publishing never changes the
// outcome of the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
