package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/selim/alumnihub/internal/app/models"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

type eventFixture struct {
	service       *EventService
	events        *fakeEventStore
	registrations *fakeRegistrationStore
}

func newEventFixture() *eventFixture {
	f := &eventFixture{
		events:        newFakeEventStore(),
		registrations: newFakeRegistrationStore(),
	}
	f.service = NewEventService(f.events, f.registrations, &fakeTransactor{}, zerolog.Nop())
	return f
}

func (f *eventFixture) addEvent(maxAttendees int, startsAt time.Time) *models.Event {
	return f.events.add(&models.Event{
		Title:        "Career Night",
		EventType:    "networking",
		StartsAt:     startsAt,
		MaxAttendees: maxAttendees,
	})
}

func TestRegisterForEvent(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(10, time.Now().Add(24*time.Hour))

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}

	count, _ := f.registrations.CountRegistered(context.Background(), nil, event.ID)
	if count != 1 {
		t.Errorf("registered count = %d, want 1", count)
	}
}

func TestRegisterUnknownEvent(t *testing.T) {
	f := newEventFixture()

	err := f.service.Register(context.Background(), 42, 1)
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestRegisterPastEvent(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(10, time.Now().Add(-time.Hour))

	err := f.service.Register(context.Background(), event.ID, 1)
	if !errors.Is(err, apperrors.ErrEventInPast) {
		t.Errorf("err = %v, want ErrEventInPast", err)
	}
}

func TestRegisterTwice(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(10, time.Now().Add(24*time.Hour))

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := f.service.Register(context.Background(), event.ID, 1)
	if !errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Errorf("err = %v, want ErrAlreadyRegistered", err)
	}
	if rows := f.registrations.rowCount(event.ID); rows != 1 {
		t.Errorf("registration rows = %d, want 1", rows)
	}
}

func TestRegisterFullEvent(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(1, time.Now().Add(24*time.Hour))

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := f.service.Register(context.Background(), event.ID, 2)
	if !errors.Is(err, apperrors.ErrEventFull) {
		t.Errorf("err = %v, want ErrEventFull", err)
	}
}

func TestRegisterUnlimitedCapacity(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(0, time.Now().Add(24*time.Hour))

	for userID := int64(1); userID <= 50; userID++ {
		if err := f.service.Register(context.Background(), event.ID, userID); err != nil {
			t.Fatalf("Register user %d: %v", userID, err)
		}
	}
}

// Capacity N with N+1 concurrent registrations must admit exactly N. The
// transactor serializes the check-and-write the same way the event row lock
// does in production.
func TestRegisterConcurrentCapacityRace(t *testing.T) {
	const capacity = 3
	const contenders = capacity + 1

	f := newEventFixture()
	event := f.addEvent(capacity, time.Now().Add(24*time.Hour))

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.service.Register(context.Background(), event.ID, int64(i+1))
		}(i)
	}
	wg.Wait()

	admitted, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, apperrors.ErrEventFull):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if admitted != capacity || rejected != 1 {
		t.Errorf("admitted/rejected = %d/%d, want %d/1", admitted, rejected, capacity)
	}
	count, _ := f.registrations.CountRegistered(context.Background(), nil, event.ID)
	if count != capacity {
		t.Errorf("registered count = %d, want %d", count, capacity)
	}
}

func TestCancelThenReRegisterKeepsOneRow(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(10, time.Now().Add(24*time.Hour))

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.service.CancelRegistration(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("CancelRegistration: %v", err)
	}

	count, _ := f.registrations.CountRegistered(context.Background(), nil, event.ID)
	if count != 0 {
		t.Fatalf("registered count after cancel = %d, want 0", count)
	}

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("re-Register: %v", err)
	}
	if rows := f.registrations.rowCount(event.ID); rows != 1 {
		t.Errorf("registration rows = %d, want 1 (reactivated in place)", rows)
	}
	count, _ = f.registrations.CountRegistered(context.Background(), nil, event.ID)
	if count != 1 {
		t.Errorf("registered count = %d, want 1", count)
	}
}

func TestCancelWithoutRegistrationIsNoop(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(10, time.Now().Add(24*time.Hour))

	if err := f.service.CancelRegistration(context.Background(), event.ID, 1); err != nil {
		t.Errorf("CancelRegistration: %v, want no-op success", err)
	}
}

func TestCancelledRowFreesCapacity(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(1, time.Now().Add(24*time.Hour))

	if err := f.service.Register(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.service.CancelRegistration(context.Background(), event.ID, 1); err != nil {
		t.Fatalf("CancelRegistration: %v", err)
	}
	if err := f.service.Register(context.Background(), event.ID, 2); err != nil {
		t.Errorf("Register after cancel: %v, cancelled rows must not count against capacity", err)
	}
}

func TestCreateEventRejectsUnknownType(t *testing.T) {
	f := newEventFixture()

	_, err := f.service.CreateEvent(context.Background(), 1, &dto.CreateEventRequest{
		Title:       "Bad",
		Description: "d",
		StartsAt:    time.Now().Add(time.Hour),
		Location:    "Hall A",
		EventType:   "rave",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestCreateEventRejectsPastStart(t *testing.T) {
	f := newEventFixture()

	_, err := f.service.CreateEvent(context.Background(), 1, &dto.CreateEventRequest{
		Title:       "Late",
		Description: "d",
		StartsAt:    time.Now().Add(-time.Hour),
		Location:    "Hall A",
		EventType:   "workshop",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestGetEventSpotsLeft(t *testing.T) {
	f := newEventFixture()
	event := f.addEvent(5, time.Now().Add(24*time.Hour))

	for userID := int64(1); userID <= 2; userID++ {
		if err := f.service.Register(context.Background(), event.ID, userID); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	detail, err := f.service.GetEvent(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if detail.RegisteredCount != 2 {
		t.Errorf("registered count = %d, want 2", detail.RegisteredCount)
	}
	if detail.SpotsLeft == nil || *detail.SpotsLeft != 3 {
		t.Errorf("spots left = %v, want 3", detail.SpotsLeft)
	}
	if len(detail.Attendees) != 2 {
		t.Errorf("attendees = %d, want 2", len(detail.Attendees))
	}
}
