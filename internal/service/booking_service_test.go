package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"safaruz/internal/model"
)

func TestBookingService_ConcurrentLastSpot(t *testing.T) {
	repo := NewMemoryBookingRepository(model.Tour{ID: 1, Name: "Khiva", AvailableSpots: 1})
	svc := NewBookingService(repo, nil, zap.NewNop())

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), i+1, 1)
		}(i)
	}
	wg.Wait()

	succeeded, noSpots := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNoSpots):
			noSpots++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || noSpots != 1 {
		t.Errorf("succeeded = %d, no spots = %d; want 1 and 1", succeeded, noSpots)
	}
	if got := repo.spots(1); got != 0 {
		t.Errorf("available_spots = %d, want 0", got)
	}
}

func TestBookingService_Cancel(t *testing.T) {
	repo := NewMemoryBookingRepository(model.Tour{ID: 1, Name: "Bukhara", AvailableSpots: 3})
	svc := NewBookingService(repo, nil, zap.NewNop())
	ctx := context.Background()

	booking, err := svc.Book(ctx, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := repo.spots(1); got != 2 {
		t.Fatalf("available_spots after booking = %d, want 2", got)
	}

	tests := []struct {
		name    string
		userID  int
		id      int
		wantErr error
	}{
		{name: "foreign booking", userID: 8, id: booking.ID, wantErr: ErrNotFound},
		{name: "missing booking", userID: 7, id: 999, wantErr: ErrNotFound},
		{name: "own booking", userID: 7, id: booking.ID},
		{name: "already cancelled", userID: 7, id: booking.ID, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Cancel(ctx, tt.userID, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Cancel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := repo.spots(1); got != 3 {
		t.Errorf("available_spots after cancel = %d, want 3", got)
	}
	mine, _ := svc.ListMine(ctx, 7)
	if len(mine) != 0 {
		t.Errorf("ListMine() = %d rows, want 0", len(mine))
	}
}

func TestBookingService_Notifies(t *testing.T) {
	repo := NewMemoryBookingRepository(model.Tour{ID: 1, Name: "Samarkand", AvailableSpots: 2})
	notifier := &MockNotifier{events: make(chan model.BookingEvent, 2), err: errors.New("telegram down")}
	svc := NewBookingService(repo, notifier, zap.NewNop())

	booking, err := svc.Book(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("Book() must not fail when notification fails: %v", err)
	}

	select {
	case ev := <-notifier.events:
		if ev.Type != model.EventBookingCreated || ev.BookingID != booking.ID || ev.AvailableSpots != 1 || ev.TourName != "Samarkand" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no booking event published")
	}
}

func TestBookingService_Validation(t *testing.T) {
	svc := NewBookingService(NewMemoryBookingRepository(), nil, zap.NewNop())

	var verr *ValidationError
	if _, err := svc.Book(context.Background(), 1, 0); !errors.As(err, &verr) {
		t.Errorf("Book() error = %v, want ValidationError", err)
	}
	if _, err := svc.Book(context.Background(), 1, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Book() error = %v, want ErrNotFound", err)
	}
}
