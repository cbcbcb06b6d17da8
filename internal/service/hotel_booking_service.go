package service

import (
	"context"
	"time"

	"safaruz/internal/model"
	"safaruz/internal/repository"
)

const dateLayout = "2006-01-02"

type HotelBookingInput struct {
	HotelID  int
	CheckIn  string
	CheckOut string
	Guests   int
}

type HotelBookingService struct {
	repo   repository.HotelBookingRepository
	hotels repository.CatalogRepository[model.Hotel]
}

func NewHotelBookingService(repo repository.HotelBookingRepository, hotels repository.CatalogRepository[model.Hotel]) *HotelBookingService {
	return &HotelBookingService{repo: repo, hotels: hotels}
}

// Book проверяет даты и гостиницу и сохраняет бронь.
func (s *HotelBookingService) Book(ctx context.Context, userID int, in HotelBookingInput) (*model.HotelBooking, error) {
	checkIn, err := time.Parse(dateLayout, in.CheckIn)
	if err != nil {
		return nil, invalid("check_in должен быть датой в формате YYYY-MM-DD")
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOut)
	if err != nil {
		return nil, invalid("check_out должен быть датой в формате YYYY-MM-DD")
	}
	if !checkOut.After(checkIn) {
		return nil, invalid("check_out должен быть позже check_in")
	}
	if in.Guests < 1 {
		return nil, invalid("число гостей должно быть не меньше 1")
	}
	if _, err := s.hotels.GetByID(ctx, in.HotelID); err != nil {
		return nil, err
	}

	booking := &model.HotelBooking{
		UserID:   userID,
		HotelID:  in.HotelID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *HotelBookingService) ListMine(ctx context.Context, userID int) ([]model.HotelBookingDetails, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *HotelBookingService) Cancel(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, id, userID)
}
