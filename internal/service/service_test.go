package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"safaruz/internal/model"
	"safaruz/internal/repository"
)

func TestReviewService(t *testing.T) {
	repo := &MockReviewRepository{existing: map[model.ReviewTarget]map[int]bool{
		model.ReviewTargetHotel: {5: true},
	}}
	svc := NewReviewService(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ReviewInput
		wantErr error
		invalid bool
	}{
		{name: "valid", input: ReviewInput{Rating: 5, Comment: "great", Type: model.ReviewTargetHotel, TargetID: 5}},
		{name: "rating too high", input: ReviewInput{Rating: 6, Type: model.ReviewTargetHotel, TargetID: 5}, invalid: true},
		{name: "rating zero", input: ReviewInput{Rating: 0, Type: model.ReviewTargetHotel, TargetID: 5}, invalid: true},
		{name: "unknown type", input: ReviewInput{Rating: 3, Type: "planet", TargetID: 5}, invalid: true},
		{name: "missing target", input: ReviewInput{Rating: 3, Type: model.ReviewTargetHotel, TargetID: 6}, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.input)
			var verr *ValidationError
			switch {
			case tt.invalid:
				if !errors.As(err, &verr) {
					t.Errorf("Create() error = %v, want ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Errorf("Create() error = %v", err)
				}
			}
		})
	}

	reviews, err := svc.List(ctx, model.ReviewTargetHotel, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 || reviews[0].Comment != "great" || reviews[0].Username == "" {
		t.Errorf("List() = %+v", reviews)
	}
}

func TestHotelBookingService_Book(t *testing.T) {
	hotels := &MockCatalogRepository[model.Hotel]{items: map[int]model.Hotel{1: {ID: 1, Name: "Hyatt"}}}
	svc := NewHotelBookingService(&MockHotelBookingRepository{}, hotels)

	tests := []struct {
		name    string
		input   HotelBookingInput
		wantErr error
		invalid bool
	}{
		{name: "valid", input: HotelBookingInput{HotelID: 1, CheckIn: "2026-05-01", CheckOut: "2026-05-03", Guests: 2}},
		{name: "bad date", input: HotelBookingInput{HotelID: 1, CheckIn: "01.05.2026", CheckOut: "2026-05-03", Guests: 2}, invalid: true},
		{name: "check_out before check_in", input: HotelBookingInput{HotelID: 1, CheckIn: "2026-05-03", CheckOut: "2026-05-03", Guests: 2}, invalid: true},
		{name: "no guests", input: HotelBookingInput{HotelID: 1, CheckIn: "2026-05-01", CheckOut: "2026-05-03"}, invalid: true},
		{name: "missing hotel", input: HotelBookingInput{HotelID: 2, CheckIn: "2026-05-01", CheckOut: "2026-05-03", Guests: 1}, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), 1, tt.input)
			var verr *ValidationError
			switch {
			case tt.invalid:
				if !errors.As(err, &verr) {
					t.Errorf("Book() error = %v, want ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Book() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Errorf("Book() error = %v", err)
				}
			}
		})
	}
}

func TestCatalogService_InvalidFilter(t *testing.T) {
	repo := &MockCatalogRepository[model.Tour]{listErr: fmt.Errorf("%w: maxPrice должен быть числом", repository.ErrInvalidFilter)}
	svc := NewCatalogService[model.Tour](repo)

	var verr *ValidationError
	if _, err := svc.List(context.Background(), map[string]string{"maxPrice": "x"}); !errors.As(err, &verr) {
		t.Errorf("List() error = %v, want ValidationError", err)
	}
}

type MockChatCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
}

func (m *MockChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.req = req
	return m.resp, m.err
}

func TestAssistantService_Ask(t *testing.T) {
	reply := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Visit Registan."}},
	}}

	tests := []struct {
		name    string
		client  *MockChatCompleter
		prompt  string
		want    string
		wantErr error
		invalid bool
	}{
		{name: "reply", client: &MockChatCompleter{resp: reply}, prompt: "What to see in Samarkand?", want: "Visit Registan."},
		{name: "empty prompt", client: &MockChatCompleter{resp: reply}, prompt: "  ", invalid: true},
		{name: "upstream error", client: &MockChatCompleter{err: errors.New("503")}, prompt: "hi", wantErr: ErrUpstream},
		{name: "no choices", client: &MockChatCompleter{}, prompt: "hi", wantErr: ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssistantService(tt.client, "gpt-4o-mini", zap.NewNop())
			got, err := svc.Ask(context.Background(), tt.prompt)
			var verr *ValidationError
			switch {
			case tt.invalid:
				if !errors.As(err, &verr) {
					t.Errorf("Ask() error = %v, want ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Ask() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil || got != tt.want {
					t.Errorf("Ask() = %q, %v; want %q", got, err, tt.want)
				}
				if len(tt.client.req.Messages) != 2 || tt.client.req.Messages[0].Role != openai.ChatMessageRoleSystem {
					t.Errorf("request messages = %+v", tt.client.req.Messages)
				}
			}
		})
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadService_SaveProfileImage(t *testing.T) {
	dir := t.TempDir()
	users := NewMockUserRepository()
	u := &model.User{Username: "ali", Email: "ali@example.com"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	svc := NewUploadService(dir, users, zap.NewNop())

	t.Run("png", func(t *testing.T) {
		path, err := svc.SaveProfileImage(context.Background(), u.ID, bytes.NewReader(pngHeader))
		if err != nil {
			t.Fatalf("SaveProfileImage() error = %v", err)
		}
		if !strings.HasPrefix(path, PublicUploadPrefix) || !strings.HasSuffix(path, ".png") {
			t.Errorf("path = %q", path)
		}
		if _, err := os.Stat(filepath.Join(dir, strings.TrimPrefix(path, PublicUploadPrefix))); err != nil {
			t.Errorf("file not written: %v", err)
		}
		stored, _ := users.GetByID(context.Background(), u.ID)
		if stored.ProfileImage == nil || *stored.ProfileImage != path {
			t.Errorf("profile_image = %v, want %q", stored.ProfileImage, path)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		var verr *ValidationError
		_, err := svc.SaveProfileImage(context.Background(), u.ID, strings.NewReader("#!/bin/sh\necho hi"))
		if !errors.As(err, &verr) {
			t.Errorf("SaveProfileImage() error = %v, want ValidationError", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		data := append(append([]byte{}, pngHeader...), make([]byte, MaxUploadSize)...)
		var verr *ValidationError
		_, err := svc.SaveProfileImage(context.Background(), u.ID, bytes.NewReader(data))
		if !errors.As(err, &verr) {
			t.Errorf("SaveProfileImage() error = %v, want ValidationError", err)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("%d files in upload dir, oversized file must be removed", len(entries))
		}
	})
}
