package service

import (
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	assistantTimeout = 30 * time.Second

	assistantInstruction = "You are SafarUz, a travel assistant for Uzbekistan. " +
		"Help tourists plan trips to Tashkent, Samarkand, Bukhara, Khiva and other cities: " +
		"sights, hotels, food, transport, visas and local customs. Answer briefly and in the language of the question."
)

// ChatCompleter - часть *openai.Client, выполняющая chat completion.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AssistantService передаёт вопрос пользователя во внешний completion API. Состояние не хранится.
type AssistantService struct {
	client ChatCompleter
	model  string
	logger *zap.Logger
}

func NewAssistantService(client ChatCompleter, model string, logger *zap.Logger) *AssistantService {
	return &AssistantService{client: client, model: model, logger: logger}
}

// Ask возвращает текст первого варианта ответа. Любой сбой внешнего API даёт ErrUpstream.
func (s *AssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", invalid("укажите prompt")
	}
	if s.client == nil {
		return "", ErrUpstream
	}

	ctx, cancel := context.WithTimeout(ctx, assistantTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error("assistant request failed", zap.Error(err))
		return "", ErrUpstream
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("assistant returned no choices", zap.String("id", resp.ID))
		return "", ErrUpstream
	}
	return resp.Choices[0].Message.Content, nil
}
