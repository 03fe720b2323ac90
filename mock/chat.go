package mock

import (
	"context"

	"github.com/fwojciec/askdocs"
)

var _ askdocs.ChatService = (*ChatService)(nil)

// ChatService is a mock implementation of askdocs.ChatService.
type ChatService struct {
	ChatFn func(ctx context.Context, req *askdocs.ChatRequest) (*askdocs.ChatResult, error)
}

func (s *ChatService) Chat(ctx context.Context, req *askdocs.ChatRequest) (*askdocs.ChatResult, error) {
	return s.ChatFn(ctx, req)
}
