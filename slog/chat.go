package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askdocs"
)

// Ensure LoggingChatService implements askdocs.ChatService.
var _ askdocs.ChatService = (*LoggingChatService)(nil)

// LoggingChatService wraps a ChatService with request logging.
type LoggingChatService struct {
	next   askdocs.ChatService
	logger *slog.Logger
}

// NewLoggingChatService creates a new LoggingChatService.
func NewLoggingChatService(next askdocs.ChatService, logger *slog.Logger) *LoggingChatService {
	return &LoggingChatService{next: next, logger: logger}
}

// Chat delegates to the wrapped service and logs the operation.
func (s *LoggingChatService) Chat(ctx context.Context, req *askdocs.ChatRequest) (result *askdocs.ChatResult, err error) {
	defer func(begin time.Time) {
		sources := 0
		if result != nil {
			sources = len(result.ScrapedURLs)
		}
		s.logger.Info("chat",
			"query_len", len(req.Query),
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Chat(ctx, req)
}
