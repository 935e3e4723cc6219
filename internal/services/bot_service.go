package services

import (
	"time"

	"group_order_tracker/internal/redis"
	"group_order_tracker/pkg/discord"
)

// BotService wraps the Discord client and the redis-backed conversation
// state. The webhook handler is stateless between messages, so any command
// that waits for a follow-up reply (the interactive order flow) parks its
// state here with a TTL standing in for the reply timeout.
type BotService interface {
	SendMessage(channelID, content string) error
	StartSession(data *redis.SessionData) error
	GetSession(userID string) (*redis.SessionData, error)
	EndSession(userID string) error
	SetProductMenu(userID string, menu []redis.MenuEntry) error
	GetProductMenu(userID string) ([]redis.MenuEntry, error)
	ClearProductMenu(userID string) error
}

type botService struct {
	client         *discord.Client
	redis          *redis.Client
	sessionTimeout time.Duration
}

func NewBotService(client *discord.Client, redisClient *redis.Client, sessionTimeout time.Duration) BotService {
	return &botService{client: client, redis: redisClient, sessionTimeout: sessionTimeout}
}

func (s *botService) SendMessage(channelID, content string) error {
	return s.client.SendTextMessage(channelID, content)
}

func (s *botService) StartSession(data *redis.SessionData) error {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	return s.redis.SetSession(data.UserID, data, s.sessionTimeout)
}

func (s *botService) GetSession(userID string) (*redis.SessionData, error) {
	return s.redis.GetSession(userID)
}

func (s *botService) EndSession(userID string) error {
	return s.redis.DeleteSession(userID)
}

func (s *botService) SetProductMenu(userID string, menu []redis.MenuEntry) error {
	return s.redis.SetProductMenu(userID, menu, s.sessionTimeout)
}

func (s *botService) GetProductMenu(userID string) ([]redis.MenuEntry, error) {
	return s.redis.GetProductMenu(userID)
}

func (s *botService) ClearProductMenu(userID string) error {
	return s.redis.DeleteProductMenu(userID)
}
