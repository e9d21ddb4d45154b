package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/onurcolak/blast-tracker/environments"
	"github.com/onurcolak/blast-tracker/internal/domain"
	"github.com/onurcolak/blast-tracker/pkg/logger"
	"github.com/valkey-io/valkey-go"
)

type Client struct {
	client valkey.Client
}

const (
	sentMessageKeyPrefix = "sent_message:"
	sentMessageTTL       = 24 * time.Hour
)

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client}, nil
}

// CacheSentMessage keeps a send for a day so later status checks can find
// its JID and message data by id.
func (c *Client) CacheSentMessage(ctx context.Context, sent *domain.SentMessage) error {
	data, err := json.Marshal(sent)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	key := sentMessageKeyPrefix + sent.MessageID

	err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(data)).Ex(sentMessageTTL).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to cache sent message: %w", err)
	}

	logger.Debugf("Cached message %s -> %s in Redis", sent.MessageID, sent.JID)

	return nil
}

// GetSentMessage returns nil without error when the message is not cached.
func (c *Client) GetSentMessage(ctx context.Context, messageID string) (*domain.SentMessage, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(sentMessageKeyPrefix+messageID).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached message: %w", result.Error())
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached message: %w", err)
	}

	var sent domain.SentMessage
	if err := json.Unmarshal([]byte(data), &sent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &sent, nil
}

func (c *Client) GetAllSentMessages(ctx context.Context) (map[string]*domain.SentMessage, error) {
	pattern := sentMessageKeyPrefix + "*"

	var keys []string
	var cursor uint64
	for {
		result := c.client.Do(ctx, c.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build())
		if result.Error() != nil {
			return nil, fmt.Errorf("failed to scan cache keys: %w", result.Error())
		}

		scanResult, err := result.AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan result: %w", err)
		}

		keys = append(keys, scanResult.Elements...)
		cursor = scanResult.Cursor

		if cursor == 0 {
			break
		}
	}

	result := make(map[string]*domain.SentMessage, len(keys))

	for _, key := range keys {
		messageID := strings.TrimPrefix(key, sentMessageKeyPrefix)

		sent, err := c.GetSentMessage(ctx, messageID)
		if err != nil {
			logger.Warnf("Skipping cached message %q: %v", key, err)
			continue
		}
		if sent == nil {
			// Expired between SCAN and GET.
			continue
		}

		result[messageID] = sent
	}

	return result, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
