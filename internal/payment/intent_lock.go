package payment

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const lockTTL = 15 * time.Minute

// IntentLock держит краткоживущий замок на создание intent'а по бронированию,
// чтобы параллельные запросы не плодили дубли в шлюзе.
type IntentLock struct {
	client *redis.Client
}

func NewIntentLock(client *redis.Client) *IntentLock {
	return &IntentLock{client: client}
}

func (l *IntentLock) key(bookingID uuid.UUID) string {
	return "payment_intent_lock:" + bookingID.String()
}

// Acquire пытается взять замок; false — intent по бронированию уже в работе.
func (l *IntentLock) Acquire(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, l.key(bookingID), 1, lockTTL).Result()
}

// Release снимает замок. Отсутствие ключа не ошибка.
func (l *IntentLock) Release(ctx context.Context, bookingID uuid.UUID) error {
	err := l.client.Del(ctx, l.key(bookingID)).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
