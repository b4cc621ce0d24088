package ports

import (
	"context"
	"time"
)

// Throttle — ограничение частоты запросов по идентификатору клиента (скользящее окно).
type Throttle interface {
	// Admit — true, если запрос допущен; допущенный запрос учитывается в окне.
	Admit(ctx context.Context, clientID string, now time.Time) (bool, error)
	// Close — освобождает состояние/ресурсы при остановке сервиса.
	Close() error
}
