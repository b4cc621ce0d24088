// Package memory — ограничитель частоты запросов в памяти процесса.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/manish-env/shopify-order-tracking/internal/ports"
)

var _ ports.Throttle = (*SlidingWindow)(nil)

type shard struct {
	mu   sync.Mutex
	hits map[string][]time.Time // клиент → моменты допущенных запросов, по возрастанию
}

// SlidingWindow — скользящее окно на клиента: не более max допущенных запросов за window.
// Клиенты разнесены по шардам, у каждого шарда свой мьютекс.
type SlidingWindow struct {
	max    int
	window time.Duration
	shards []*shard

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSlidingWindow — конструктор. Запускает фоновую очистку неактивных клиентов
// с периодом window; остановка через Close.
func NewSlidingWindow(maxRequests int, window time.Duration, shards int) *SlidingWindow {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if shards <= 0 {
		shards = 1
	}
	sw := &SlidingWindow{
		max:    maxRequests,
		window: window,
		shards: make([]*shard, shards),
		stop:   make(chan struct{}),
	}
	for i := range sw.shards {
		sw.shards[i] = &shard{hits: make(map[string][]time.Time)}
	}

	if window > 0 {
		sw.wg.Add(1)
		go sw.janitor()
	}
	return sw
}

// Admit — допускает запрос клиента в момент now и учитывает его,
// либо отказывает, если за окно уже набралось max запросов. Отказ не учитывается.
func (sw *SlidingWindow) Admit(_ context.Context, clientID string, now time.Time) (bool, error) {
	sh := sw.shardFor(clientID)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	hits := pruneBefore(sh.hits[clientID], now.Add(-sw.window))
	if len(hits) >= sw.max {
		sh.hits[clientID] = hits
		return false, nil
	}
	sh.hits[clientID] = insertSorted(hits, now)
	return true, nil
}

// Close — останавливает фоновую очистку. Повторный вызов безопасен.
func (sw *SlidingWindow) Close() error {
	sw.stopOnce.Do(func() { close(sw.stop) })
	sw.wg.Wait()
	return nil
}
