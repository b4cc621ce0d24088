package memory

import (
	"hash/fnv"
	"slices"
	"sort"
	"time"
)

// shardFor — шард клиента по FNV-1a хэшу идентификатора.
func (sw *SlidingWindow) shardFor(clientID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return sw.shards[h.Sum32()%uint32(len(sw.shards))]
}

// pruneBefore — отбрасывает отметки строго раньше cutoff. Отметка ровно на границе остаётся в окне.
func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && hits[i].Before(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	if i == len(hits) {
		return nil
	}
	return append(hits[:0], hits[i:]...)
}

// insertSorted — вставляет отметку, сохраняя порядок по времени.
// now берётся до захвата блокировки шарда, поэтому конкурентные запросы клиента приходят не по порядку.
func insertSorted(hits []time.Time, at time.Time) []time.Time {
	if n := len(hits); n == 0 || !at.Before(hits[n-1]) {
		return append(hits, at)
	}
	i := sort.Search(len(hits), func(i int) bool { return hits[i].After(at) })
	return slices.Insert(hits, i, at)
}

// janitor — периодически удаляет клиентов без отметок в текущем окне.
func (sw *SlidingWindow) janitor() {
	defer sw.wg.Done()

	ticker := time.NewTicker(sw.window)
	defer ticker.Stop()

	for {
		select {
		case <-sw.stop:
			return
		case now := <-ticker.C:
			sw.sweep(now)
		}
	}
}

// sweep — один проход очистки по всем шардам.
func (sw *SlidingWindow) sweep(now time.Time) {
	cutoff := now.Add(-sw.window)
	for _, sh := range sw.shards {
		sh.mu.Lock()
		for id, hits := range sh.hits {
			if hits = pruneBefore(hits, cutoff); len(hits) == 0 {
				delete(sh.hits, id)
			} else {
				sh.hits[id] = hits
			}
		}
		sh.mu.Unlock()
	}
}

// clients — число отслеживаемых клиентов; для тестов.
func (sw *SlidingWindow) clients() int {
	n := 0
	for _, sh := range sw.shards {
		sh.mu.Lock()
		n += len(sh.hits)
		sh.mu.Unlock()
	}
	return n
}
