package hashmap

import (
	"github.com/skybi/schools-server/internal/task"
	"sync"
	"time"
)

type expiringEntry[T any] struct {
	raw      T
	inserted time.Time
}

// ExpiringMap represents a thread safe map whose values exist for a specific lifetime.
// Expired values are never returned; they are removed from memory by the cleanup task.
type ExpiringMap[K comparable, V any] struct {
	mtx         sync.RWMutex
	underlying  map[K]*expiringEntry[V]
	lifetime    time.Duration
	now         func() time.Time
	cleanupTask *task.RepeatingTask
}

// NewExpiring creates a new expiring map whose values exist for a specific lifetime.
// Expired values will not be removed from memory before ScheduleCleanupTask is called.
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		underlying: make(map[K]*expiringEntry[V]),
		lifetime:   lifetime,
		now:        time.Now,
	}
}

// ScheduleCleanupTask schedules the task that removes expired values in a specific interval.
// StopCleanupTask has to be called as soon as the map is no longer needed as it would not be garbage collected
// otherwise.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.RemoveExpired()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	obj.mtx.Lock()
	cleanupTask := obj.cleanupTask
	obj.cleanupTask = nil
	obj.mtx.Unlock()

	if cleanupTask != nil {
		cleanupTask.Stop(false)
	}
}

// RemoveExpired removes all expired values and returns how many were removed
func (obj *ExpiringMap[K, V]) RemoveExpired() int {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	removed := 0
	for key, entry := range obj.underlying {
		if obj.expired(entry) {
			delete(obj.underlying, key)
			removed++
		}
	}
	return removed
}

// Size returns the amount of stored key-value pairs, including expired ones that were not cleaned up yet
func (obj *ExpiringMap[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return len(obj.underlying)
}

// Lookup returns the value assigned to the given key and a boolean indicating if a non-expired value was found
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	entry, ok := obj.underlying[key]
	if !ok || obj.expired(entry) {
		var zero V
		return zero, false
	}
	return entry.raw, true
}

// Set sets a key-value pair and resets its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying[key] = &expiringEntry[V]{
		raw:      value,
		inserted: obj.now(),
	}
}

// Unset deletes the value assigned to given key
func (obj *ExpiringMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.underlying, key)
}

// Clear clears the whole map
func (obj *ExpiringMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying = make(map[K]*expiringEntry[V])
}

func (obj *ExpiringMap[K, V]) expired(entry *expiringEntry[V]) bool {
	return obj.now().Sub(entry.inserted) > obj.lifetime
}
