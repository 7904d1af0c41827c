package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("autosave buffer closed")

const (
	defaultCommitTimeout = 10 * time.Second
	flushConcurrency     = 8
)

// CommitFunc persists the latest value for key.
type CommitFunc[K comparable, V any] func(ctx context.Context, key K, value V) error

// Buffer holds the latest value per key and commits it once the key has been idle,
// or when flushed. At most one commit per key is in flight at any time; values written
// during a commit are committed afterwards.
type Buffer[K comparable, V any] struct {
	idle          time.Duration
	commitTimeout time.Duration
	commit        CommitFunc[K, V]

	lock    sync.Mutex
	entries map[K]*entry[V]
	closed  bool
}

type entry[V any] struct {
	value   V
	version uint64
	dirty   bool
	timer   *time.Timer
	// inflight is a one-slot semaphore held while committing
	inflight chan struct{}
}

type Option[K comparable, V any] func(*Buffer[K, V])

// WithCommitTimeout bounds commits started by the idle timer.
func WithCommitTimeout[K comparable, V any](d time.Duration) Option[K, V] {
	return func(b *Buffer[K, V]) {
		b.commitTimeout = d
	}
}

func New[K comparable, V any](idle time.Duration, commit CommitFunc[K, V], options ...Option[K, V]) (*Buffer[K, V], error) {
	if commit == nil {
		return nil, errors.New("[autosave.New] commit func is required")
	}
	if idle <= 0 {
		return nil, errors.New("[autosave.New] idle timeout must be positive")
	}
	b := &Buffer[K, V]{
		idle:          idle,
		commitTimeout: defaultCommitTimeout,
		commit:        commit,
		entries:       make(map[K]*entry[V]),
	}
	for _, opt := range options {
		opt(b)
	}
	return b, nil
}

// Put replaces the buffered value for key and restarts its idle timer.
func (b *Buffer[K, V]) Put(key K, value V) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.closed {
		return ErrClosed
	}

	e, ok := b.entries[key]
	if !ok {
		e = &entry[V]{inflight: make(chan struct{}, 1)}
		b.entries[key] = e
	}
	e.value = value
	e.version++
	e.dirty = true
	b.arm(key, e)
	return nil
}

// arm restarts key's idle timer. The caller holds b.lock.
func (b *Buffer[K, V]) arm(key K, e *entry[V]) {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(b.idle, func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.commitTimeout)
		defer cancel()
		if err := b.Flush(ctx, key); err != nil {
			log.Err(err).Interface("key", key).Msg("autosave commit failed")
		}
	})
}

// Pending returns the uncommitted value for key, if any.
func (b *Buffer[K, V]) Pending(key K) (V, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	e, ok := b.entries[key]
	if !ok || !e.dirty {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Len is the number of keys with uncommitted values.
func (b *Buffer[K, V]) Len() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	n := 0
	for _, e := range b.entries {
		if e.dirty {
			n++
		}
	}
	return n
}

// Flush commits key's buffered value now, waiting for any in-flight commit of the same key.
// A failed commit leaves the value buffered and retries it after the idle delay, until the
// buffer is closed.
func (b *Buffer[K, V]) Flush(ctx context.Context, key K) error {
	b.lock.Lock()
	e, ok := b.entries[key]
	b.lock.Unlock()
	if !ok {
		return nil
	}

	select {
	case e.inflight <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-e.inflight }()

	b.lock.Lock()
	if !e.dirty {
		b.lock.Unlock()
		return nil
	}
	value, version := e.value, e.version
	e.dirty = false
	if e.timer != nil {
		e.timer.Stop()
	}
	b.lock.Unlock()

	err := b.commit(ctx, key, value)

	b.lock.Lock()
	defer b.lock.Unlock()
	if err != nil {
		if e.version == version {
			e.dirty = true
			if !b.closed {
				b.arm(key, e)
			}
		}
		return err
	}
	if !e.dirty && b.entries[key] == e {
		delete(b.entries, key)
	}
	return nil
}

// FlushAll commits every buffered value and returns the first error.
func (b *Buffer[K, V]) FlushAll(ctx context.Context) error {
	b.lock.Lock()
	keys := make([]K, 0, len(b.entries))
	for k, e := range b.entries {
		if e.dirty {
			keys = append(keys, k)
		}
	}
	b.lock.Unlock()

	var g errgroup.Group
	g.SetLimit(flushConcurrency)
	for _, k := range keys {
		g.Go(func() error {
			return b.Flush(ctx, k)
		})
	}
	return g.Wait()
}

// Close stops accepting values, cancels idle timers and flushes what is buffered.
func (b *Buffer[K, V]) Close(ctx context.Context) error {
	b.lock.Lock()
	b.closed = true
	for _, e := range b.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	b.lock.Unlock()
	return b.FlushAll(ctx)
}
