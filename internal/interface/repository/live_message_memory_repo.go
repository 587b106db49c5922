package repository

import (
	"context"
	"sync"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
)

// MemoryLiveMessageRepository is the default registry: a mutex-guarded map
// with TTL eviction, so long-running deployments with many recipients do not
// grow without bound.
type MemoryLiveMessageRepository struct {
	mu      sync.Mutex
	entries map[int64]*entity.LiveMessage
	ttl     time.Duration
	done    chan struct{}
}

// NewMemoryLiveMessageRepository creates a new in-memory registry. Entries
// older than ttl are evicted by a background janitor.
func NewMemoryLiveMessageRepository(ttl time.Duration) *MemoryLiveMessageRepository {
	r := &MemoryLiveMessageRepository{
		entries: make(map[int64]*entity.LiveMessage),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go r.janitor()
	return r
}

var _ repository.LiveMessageRepository = (*MemoryLiveMessageRepository)(nil)

// Get returns the tracked live message for a recipient, nil when absent or
// expired.
func (r *MemoryLiveMessageRepository) Get(ctx context.Context, recipientID int64) (*entity.LiveMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.entries[recipientID]
	if !ok {
		return nil, nil
	}
	if time.Since(msg.UpdatedAt) > r.ttl {
		delete(r.entries, recipientID)
		return nil, nil
	}

	copied := *msg
	return &copied, nil
}

// Put registers or refreshes the live message for a recipient.
func (r *MemoryLiveMessageRepository) Put(ctx context.Context, recipientID int64, messageID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[recipientID] = &entity.LiveMessage{
		RecipientID: recipientID,
		MessageID:   messageID,
		UpdatedAt:   time.Now(),
	}
	return nil
}

// Delete drops the entry for a recipient.
func (r *MemoryLiveMessageRepository) Delete(ctx context.Context, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, recipientID)
	return nil
}

// Close stops the janitor.
func (r *MemoryLiveMessageRepository) Close() {
	close(r.done)
}

func (r *MemoryLiveMessageRepository) janitor() {
	interval := r.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.evictExpired()
		}
	}
}

func (r *MemoryLiveMessageRepository) evictExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, msg := range r.entries {
		if time.Since(msg.UpdatedAt) > r.ttl {
			delete(r.entries, id)
		}
	}
}
