// Package session holds the in-process session registry used in credential
// mode. It enforces the max-one-session invariant: binding a username
// invalidates whatever session that username held before.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/durgamdileep/product-auth-api/internal/core/domain"
)

const shardCount = 32

type entry struct {
	username  string
	principal *domain.Principal
	createdAt time.Time
}

type userShard struct {
	mu sync.RWMutex
	m  map[string]string // username -> current session id
}

type idShard struct {
	mu sync.RWMutex
	m  map[string]entry // session id -> entry
}

// Registry is a sharded in-memory session store. Sharding keeps writes for
// unrelated users off each other's locks; reads take shard RLocks only.
type Registry struct {
	users [shardCount]userShard
	ids   [shardCount]idShard
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.users {
		r.users[i].m = make(map[string]string)
		r.ids[i].m = make(map[string]entry)
	}
	return r
}

// Bind issues a fresh session id for the principal. Any prior session for
// the same username is invalidated at this moment.
func (r *Registry) Bind(_ context.Context, principal *domain.Principal) (string, bool, error) {
	id, err := newSessionID()
	if err != nil {
		return "", false, err
	}

	// Publish the entry before pointing the username at it so a resolve of
	// the new id never misses.
	is := r.idShard(id)
	is.mu.Lock()
	is.m[id] = entry{username: principal.Username, principal: principal, createdAt: time.Now()}
	is.mu.Unlock()

	us := r.userShard(principal.Username)
	us.mu.Lock()
	old := us.m[principal.Username]
	us.m[principal.Username] = id
	us.mu.Unlock()

	if old != "" {
		r.dropID(old)
	}
	return id, old != "", nil
}

// Resolve returns the principal bound to id, or domain.ErrSessionInvalid.
func (r *Registry) Resolve(_ context.Context, id string) (*domain.Principal, error) {
	is := r.idShard(id)
	is.mu.RLock()
	e, ok := is.m[id]
	is.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	return e.principal, nil
}

// Invalidate removes a session. Unknown ids are a no-op.
func (r *Registry) Invalidate(_ context.Context, id string) error {
	is := r.idShard(id)
	is.mu.Lock()
	e, ok := is.m[id]
	delete(is.m, id)
	is.mu.Unlock()
	if !ok {
		return nil
	}

	us := r.userShard(e.username)
	us.mu.Lock()
	if us.m[e.username] == id {
		delete(us.m, e.username)
	}
	us.mu.Unlock()
	return nil
}

func (r *Registry) dropID(id string) {
	is := r.idShard(id)
	is.mu.Lock()
	delete(is.m, id)
	is.mu.Unlock()
}

func (r *Registry) userShard(username string) *userShard {
	return &r.users[shardIndex(username)]
}

func (r *Registry) idShard(id string) *idShard {
	return &r.ids[shardIndex(id)]
}

// shardIndex maps a key deterministically to a shard.
func shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
