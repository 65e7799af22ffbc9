package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omarKhan56/MuseBot/internal/model"
)

// Session holds one visitor's conversation: the transcript, the dialog
// state and the partially filled booking draft.  Sessions are ephemeral;
// they are reset on cancellation and discarded when the draft hands off
// to the structured form.
type Session struct {
	ID       string              `json:"id"`
	State    State               `json:"state"`
	Draft    Draft               `json:"draft"`
	Messages []model.ChatMessage `json:"messages"`
}

// NewSession returns an empty session in the IDLE state.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateIdle}
}

// Append adds one message to the transcript.
func (s *Session) Append(role, content string, at time.Time) {
	s.Messages = append(s.Messages, model.ChatMessage{Role: role, Content: content, Timestamp: at})
}

// Store persists chat sessions between turns.  Get returns (nil, nil)
// when the session does not exist.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}

// sessionTTL bounds how long an abandoned conversation lingers.
const sessionTTL = 30 * time.Minute

// NewStore returns a Redis-backed store when a client is available and an
// in-process store otherwise, mirroring how the rest of the application
// degrades gracefully without Redis.
func NewStore(rdb *redis.Client) Store {
	if rdb == nil {
		return NewMemoryStore()
	}
	return &RedisStore{rdb: rdb, ttl: sessionTTL}
}

// RedisStore keeps sessions in Redis with a rolling TTL, so chat survives
// process restarts and works across replicas.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func sessionKey(id string) string { return "chat:sess:" + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// MemoryStore is the fallback store used when Redis is unavailable.  One
// session handles one utterance at a time, but different sessions may be
// served concurrently, hence the mutex.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers never mutate shared state in place.
	out := *sess
	out.Messages = append([]model.ChatMessage(nil), sess.Messages...)
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.Messages = append([]model.ChatMessage(nil), sess.Messages...)
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
