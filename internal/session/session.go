// Package session stores the per-chat position in the setup and editing
// dialog.
package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

var ErrNotFound = errors.New("session not found")

// Step 当前对话在等待哪一类输入
type Step int

const (
	Idle Step = iota
	AwaitingName
	AwaitingTag
	AwaitingPersonality
	AwaitingServices
	AwaitingPostType
	AwaitingExample
	AwaitingTopic
	EditingName
	EditingTag
	EditingPersonality
	EditingServices
	RenamingPostType
	EditingExample
)

var stepNames = [...]string{
	Idle:                "idle",
	AwaitingName:        "awaiting_name",
	AwaitingTag:         "awaiting_tag",
	AwaitingPersonality: "awaiting_personality",
	AwaitingServices:    "awaiting_services",
	AwaitingPostType:    "awaiting_post_type",
	AwaitingExample:     "awaiting_example",
	AwaitingTopic:       "awaiting_topic",
	EditingName:         "editing_name",
	EditingTag:          "editing_tag",
	EditingPersonality:  "editing_personality",
	EditingServices:     "editing_services",
	RenamingPostType:    "renaming_post_type",
	EditingExample:      "editing_example",
}

func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// State 一个会话的对话状态。PostType 是当前选中的帖子类型，
// ExampleIndex 仅在 EditingExample 时有意义
type State struct {
	Step         Step   `json:"step"`
	PostType     string `json:"post_type,omitempty"`
	ExampleIndex int    `json:"example_index,omitempty"`
}

// Store keeps one State per chat.
type Store interface {
	// Get returns ErrNotFound when the chat has no state.
	Get(ctx context.Context, chatID int64) (State, error)
	Put(ctx context.Context, chatID int64, st State) error
	Clear(ctx context.Context, chatID int64) error
}

// MemoryStore is a Store for a single process.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[int64]State{}}
}

func (m *MemoryStore) Get(_ context.Context, chatID int64) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[chatID]
	if !ok {
		return State{}, ErrNotFound
	}
	return st, nil
}

func (m *MemoryStore) Put(_ context.Context, chatID int64, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = st
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
	return nil
}
