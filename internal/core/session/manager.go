package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"cart-normalizer/internal/infrastructure/config"
	"cart-normalizer/internal/pkg/common"
)

// Manager 點餐會話管理器。
// 持有所有進行中的會話，並定期清掉閒置過久的會話。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*VoiceSession

	idleTimeout     time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// NewManager 建立會話管理器並啟動清理協程
func NewManager(cfg config.SessionConfig) *Manager {
	m := &Manager{
		sessions:        make(map[string]*VoiceSession),
		idleTimeout:     cfg.IdleTimeout,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Create 建立新會話並納入管理
func (m *Manager) Create(menuName string) *VoiceSession {
	s := NewVoiceSession(common.GenerateUUID(), menuName)

	m.mu.Lock()
	m.sessions[s.ID] = s
	total := len(m.sessions)
	m.mu.Unlock()

	common.LogInfo("建立點餐會話",
		zap.String("會話", s.ID),
		zap.String("菜單", menuName),
		zap.Int("會話總數", total))
	return s
}

// Get 取得會話
func (m *Manager) Get(id string) (*VoiceSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete 移除會話
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Reset 清除所有會話
func (m *Manager) Reset() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := len(m.sessions)
	m.sessions = make(map[string]*VoiceSession)
	return count
}

// Count 進行中的會話數量
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close 停止清理協程
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stopCleanup)
	})
}

// cleanupLoop 定期移除閒置超時的會話
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupIdle()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) cleanupIdle() {
	cutoff := time.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	var removed []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if len(removed) > 0 {
		common.LogInfo("清理閒置會話",
			zap.Int("清除數", len(removed)),
			zap.Int("剩餘數", remaining))
	}
}
