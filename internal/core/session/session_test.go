package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-normalizer/internal/infrastructure/config"
)

// TestProcessTranscriptAddAndMerge 點餐語句加入品項，重複點單累加數量
func TestProcessTranscriptAddAndMerge(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	_, snap := s.ProcessTranscript("I want a chocolate donut with sprinkles")
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "DON002", snap.Items[0].SKU)
	assert.Equal(t, 1, snap.Items[0].Quantity)

	_, snap = s.ProcessTranscript("can I get another chocolate donut with sprinkles")
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.InDelta(t, 2.18, snap.Total, 1e-9)
}

// TestProcessTranscriptRemove 移除語句更新購物車
func TestProcessTranscriptRemove(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	s.ProcessTranscript("I want two black coffees")
	_, snap := s.ProcessTranscript("remove one coffee")

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
}

// TestProcessTranscriptCancel 取消語句清空購物車
func TestProcessTranscriptCancel(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	s.ProcessTranscript("I want a psl")
	message, snap := s.ProcessTranscript("cancel that")

	assert.Equal(t, "Order cancelled", message)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.Total)
}

// TestProcessTranscriptUnknownFallsBackToAdd 聽不懂的語句也嘗試解析品項
func TestProcessTranscriptUnknownFallsBackToAdd(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	_, snap := s.ProcessTranscript("umm a raspberry donut maybe")
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "DON003", snap.Items[0].SKU)
}

// TestProcessAgentTextReplacesCart 助理複述最終狀態時整台購物車被取代
func TestProcessAgentTextReplacesCart(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	s.ProcessTranscript("I want a black coffee and a psl")
	snap := s.ProcessAgentText(
		"I've removed the coffee from your order, so now you just have a pumpkin spice latte.")

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "COF002", snap.Items[0].SKU)
}

// TestProcessAgentTextNonFinalKeepsCart 一般的助理回覆不動購物車
func TestProcessAgentTextNonFinalKeepsCart(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	s.ProcessTranscript("I want a black coffee")
	snap := s.ProcessAgentText("Sure, one coffee coming right up!")

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "COF001", snap.Items[0].SKU)
}

// TestConfirmOrder 確認訂單寫入歷史並清空購物車
func TestConfirmOrder(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	s.ProcessTranscript("I want two medium black coffees")
	order, err := s.ConfirmOrder()

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "confirmed", order.Status)
	assert.Len(t, order.OrderID, 8)
	assert.InDelta(t, 4.18, order.Total, 1e-9)

	assert.Empty(t, s.CartSnapshot().Items)
	require.Len(t, s.History(), 1)
}

// TestConfirmOrderEmptyCart 空購物車不能確認
func TestConfirmOrderEmptyCart(t *testing.T) {
	s := NewVoiceSession("test-session", "small")

	order, err := s.ConfirmOrder()
	assert.Error(t, err)
	assert.Nil(t, order)
}

// TestUpdateItemQuantity 調整數量與歸零移除
func TestUpdateItemQuantity(t *testing.T) {
	s := NewVoiceSession("test-session", "small")
	s.ProcessTranscript("I want a chocolate donut")

	snap, err := s.UpdateItemQuantity(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Items[0].Quantity)

	snap, err = s.UpdateItemQuantity(0, 0)
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	_, err = s.UpdateItemQuantity(3, 1)
	assert.Error(t, err)
}

// TestManagerLifecycle 建立、查詢、刪除與重置會話
func TestManagerLifecycle(t *testing.T) {
	m := NewManager(config.SessionConfig{
		CleanupInterval: time.Minute,
		IdleTimeout:     time.Hour,
	})
	defer m.Close()

	s := m.Create("large")
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "Large Menu", s.Menu().Name)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("no-such-id")
	assert.False(t, ok)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Count())

	m.Create("small")
	m.Create("small")
	assert.Equal(t, 2, m.Reset())
	assert.Equal(t, 0, m.Count())
}

// TestManagerCleanupIdle 閒置超時的會話會被清除
func TestManagerCleanupIdle(t *testing.T) {
	m := NewManager(config.SessionConfig{
		CleanupInterval: time.Hour,
		IdleTimeout:     10 * time.Millisecond,
	})
	defer m.Close()

	m.Create("small")
	time.Sleep(30 * time.Millisecond)
	m.cleanupIdle()

	assert.Equal(t, 0, m.Count())
}
