package notifier

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/escrow-bot/internal/logger"
)

type stubAccounts struct {
	ids []int64
	err error
}

func (s *stubAccounts) AllChatIDs(_ context.Context) ([]int64, error) {
	return s.ids, s.err
}

// recordingSender потокобезопасен: воркеры рассылки шлют конкурентно.
type recordingSender struct {
	mu      sync.Mutex
	chatIDs []int64
	texts   []string
	sendErr error
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.chatIDs = append(r.chatIDs, msg.ChatID)
		r.texts = append(r.texts, msg.Text)
	}
	return tgbotapi.Message{}, r.sendErr
}

func TestBroadcast_SendsToAllAccounts(t *testing.T) {
	accounts := &stubAccounts{ids: []int64{1, 2, 3, 4, 5}}
	sender := &recordingSender{}

	n := New(accounts, sender, "09:00", logger.New(io.Discard)).SetSendWorkers(2)

	err := n.Broadcast(t.Context())
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, sender.chatIDs)
	for _, text := range sender.texts {
		assert.Equal(t, reminderText, text)
	}
}

func TestBroadcast_ListError(t *testing.T) {
	accounts := &stubAccounts{err: errors.New("connection refused")}
	sender := &recordingSender{}

	n := New(accounts, sender, "09:00", logger.New(io.Discard))

	err := n.Broadcast(t.Context())
	require.Error(t, err)
	assert.Empty(t, sender.chatIDs)
}

func TestBroadcast_SendFailuresAreBestEffort(t *testing.T) {
	accounts := &stubAccounts{ids: []int64{1, 2, 3}}
	sender := &recordingSender{sendErr: errors.New("blocked by user")}

	n := New(accounts, sender, "09:00", logger.New(io.Discard))

	// ошибки отдельных получателей не валят рассылку.
	err := n.Broadcast(t.Context())
	require.NoError(t, err)
	assert.Len(t, sender.chatIDs, 3)
}

func TestUntilNext(t *testing.T) {
	noon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   string
		want time.Duration
	}{
		{name: "later today", at: "15:30", want: 3*time.Hour + 30*time.Minute},
		{name: "tomorrow", at: "09:00", want: 21 * time.Hour},
		{name: "exactly now rolls to tomorrow", at: "12:00", want: 24 * time.Hour},
		{name: "invalid value falls back to 09:00", at: "garbage", want: 21 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, untilNext(noon, tt.at))
		})
	}
}
