// Package notifier рассылает ежедневное напоминание всем известным аккаунтам.
package notifier

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	reminderText = "Reminder: you have an escrow account with us. " +
		"Check your balance with /balance or open a deal through the main menu."

	defaultSendWorkers uint = 5
	defaultListTimeout      = 10 * time.Second
)

type Accounts interface {
	AllChatIDs(ctx context.Context) ([]int64, error)
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier раз в сутки, в настроенное время UTC, отправляет фиксированное
// напоминание каждому аккаунту. Доставка best-effort: ошибки по отдельным
// получателям логируются и не повторяются.
type Notifier struct {
	accounts    Accounts
	sender      Sender
	broadcastAt string
	sendWorkers uint
	l           *logrus.Entry
}

func New(accounts Accounts, sender Sender, broadcastAt string, l *logrus.Logger) *Notifier {
	return &Notifier{
		accounts:    accounts,
		sender:      sender,
		broadcastAt: broadcastAt,
		sendWorkers: defaultSendWorkers,
		l:           l.WithField("component", "notifier"),
	}
}

// SetSendWorkers устанавливает кол-во воркеров, отправляющих напоминания.
func (n *Notifier) SetSendWorkers(workers uint) *Notifier {
	if workers > 0 {
		n.sendWorkers = workers
	}
	return n
}

// Run ждет следующего времени рассылки и запускает ее, по кругу до отмены
// контекста.
func (n *Notifier) Run(ctx context.Context) {
	n.l.WithField("broadcastAt", n.broadcastAt).Info("Starting")

	for {
		wait := untilNext(time.Now().UTC(), n.broadcastAt)
		select {
		case <-ctx.Done():
			n.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(wait):
		}

		if err := n.Broadcast(ctx); err != nil {
			n.l.WithError(err).Error("broadcast")
		}
	}
}

// Broadcast читает все известные аккаунты и рассылает напоминание через пул
// воркеров (fan-out, результатов не собираем - доставка fire-and-forget).
func (n *Notifier) Broadcast(ctx context.Context) error {
	listCtx, cancel := context.WithTimeout(ctx, defaultListTimeout)
	defer cancel()

	chatIDs, err := n.accounts.AllChatIDs(listCtx)
	if err != nil {
		return errors.Wrap(err, "listing accounts for broadcast")
	}

	taskCh := make(chan int64, len(chatIDs))
	for _, chatID := range chatIDs {
		taskCh <- chatID
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(n.sendWorkers)) //nolint:gosec

	for range n.sendWorkers {
		go n.worker(ctx, wg, taskCh)
	}
	wg.Wait()

	n.l.WithField("recipients", len(chatIDs)).Info("broadcast finished")
	return nil
}

func (n *Notifier) worker(ctx context.Context, wg *sync.WaitGroup, taskCh <-chan int64) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case chatID, ok := <-taskCh:
			if !ok {
				return
			}
			if _, sendErr := n.sender.Send(tgbotapi.NewMessage(chatID, reminderText)); sendErr != nil {
				n.l.WithError(sendErr).WithField("chatID", chatID).Warn("send reminder")
			}
		}
	}
}

// untilNext возвращает интервал до ближайшего наступления времени at (HH:MM,
// UTC). Невалидное значение времени откатывается на 09:00.
func untilNext(now time.Time, at string) time.Duration {
	parsed, err := time.Parse("15:04", at)
	if err != nil {
		parsed, _ = time.Parse("15:04", "09:00")
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
