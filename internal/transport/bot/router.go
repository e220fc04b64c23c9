package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/escrow-bot/internal/service"
	"github.com/fsdevblog/escrow-bot/internal/transport/bot/dialog"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// DefaultTypingDelay косметическая пауза после chat action "typing"
	// перед отправкой ряда статических ответов.
	DefaultTypingDelay = 1500 * time.Millisecond
)

type Wallets struct {
	BTC  string
	ETH  string
	USDT string
}

type RouterArgs struct {
	Sender      Sender
	Ledger      LedgerServicer
	Access      AccessChecker
	Logger      *logrus.Logger
	Wallets     Wallets
	TypingDelay time.Duration
}

// Router разбирает входящие апдейты Telegram: команды, callback-кнопки и
// текстовые реплики внутри активных диалогов операторов.
type Router struct {
	sender      Sender
	ledger      LedgerServicer
	access      AccessChecker
	dialogs     *dialog.Manager
	wallets     Wallets
	typingDelay time.Duration
	l           *logrus.Entry
}

func NewRouter(args RouterArgs) *Router {
	return &Router{
		sender:      args.Sender,
		ledger:      args.Ledger,
		access:      args.Access,
		dialogs:     dialog.NewManager(),
		wallets:     args.Wallets,
		typingDelay: args.TypingDelay,
		l:           args.Logger.WithField("component", "bot"),
	}
}

func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		updatesProcessed.WithLabelValues("callback").Inc()
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		updatesProcessed.WithLabelValues("message").Inc()
		r.handleMessage(ctx, update.Message)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch strings.ToLower(text) {
	case "/start":
		r.sendWithTyping(chatID, textWelcome, markup(mainMenuKeyboard()))
	case "/balance":
		r.replyBalance(ctx, chatID)
	default:
		// Текст без команды интересен только как реплика в активном диалоге
		// оператора, все остальное молча игнорируем.
		if r.dialogs.Active(chatID) {
			r.handleDialogReply(ctx, chatID, text)
		}
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := r.sender.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		r.l.WithError(err).Warn("answer callback query")
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case CallbackDeposit:
		text := fmt.Sprintf(textDepositInstructions, r.wallets.BTC, r.wallets.ETH, r.wallets.USDT)
		r.sendWithTyping(chatID, text, nil)
	case CallbackBalance:
		r.replyBalance(ctx, chatID)
	case CallbackPolicy:
		r.sendWithTyping(chatID, textPolicy, nil)
	case CallbackMainMenu:
		r.send(chatID, textWelcome, markup(mainMenuKeyboard()))
	case CallbackRelease:
		r.sendWithTyping(chatID, textRelease, nil)
	case CallbackRefund:
		r.sendWithTyping(chatID, textRefundInstructions, nil)
	case CallbackContactUs:
		r.send(chatID, textContactUs, nil)
	case CallbackPaymentSupport:
		r.send(chatID, textPaymentSupport, nil)
	case CallbackAdminPanel:
		if !r.authorize(chatID) {
			return
		}
		r.send(chatID, textAdminPanel, markup(adminKeyboard()))
	case CallbackApproveDeposit:
		if !r.authorize(chatID) {
			return
		}
		r.dialogs.Start(chatID, dialog.FlowApproveDeposit)
		r.send(chatID, textEnterTargetID, nil)
	case CallbackAdjustBalance:
		if !r.authorize(chatID) {
			return
		}
		r.dialogs.Start(chatID, dialog.FlowAdjustBalance)
		r.send(chatID, textEnterTargetID, nil)
	case CallbackReviewRefunds:
		if !r.authorize(chatID) {
			return
		}
		r.replyPendingRefunds(ctx, chatID)
	default:
		r.l.WithField("data", cb.Data).Debug("unknown callback id, ignoring")
	}
}

// authorize пропускает только операторов. Отказ - фиксированный текст без
// каких-либо побочных эффектов: диалог не открывается, хранилище не трогаем.
func (r *Router) authorize(chatID int64) bool {
	if r.access.IsAdmin(chatID) {
		return true
	}
	authRejections.Inc()
	r.send(chatID, textNotAuthorized, nil)
	return false
}

func (r *Router) replyBalance(ctx context.Context, chatID int64) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultServiceTimeout)
	defer cancel()

	account, err := r.ledger.ResolveAccount(reqCtx, chatID)
	if err != nil {
		// недоступность базы нельзя выдавать за нулевой баланс.
		r.l.WithError(err).WithField("chatID", chatID).Error("resolve account")
		r.send(chatID, textStoreFailure, nil)
		return
	}
	r.send(chatID, fmt.Sprintf(textBalance, account.Balance.StringFixed(2)), markup(balanceKeyboard()))
}

func (r *Router) replyPendingRefunds(ctx context.Context, chatID int64) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultServiceTimeout)
	defer cancel()

	requests, err := r.ledger.PendingRefunds(reqCtx)
	if err != nil {
		r.l.WithError(err).Error("list pending refunds")
		r.send(chatID, textStoreFailure, nil)
		return
	}
	if len(requests) == 0 {
		r.send(chatID, textNoPendingRefunds, nil)
		return
	}

	var b strings.Builder
	b.WriteString("Pending refund requests:\n")
	for _, request := range requests {
		reason := request.Reason
		if reason == "" {
			reason = "no reason given"
		}
		fmt.Fprintf(&b, textPendingRefundItem+"\n", request.ID, request.ChatID, request.Amount.StringFixed(2), reason)
	}
	r.send(chatID, b.String(), nil)
}

func (r *Router) handleDialogReply(ctx context.Context, operatorID int64, text string) {
	result := r.dialogs.Advance(operatorID, text)

	switch result.Outcome {
	case dialog.OutcomePromptOperation:
		r.send(operatorID, textEnterOperation, nil)
	case dialog.OutcomePromptAmount:
		r.send(operatorID, textEnterAmount, nil)
	case dialog.OutcomeInvalidTargetID:
		dialogOutcomes.WithLabelValues("aborted").Inc()
		r.send(operatorID, textInvalidTargetID, nil)
	case dialog.OutcomeInvalidOperation:
		dialogOutcomes.WithLabelValues("aborted").Inc()
		r.send(operatorID, textInvalidOperation, nil)
	case dialog.OutcomeInvalidAmount:
		dialogOutcomes.WithLabelValues("aborted").Inc()
		r.send(operatorID, textInvalidAmount, nil)
	case dialog.OutcomeApply:
		r.applyAdjustment(ctx, operatorID, result.Apply)
	case dialog.OutcomeNone:
		// диалог успел завершиться, реплика уже ничья.
	}
}

func (r *Router) applyAdjustment(ctx context.Context, operatorID int64, apply *dialog.Apply) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultServiceTimeout)
	defer cancel()

	account, err := r.ledger.AdjustBalance(reqCtx, service.AdjustBalanceArgs{
		ChatID:  apply.TargetID,
		ActorID: operatorID,
		Delta:   apply.Delta,
	})
	if err != nil {
		dialogOutcomes.WithLabelValues("failed").Inc()
		r.l.WithError(err).WithField("targetID", apply.TargetID).Error("adjust balance")
		r.send(operatorID, textStoreFailure, nil)
		return
	}
	dialogOutcomes.WithLabelValues("applied").Inc()

	r.send(operatorID, fmt.Sprintf(textAdjustConfirmation, apply.TargetID, account.Balance.StringFixed(2)), nil)

	// уведомляем и того, чей баланс изменился.
	if apply.Delta.IsNegative() {
		r.send(apply.TargetID, fmt.Sprintf(textDebitNotice, apply.Delta.Neg().StringFixed(2)), nil)
	} else {
		r.send(apply.TargetID, fmt.Sprintf(textCreditNotice, apply.Delta.StringFixed(2)), nil)
	}
}

func (r *Router) send(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := r.sender.Send(msg); err != nil {
		r.l.WithError(err).WithField("chatID", chatID).Error("send message")
	}
}

func (r *Router) sendWithTyping(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	if _, err := r.sender.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		r.l.WithError(err).WithField("chatID", chatID).Warn("send chat action")
	}
	if r.typingDelay > 0 {
		time.Sleep(r.typingDelay)
	}
	r.send(chatID, text, keyboard)
}

func markup(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}
