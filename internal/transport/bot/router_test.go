package bot

import (
	"context"
	"io"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/internal/logger"
	"github.com/fsdevblog/escrow-bot/internal/service"
	"github.com/fsdevblog/escrow-bot/internal/transport/bot/mocks"
)

type sentMessage struct {
	chatID int64
	text   string
}

type RouterTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockSender *mocks.MockSender
	mockLedger *mocks.MockLedgerServicer
	mockAccess *mocks.MockAccessChecker
	router     *Router
	sent       []sentMessage
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSender = mocks.NewMockSender(s.mockCtrl)
	s.mockLedger = mocks.NewMockLedgerServicer(s.mockCtrl)
	s.mockAccess = mocks.NewMockAccessChecker(s.mockCtrl)
	s.sent = nil

	// перехватываем все исходящие сообщения для проверок.
	s.mockSender.EXPECT().
		Send(gomock.Any()).
		DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			if msg, ok := c.(tgbotapi.MessageConfig); ok {
				s.sent = append(s.sent, sentMessage{chatID: msg.ChatID, text: msg.Text})
			}
			return tgbotapi.Message{}, nil
		}).AnyTimes()
	// ответы на callback query и chat actions.
	s.mockSender.EXPECT().
		Request(gomock.Any()).
		Return(&tgbotapi.APIResponse{Ok: true}, nil).AnyTimes()

	s.router = NewRouter(RouterArgs{
		Sender: s.mockSender,
		Ledger: s.mockLedger,
		Access: s.mockAccess,
		Logger: logger.New(io.Discard),
		Wallets: Wallets{
			BTC:  "bc1-test-wallet",
			ETH:  "0x-test-wallet",
			USDT: "T-test-wallet",
		},
		TypingDelay: 0,
	})
}

func (s *RouterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func messageUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
		},
	}
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "callback-id",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
}

// textsFor возвращает тексты, отправленные в указанный чат.
func (s *RouterTestSuite) textsFor(chatID int64) []string {
	var texts []string
	for _, m := range s.sent {
		if m.chatID == chatID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

func (s *RouterTestSuite) TestBalanceCommand_NewAccount() {
	chatID := int64(42)
	s.mockLedger.EXPECT().
		ResolveAccount(gomock.Any(), chatID).
		Return(&domain.Account{ChatID: chatID, Balance: decimal.Zero}, nil)

	s.router.HandleUpdate(s.T().Context(), messageUpdate(chatID, "/balance"))

	texts := s.textsFor(chatID)
	s.Require().Len(texts, 1)
	s.Contains(texts[0], "$0.00")
}

func (s *RouterTestSuite) TestBalanceCommand_CaseInsensitive() {
	chatID := int64(42)
	s.mockLedger.EXPECT().
		ResolveAccount(gomock.Any(), chatID).
		Return(&domain.Account{ChatID: chatID, Balance: decimal.RequireFromString("10.50")}, nil)

	s.router.HandleUpdate(s.T().Context(), messageUpdate(chatID, " /BALANCE "))

	texts := s.textsFor(chatID)
	s.Require().Len(texts, 1)
	s.Contains(texts[0], "$10.50")
}

func (s *RouterTestSuite) TestBalanceCommand_StoreFailure() {
	chatID := int64(42)
	s.mockLedger.EXPECT().
		ResolveAccount(gomock.Any(), chatID).
		Return(nil, domain.ErrStoreUnavailable)

	s.router.HandleUpdate(s.T().Context(), messageUpdate(chatID, "/balance"))

	texts := s.textsFor(chatID)
	s.Require().Len(texts, 1)
	// ошибка базы не должна превращаться в "нулевой баланс".
	s.Equal(textStoreFailure, texts[0])
	s.NotContains(texts[0], "$")
}

func (s *RouterTestSuite) TestStartCommand() {
	chatID := int64(42)

	s.router.HandleUpdate(s.T().Context(), messageUpdate(chatID, "/start"))

	texts := s.textsFor(chatID)
	s.Require().Len(texts, 1)
	s.Equal(textWelcome, texts[0])
}

func (s *RouterTestSuite) TestDepositButton_ShowsWallets() {
	chatID := int64(42)

	s.router.HandleUpdate(s.T().Context(), callbackUpdate(chatID, CallbackDeposit))

	texts := s.textsFor(chatID)
	s.Require().Len(texts, 1)
	s.Contains(texts[0], "bc1-test-wallet")
	s.Contains(texts[0], "0x-test-wallet")
	s.Contains(texts[0], "T-test-wallet")
	s.Contains(texts[0], "6%")
}

func (s *RouterTestSuite) TestApproveDepositFlow() {
	operatorID := int64(1)
	targetID := int64(42)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true).AnyTimes()

	s.mockLedger.EXPECT().
		AdjustBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.AdjustBalanceArgs) (*domain.Account, error) {
			s.Equal(targetID, args.ChatID)
			s.Equal(operatorID, args.ActorID)
			s.True(args.Delta.Equal(decimal.RequireFromString("15.50")), "got delta %s", args.Delta)
			return &domain.Account{ChatID: targetID, Balance: args.Delta}, nil
		})

	ctx := s.T().Context()
	s.router.HandleUpdate(ctx, callbackUpdate(operatorID, CallbackApproveDeposit))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "42"))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "15.50"))

	operatorTexts := s.textsFor(operatorID)
	s.Require().Len(operatorTexts, 3)
	s.Equal(textEnterTargetID, operatorTexts[0])
	s.Equal(textEnterAmount, operatorTexts[1])
	s.Contains(operatorTexts[2], "$15.50")

	// затронутый пользователь получает свое уведомление.
	targetTexts := s.textsFor(targetID)
	s.Require().Len(targetTexts, 1)
	s.Contains(targetTexts[0], "credited")
	s.Contains(targetTexts[0], "$15.50")
}

func (s *RouterTestSuite) TestAdjustBalanceFlow_Subtract() {
	operatorID := int64(1)
	targetID := int64(42)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true).AnyTimes()

	s.mockLedger.EXPECT().
		AdjustBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.AdjustBalanceArgs) (*domain.Account, error) {
			s.Equal(targetID, args.ChatID)
			s.True(args.Delta.Equal(decimal.NewFromInt(-5)), "got delta %s", args.Delta)
			return &domain.Account{ChatID: targetID, Balance: decimal.RequireFromString("10.50")}, nil
		})

	ctx := s.T().Context()
	s.router.HandleUpdate(ctx, callbackUpdate(operatorID, CallbackAdjustBalance))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "42"))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "subtract"))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "5"))

	operatorTexts := s.textsFor(operatorID)
	s.Require().Len(operatorTexts, 4)
	s.Contains(operatorTexts[3], "$10.50")

	targetTexts := s.textsFor(targetID)
	s.Require().Len(targetTexts, 1)
	s.Contains(targetTexts[0], "debited")
	s.Contains(targetTexts[0], "$5.00")
}

func (s *RouterTestSuite) TestAdjustBalanceFlow_BadOperationAborts() {
	operatorID := int64(1)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true).AnyTimes()
	// AdjustBalance не настроен: до мутации дело дойти не должно.

	ctx := s.T().Context()
	s.router.HandleUpdate(ctx, callbackUpdate(operatorID, CallbackAdjustBalance))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "42"))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "xyz"))

	operatorTexts := s.textsFor(operatorID)
	s.Require().Len(operatorTexts, 3)
	s.Equal(textInvalidOperation, operatorTexts[2])

	// диалог сброшен: следующая реплика оператора уже никуда не попадает.
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "5"))
	s.Len(s.textsFor(operatorID), 3)
}

func (s *RouterTestSuite) TestApproveDepositFlow_BadAmountAborts() {
	operatorID := int64(1)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true).AnyTimes()

	ctx := s.T().Context()
	s.router.HandleUpdate(ctx, callbackUpdate(operatorID, CallbackApproveDeposit))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "42"))
	s.router.HandleUpdate(ctx, messageUpdate(operatorID, "not-a-number"))

	operatorTexts := s.textsFor(operatorID)
	s.Require().Len(operatorTexts, 3)
	s.Equal(textInvalidAmount, operatorTexts[2])
}

func (s *RouterTestSuite) TestGatedActions_RejectNonAdmin() {
	chatID := int64(99)
	gated := []string{CallbackAdminPanel, CallbackApproveDeposit, CallbackAdjustBalance, CallbackReviewRefunds}

	for _, data := range gated {
		s.Run(data, func() {
			s.sent = nil
			s.mockAccess.EXPECT().IsAdmin(chatID).Return(false)
			// ledger не настроен: отказ в доступе не трогает хранилище.

			s.router.HandleUpdate(s.T().Context(), callbackUpdate(chatID, data))

			texts := s.textsFor(chatID)
			s.Require().Len(texts, 1)
			s.Equal(textNotAuthorized, texts[0])

			// и не открывает диалог: текст после отказа игнорируется.
			s.router.HandleUpdate(s.T().Context(), messageUpdate(chatID, "42"))
			s.Len(s.textsFor(chatID), 1)
		})
	}
}

func (s *RouterTestSuite) TestReviewRefunds() {
	operatorID := int64(1)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true)
	s.mockLedger.EXPECT().
		PendingRefunds(gomock.Any()).
		Return([]domain.RefundRequest{
			{ID: 1, ChatID: 42, Amount: decimal.RequireFromString("3.50"), Reason: "deal cancelled"},
			{ID: 2, ChatID: 43, Amount: decimal.NewFromInt(7)},
		}, nil)

	s.router.HandleUpdate(s.T().Context(), callbackUpdate(operatorID, CallbackReviewRefunds))

	texts := s.textsFor(operatorID)
	s.Require().Len(texts, 1)
	s.Contains(texts[0], "#1 user 42: $3.50 (deal cancelled)")
	s.Contains(texts[0], "#2 user 43: $7.00 (no reason given)")
}

func (s *RouterTestSuite) TestReviewRefunds_Empty() {
	operatorID := int64(1)
	s.mockAccess.EXPECT().IsAdmin(operatorID).Return(true)
	s.mockLedger.EXPECT().PendingRefunds(gomock.Any()).Return(nil, nil)

	s.router.HandleUpdate(s.T().Context(), callbackUpdate(operatorID, CallbackReviewRefunds))

	texts := s.textsFor(operatorID)
	s.Require().Len(texts, 1)
	s.Equal(textNoPendingRefunds, texts[0])
}

func (s *RouterTestSuite) TestUnknownCallback_Ignored() {
	s.router.HandleUpdate(s.T().Context(), callbackUpdate(42, "bogus_button"))
	s.Empty(s.sent)
}

func (s *RouterTestSuite) TestPlainTextWithoutDialog_Ignored() {
	s.router.HandleUpdate(s.T().Context(), messageUpdate(42, "hello there"))
	s.Empty(s.sent)
}

func (s *RouterTestSuite) TestDialogsAreIsolatedPerOperator() {
	first := int64(1)
	second := int64(2)
	s.mockAccess.EXPECT().IsAdmin(gomock.Any()).Return(true).AnyTimes()

	s.mockLedger.EXPECT().
		AdjustBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.AdjustBalanceArgs) (*domain.Account, error) {
			s.Equal(first, args.ActorID)
			s.Equal(int64(42), args.ChatID)
			return &domain.Account{ChatID: args.ChatID, Balance: args.Delta}, nil
		})

	ctx := s.T().Context()
	s.router.HandleUpdate(ctx, callbackUpdate(first, CallbackApproveDeposit))
	s.router.HandleUpdate(ctx, callbackUpdate(second, CallbackAdjustBalance))

	// реплика второго оператора не подхватывается диалогом первого.
	s.router.HandleUpdate(ctx, messageUpdate(second, "100"))
	s.router.HandleUpdate(ctx, messageUpdate(first, "42"))
	s.router.HandleUpdate(ctx, messageUpdate(first, "9"))

	s.Equal(textEnterOperation, s.textsFor(second)[1])

	var applied bool
	for _, text := range s.textsFor(first) {
		if strings.Contains(text, "$9.00") {
			applied = true
		}
	}
	s.True(applied, "first operator's deposit should have been applied")
}
