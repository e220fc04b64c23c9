package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive

	"github.com/fsdevblog/escrow-bot/internal/config"
	"github.com/fsdevblog/escrow-bot/internal/notifier"
	"github.com/fsdevblog/escrow-bot/internal/repository/pgrepo"
	"github.com/fsdevblog/escrow-bot/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-bot/internal/service"
	"github.com/fsdevblog/escrow-bot/internal/transport/bot"
	"github.com/fsdevblog/escrow-bot/internal/transport/health"
	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// конфиг целиком не логируем, в нем токен бота.
	a.Logger.WithFields(logrus.Fields{
		"runAddress":  a.Config.RunAddress,
		"broadcastAt": a.Config.BroadcastAt,
		"admins":      len(a.Config.AdminChatIDs()),
	}).Info("Starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, a.Config.AdminChatIDs())
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	api, apiErr := tgbotapi.NewBotAPI(a.Config.BotToken)
	if apiErr != nil {
		return fmt.Errorf("app run: telegram api: %s", apiErr.Error())
	}
	a.Logger.WithField("botUsername", api.Self.UserName).Info("authorized on telegram")

	router := bot.NewRouter(bot.RouterArgs{
		Sender: api,
		Ledger: services.LedgerService,
		Access: services.AccessService,
		Logger: a.Logger,
		Wallets: bot.Wallets{
			BTC:  a.Config.BTCWallet,
			ETH:  a.Config.ETHWallet,
			USDT: a.Config.USDTWallet,
		},
		TypingDelay: bot.DefaultTypingDelay,
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := health.New().Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	go bot.Listen(notifyCtx, api, router, a.Logger)

	go notifier.New(services.LedgerService, api, a.Config.BroadcastAt, a.Logger).
		SetSendWorkers(5). //nolint:mnd
		Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// account repo
	accountRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewAccountRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.AccountRepoName), accountRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// refund request repo
	refundRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewRefundRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.RefundRepoName), refundRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// balance transaction repo
	balanceTransactionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewBalanceTransactionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.BalanceTransactionRepoName),
		balanceTransactionRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
