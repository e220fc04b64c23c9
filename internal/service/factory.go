package service

import (
	"fmt"

	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

type AppServices struct {
	LedgerService *LedgerService
	AccessService *AccessService
}

func Factory(unitOfWork uow.UOW, adminIDs []int64) (*AppServices, error) {
	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	return &AppServices{
		LedgerService: ledgerService,
		AccessService: NewAccessService(adminIDs),
	}, nil
}
