// Package dialog содержит легковесный менеджер многошаговых диалогов бота.
// Состояние хранится в памяти по идентификатору оператора и живет ровно одну
// последовательность вопрос-ответ.
package dialog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/escrow-bot/internal/domain"
)

type Flow string

const (
	// FlowApproveDeposit зачисление депозита: target id -> amount.
	FlowApproveDeposit Flow = "approve_deposit"
	// FlowAdjustBalance корректировка баланса: target id -> operation -> amount.
	FlowAdjustBalance Flow = "adjust_balance"
)

type step int

const (
	stepTargetID step = iota
	stepOperation
	stepAmount
)

type Outcome int

const (
	// OutcomeNone у отправителя нет активного диалога, сообщение не наше.
	OutcomeNone Outcome = iota
	OutcomePromptOperation
	OutcomePromptAmount
	OutcomeInvalidTargetID
	OutcomeInvalidOperation
	OutcomeInvalidAmount
	OutcomeApply
)

// Apply итог завершенной последовательности: кому и на сколько изменить баланс.
// Знак Delta уже учитывает выбранную операцию.
type Apply struct {
	TargetID int64
	Delta    decimal.Decimal
}

type Result struct {
	Outcome Outcome
	Apply   *Apply
}

type session struct {
	flow      Flow
	step      step
	targetID  int64
	operation domain.OperationType
}

// Manager хранит диалоги операторов. Ключ - chatID оператора, у одного
// оператора не бывает двух активных диалогов: новый старт замещает старый.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*session)}
}

// Start открывает новую последовательность для оператора. Незавершенный диалог
// этого же оператора молча отбрасывается: мы считаем повторное нажатие кнопки
// желанием начать заново.
func (m *Manager) Start(operatorID int64, flow Flow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[operatorID] = &session{flow: flow, step: stepTargetID}
}

// Active сообщает, ждет ли менеджер следующего сообщения от оператора.
func (m *Manager) Active(operatorID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[operatorID]
	return ok
}

// Advance скармливает очередное сообщение оператора его диалогу. Валидация
// делается строго до продвижения по шагам: любая невалидная реплика
// завершает всю последовательность без частичных изменений (abort, not retry).
// Шаги одного оператора сериализуются мьютексом, сообщения других операторов
// на чужие диалоги не влияют.
func (m *Manager) Advance(operatorID int64, input string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[operatorID]
	if !ok {
		return Result{Outcome: OutcomeNone}
	}

	input = strings.TrimSpace(input)

	switch s.step {
	case stepTargetID:
		targetID, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			delete(m.sessions, operatorID)
			return Result{Outcome: OutcomeInvalidTargetID}
		}
		s.targetID = targetID
		if s.flow == FlowAdjustBalance {
			s.step = stepOperation
			return Result{Outcome: OutcomePromptOperation}
		}
		s.step = stepAmount
		return Result{Outcome: OutcomePromptAmount}

	case stepOperation:
		switch domain.OperationType(strings.ToLower(input)) {
		case domain.OperationAdd, domain.OperationSubtract:
			s.operation = domain.OperationType(strings.ToLower(input))
			s.step = stepAmount
			return Result{Outcome: OutcomePromptAmount}
		default:
			delete(m.sessions, operatorID)
			return Result{Outcome: OutcomeInvalidOperation}
		}

	default: // stepAmount
		amount, err := decimal.NewFromString(input)
		if err != nil {
			delete(m.sessions, operatorID)
			return Result{Outcome: OutcomeInvalidAmount}
		}
		delete(m.sessions, operatorID)

		delta := amount
		if s.flow == FlowAdjustBalance && s.operation == domain.OperationSubtract {
			delta = amount.Neg()
		}
		return Result{
			Outcome: OutcomeApply,
			Apply:   &Apply{TargetID: s.targetID, Delta: delta},
		}
	}
}
