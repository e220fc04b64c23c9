package domain

type RefundStatusType string

const (
	RefundStatusPending  RefundStatusType = "pending"
	RefundStatusResolved RefundStatusType = "resolved"
)

type OperationType string

const (
	OperationAdd      OperationType = "add"
	OperationSubtract OperationType = "subtract"
)
