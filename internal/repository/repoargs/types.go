package repoargs

type RepositoryName string

const (
	AccountRepoName            RepositoryName = "account"
	RefundRepoName             RepositoryName = "refund_request"
	BalanceTransactionRepoName RepositoryName = "balance_transaction"
)
