package bot

// Идентификаторы callback-кнопок. Набор закрытый: неизвестные идентификаторы
// роутер молча игнорирует.
const (
	CallbackDeposit        = "deposit"
	CallbackBalance        = "balance"
	CallbackPolicy         = "policy"
	CallbackMainMenu       = "main_menu"
	CallbackRelease        = "release"
	CallbackRefund         = "refund"
	CallbackContactUs      = "contact_us"
	CallbackPaymentSupport = "payment_support"
	CallbackAdminPanel     = "admin_panel"
	CallbackApproveDeposit = "approve_deposit"
	CallbackReviewRefunds  = "review_refunds"
	CallbackAdjustBalance  = "adjust_balance"
)

const (
	textWelcome = "Welcome to the escrow service bot!\n\n" +
		"We hold your deposit until both sides confirm the deal. " +
		"Use the menu below to get started."

	// Комиссии в тексте чисто информационные, код их нигде не считает
	// и не списывает. Так задумано.
	textDepositInstructions = "To top up your escrow balance, send funds to one of the wallets below " +
		"and contact support with the transaction reference.\n\n" +
		"BTC: %s\nETH: %s\nUSDT (TRC-20): %s\n\n" +
		"Service fee: 6%% for standard deals, 10%% for express deals.\n" +
		"Your balance is updated by an operator after manual verification."

	textPolicy = "Escrow policy:\n" +
		"1. Funds are released only after both sides confirm.\n" +
		"2. Deposits are verified manually by our operators.\n" +
		"3. Disputes are resolved by support within 48 hours.\n" +
		"4. Refund requests are reviewed manually."

	textRelease = "To release funds to the counterparty, contact support with your deal reference. " +
		"An operator will confirm the release with both sides."

	textRefundInstructions = "To request a refund, contact support with your deal reference and the amount. " +
		"Refunds are processed manually after review."

	textContactUs = "Support: @escrow_support\nWe reply within a few hours."

	textPaymentSupport = "Having trouble with a payment? Send the transaction reference to @escrow_support " +
		"and an operator will look into it."

	textBalance = "Your balance: $%s"

	textNotAuthorized = "You are not authorized to perform this action."

	textAdminPanel = "Admin panel. Choose an action:"

	textEnterTargetID  = "Enter the target user id:"
	textEnterOperation = "Enter the operation (add / subtract):"
	textEnterAmount    = "Enter the amount:"

	textInvalidTargetID  = "Invalid input: expected a numeric user id. The action was cancelled, start over."
	textInvalidOperation = "Invalid input: expected add or subtract. The action was cancelled, start over."
	textInvalidAmount    = "Invalid input: expected a numeric amount. The action was cancelled, start over."

	textAdjustConfirmation = "Done. New balance of user %d: $%s"
	textCreditNotice       = "Your balance was credited with $%s."
	textDebitNotice        = "Your balance was debited by $%s."

	textNoPendingRefunds  = "No pending refund requests."
	textPendingRefundItem = "#%d user %d: $%s (%s)"

	textStoreFailure = "Something went wrong, please try again later."
)
