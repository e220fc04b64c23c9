package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Deposit", CallbackDeposit),
			tgbotapi.NewInlineKeyboardButtonData("📊 Balance", CallbackBalance),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔓 Release funds", CallbackRelease),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Refund", CallbackRefund),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Policy", CallbackPolicy),
			tgbotapi.NewInlineKeyboardButtonData("✉️ Contact us", CallbackContactUs),
		),
	)
}

func balanceKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Deposit", CallbackDeposit),
			tgbotapi.NewInlineKeyboardButtonData("🛟 Payment support", CallbackPaymentSupport),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main menu", CallbackMainMenu),
		),
	)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve deposit", CallbackApproveDeposit),
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Adjust balance", CallbackAdjustBalance),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Review refunds", CallbackReviewRefunds),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Main menu", CallbackMainMenu),
		),
	)
}
