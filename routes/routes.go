package routes

import (
	"vclub/controllers/admin"
	"vclub/controllers/auth"
	"vclub/controllers/profile"
	"vclub/controllers/wallet"
	"vclub/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/password-reset/request", auth.RequestPasswordReset)
	app.Post("/auth/password-reset/confirm", auth.ConfirmPasswordReset)

	memberroutes := app.Group("/", middlewares.MemberAuthMiddleware)
	memberroutes.Get("/auth/me", auth.Me)
	memberroutes.Get("/profile/stats", profile.Stats)

	walletroutes := app.Group("/wallet", middlewares.MemberAuthMiddleware)
	walletroutes.Post("/spend", wallet.Spend)
	walletroutes.Get("/transactions", wallet.ListTransactions)
	walletroutes.Post("/withdrawals", wallet.RequestWithdrawal)

	adminroutes := app.Group("/admin", middlewares.MemberAuthMiddleware, middlewares.AdminOnlyMiddleware)
	adminroutes.Get("/members", admin.ListMembers)
	adminroutes.Post("/deposits", admin.CreateDeposit)
	adminroutes.Post("/members/adjust-balance", admin.AdjustBalance)
	adminroutes.Post("/members/debit", admin.Debit)
	adminroutes.Post("/members/recompute-rank", admin.RecomputeRank)
	adminroutes.Get("/withdrawals", admin.ListWithdrawals)
	adminroutes.Post("/withdrawals/status", admin.UpdateWithdrawalStatus)
	adminroutes.Get("/stats/overview", admin.StatsOverview)
}
