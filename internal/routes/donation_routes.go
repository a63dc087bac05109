package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/handlers"
)

// RegisterDonationRoutes registers the public donation flow. None of
// these require authentication: anyone can donate.
func RegisterDonationRoutes(r *gin.Engine) {
	donations := r.Group("/api/donations")
	{
		// Card flow: create a payment intent, then confirm after the
		// donor's bank approves the charge.
		donations.POST("/create-intent", handlers.CreateIntentHandler)
		donations.POST("/confirm", handlers.ConfirmDonationHandler)

		// PayPal flow: create an order, then capture once approved.
		donations.POST("/paypal/create-order", handlers.PayPalCreateOrderHandler)
		donations.POST("/paypal/capture-order", handlers.PayPalCaptureOrderHandler)

		// Mobile money is recorded in one shot once the wallet confirms.
		donations.POST("/mobile-money", handlers.MobileMoneyDonationHandler)

		donations.GET("/fees", handlers.FeeQuoteHandler)
		donations.GET("/recent", handlers.RecentDonationsHandler)
		donations.GET("/wall/ws", handlers.WallWSEndpoint)
		donations.GET("/:number/receipt", handlers.GetReceiptHandler)
	}
}
