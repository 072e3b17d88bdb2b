package routes

import (
	"time"

	"suncrest/handlers"
	"suncrest/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Wizard *handlers.WizardHandler
	Rooms  *handlers.RoomsHandler
}

// RegisterRoutes registers all endpoints of the booking wizard service.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Identity())

	api := r.Group("/api")
	{
		api.GET("/rooms", hb.Rooms.ListRooms)

		wiz := api.Group("/wizard")
		{
			wiz.POST("/session", hb.Wizard.StartSession)
			wiz.GET("/session/:sessionID", hb.Wizard.GetSnapshot)
			wiz.DELETE("/session/:sessionID", hb.Wizard.CancelSession)
			wiz.POST("/session/:sessionID/room", hb.Wizard.SelectRoom)
			wiz.POST("/session/:sessionID/stay", hb.Wizard.SubmitStay)
			wiz.POST("/session/:sessionID/guest", hb.Wizard.SubmitGuestDetails)
			wiz.POST("/session/:sessionID/back", hb.Wizard.Back)
			wiz.POST("/session/:sessionID/goto", hb.Wizard.JumpTo)
			wiz.GET("/session/:sessionID/quote", hb.Wizard.GetQuote)

			// Final submit requires an authenticated caller up front.
			wiz.POST("/session/:sessionID/billing", middleware.RequireIdentity(), hb.Wizard.SubmitBilling)
		}
	}
}
