package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/travelintrips/driver-portal/internal/config"
	"github.com/travelintrips/driver-portal/internal/controllers"
	"github.com/travelintrips/driver-portal/internal/identity"
	"github.com/travelintrips/driver-portal/internal/logger"
	"github.com/travelintrips/driver-portal/internal/messaging"
	"github.com/travelintrips/driver-portal/internal/middleware"
	"github.com/travelintrips/driver-portal/internal/payments"
	"github.com/travelintrips/driver-portal/internal/reminders"
	"github.com/travelintrips/driver-portal/internal/routes"
	"github.com/travelintrips/driver-portal/internal/transfers"
)

func main() {
	// Load configuration before anything touches the environment.
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile)

	// Open the single process-scoped database handle; every component below
	// receives it by reference.
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	resolver := identity.NewResolver(db)
	paymentSvc := payments.NewService(payments.NewStore(db))
	workflow := transfers.NewWorkflow(transfers.NewRepository(db), resolver)
	whatsapp := messaging.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppToken)
	readState := reminders.NewReadState()

	r := routes.SetupRouter(routes.Controllers{
		Tokens:       tokens,
		Auth:         controllers.NewAuthController(db, tokens),
		Profile:      controllers.NewProfileController(resolver, paymentSvc),
		Transfer:     controllers.NewTransferController(workflow),
		Notification: controllers.NewNotificationController(db, workflow, readState),
		Payment:      controllers.NewPaymentController(paymentSvc),
		Message:      controllers.NewMessageController(whatsapp),
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	log.Printf("🚀 Server running at :%d", cfg.Port)
	log.Fatal(http.ListenAndServe(addr, handler))
}
