package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"invoiceflow/internal/config"
	"invoiceflow/internal/handler"
	"invoiceflow/internal/port"
	"invoiceflow/internal/repository/memory"
	"invoiceflow/internal/repository/postgres"
	"invoiceflow/internal/router"
	"invoiceflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize repository per configured storage driver
	var invoiceRepo port.InvoiceRepository
	var db *sqlx.DB
	switch cfg.Storage.Driver {
	case "postgres":
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		invoiceRepo = postgres.NewInvoiceRepo(db)
	case "memory":
		invoiceRepo = memory.NewInvoiceRepo()
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	log.Printf("storage driver: %s", cfg.Storage.Driver)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(invoiceRepo)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(invoiceH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
