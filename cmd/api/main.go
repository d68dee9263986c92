package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
	"github.com/stationeryhq/stationery-backend/internal/modules/catalog"
	"github.com/stationeryhq/stationery-backend/internal/modules/delivery"
	"github.com/stationeryhq/stationery-backend/internal/modules/issuance"
	"github.com/stationeryhq/stationery-backend/internal/modules/office"
	"github.com/stationeryhq/stationery-backend/internal/modules/request"
	"github.com/stationeryhq/stationery-backend/internal/modules/stock"
	"github.com/stationeryhq/stationery-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Audit & Identity ───────────────────────────
	auditRepo := audit.NewPostgresRepository(db)
	auditSink := audit.NewLogger(auditRepo)
	audit.NewHandler(auditRepo).RegisterRoutes(router)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	// ── Phase 2: Directories ────────────────────────────────
	officeRepo := office.NewPostgresRepository(db)
	officeService := office.NewService(officeRepo)
	office.NewHandler(officeService).RegisterRoutes(router)

	categoryRepo := catalog.NewCategoryPostgresRepository(db)
	supplierRepo := catalog.NewSupplierPostgresRepository(db)
	itemRepo := catalog.NewItemPostgresRepository(db)
	catalogService := catalog.NewService(categoryRepo, supplierRepo, itemRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 3: Stock Ledger ───────────────────────────────
	adjuster := stock.NewAdjuster(auditSink)
	stockRepo := stock.NewPostgresRepository(db)
	stockService := stock.NewService(stockRepo, auditSink)
	stock.NewHandler(stockService).RegisterRoutes(router)

	// ── Phase 4: Requests & Mutation Engine ─────────────────
	requestRepo := request.NewPostgresRepository(db)
	requestService := request.NewService(requestRepo, auditSink)
	request.NewHandler(requestService).RegisterRoutes(router)

	issuanceStore := issuance.NewPostgresStore(db, adjuster)
	issuanceService := issuance.NewService(issuanceStore, auditSink)
	issuance.NewHandler(issuanceService).RegisterRoutes(router)

	// ── Phase 5: Deliveries & Replenishment ─────────────────
	deliveryRepo := delivery.NewPostgresRepository(db)
	deliveryService := delivery.NewService(deliveryRepo, itemRepo, officeRepo, auditSink)
	delivery.NewHandler(deliveryService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Stationery API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
