package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/auth"
	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// RouterDeps dependensi untuk router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	IncomingRecorder *recorder.IncomingRecorder
	OutgoingRecorder *recorder.OutgoingRecorder
	TransferRecorder *recorder.TransferRecorder
	SummaryUC        *reporting.StockSummaryUseCase
	LedgerUC         *ledger.StockLedgerUseCase
	ReconcileUC      *ledger.ReconcileUseCase

	ItemRepo      repository.ItemRepository
	WarehouseRepo repository.WarehouseRepository
	StockRepo     repository.WarehouseStockRepository
	MovementRepo  repository.MovementRepository
	IncomingRepo  repository.IncomingRepository
	OutgoingRepo  repository.OutgoingRepository
	TransferRepo  repository.TransferRepository

	JWTSecret string
}

// Router mendaftarkan seluruh rute API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (publik)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rute terproteksi (wajib Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Data master
	masterHandler := NewMasterHandler(deps.ItemRepo, deps.WarehouseRepo)
	protected.Get("/items", masterHandler.ListItems)
	protected.Get("/warehouses", masterHandler.ListWarehouses)

	// Barang masuk
	incomingHandler := NewIncomingHandler(deps.IncomingRecorder, deps.IncomingRepo, deps.SummaryUC)
	incoming := protected.Group("/incoming")
	incoming.Post("/", incomingHandler.Create)
	incoming.Get("/", incomingHandler.List)
	incoming.Get("/:id", incomingHandler.GetByID)

	// Barang keluar
	outgoingHandler := NewOutgoingHandler(deps.OutgoingRecorder, deps.OutgoingRepo, deps.SummaryUC)
	outgoing := protected.Group("/outgoing")
	outgoing.Post("/", outgoingHandler.Create)
	outgoing.Get("/", outgoingHandler.List)
	outgoing.Get("/:id", outgoingHandler.GetByID)

	// Transfer antar gudang
	transferHandler := NewTransferHandler(deps.TransferRecorder, deps.TransferRepo, deps.SummaryUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)

	// Stok: ringkasan, ketersediaan, riwayat, rekonsiliasi
	stockHandler := NewStockHandler(deps.SummaryUC, deps.LedgerUC, deps.ReconcileUC, deps.StockRepo, deps.MovementRepo)
	stock := protected.Group("/stock")
	stock.Get("/summary", stockHandler.Summary)
	stock.Get("/availability", stockHandler.Availability)
	stock.Get("/movements/:itemId", stockHandler.Movements)
	stock.Post("/reconcile", RequireRole("admin", "manager"), stockHandler.Reconcile)
}
