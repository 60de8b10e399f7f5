package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-inventory/internal/config"
	"github.com/iliyamo/library-inventory/internal/database"
	"github.com/iliyamo/library-inventory/internal/handler"
	"github.com/iliyamo/library-inventory/internal/queue"
	"github.com/iliyamo/library-inventory/internal/repository"
	"github.com/iliyamo/library-inventory/internal/router"
	"github.com/iliyamo/library-inventory/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables rate limiting and the
	// response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	books := repository.NewBookRepo(db)
	authors := repository.NewAuthorRepo(db)
	categories := repository.NewCategoryRepo(db)
	copies := repository.NewCopyRepo(db)
	logs := repository.NewLogRepo(db)
	staff := repository.NewStaffRepo(db)
	members := repository.NewMemberRepo(db)
	tokens := repository.NewTokenRepo(db)

	inventory := service.NewInventoryService(db, books, copies, logs)

	authH := handler.NewAuthHandler(cfg, staff, tokens)
	bookH := handler.NewBookHandler(books, authors, copies, logs, inventory)
	authorH := handler.NewAuthorHandler(authors)
	categoryH := handler.NewCategoryHandler(categories)
	accountH := handler.NewAccountHandler(cfg, staff, members)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH)
	router.RegisterCatalog(e, bookH, authorH, categoryH, rdb)
	router.RegisterProtected(e, cfg.JWTSecret, authH, bookH, accountH)

	// Inventory events are consumed out of process in production; the
	// embedded consumer keeps a local audit trail in dev setups.
	go queue.StartInventoryConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
