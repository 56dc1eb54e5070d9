package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "library-portal-backend/internal/adapter/http"
	idemp "library-portal-backend/internal/adapter/middleware"
	"library-portal-backend/internal/adapter/repository/mysql"
	"library-portal-backend/internal/config"
	"library-portal-backend/internal/infrastructure/cache"
	"library-portal-backend/internal/infrastructure/db"
	"library-portal-backend/internal/usecase/catalog"
	"library-portal-backend/internal/usecase/lending"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	books := mysql.NewBookRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	lendingUC := lending.NewUsecase(books, loans, tx, time.Duration(cfg.LoanPeriodDays)*24*time.Hour)
	catalogUC := catalog.NewUsecase(books)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(lendingUC)
	bookH := httpadp.NewBookHandler(catalogUC)
	adminH := httpadp.NewAdminHandler(lendingUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	// routes
	e.GET("/health", h.Health)

	e.GET("/books", bookH.ListBooks)
	e.GET("/books/:book_id", bookH.GetBook)

	once := idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	e.POST("/loans", loanH.SubmitRequest, once)
	e.POST("/borrows", loanH.Borrow, once)
	e.GET("/loans/:loan_id", loanH.GetLoan)

	admin := e.Group("/admin", once)
	admin.POST("/loans/:loan_id/approve", adminH.ApproveLoan)
	admin.POST("/loans/:loan_id/reject", adminH.RejectLoan)
	admin.POST("/loans/:loan_id/return", adminH.ReturnLoan)
	admin.GET("/loans", adminH.ListLoans)
	admin.GET("/books/:book_id/loans", adminH.ListBookLoans)
	admin.POST("/books", bookH.RegisterBook)
	admin.POST("/books/:book_id/reconcile", adminH.ReconcileBook)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
