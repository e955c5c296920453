package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budgetforge/internal/auth"
	"github.com/carson-networks/budgetforge/internal/cache"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/account"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/bill"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/identity"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/keyvalue"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/summary"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/transaction"
	"github.com/carson-networks/budgetforge/internal/logging"
	"github.com/carson-networks/budgetforge/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Tokens  auth.AccessTokenValidator
	Cache   cache.Cache
}

type registrar interface {
	Register(api huma.API)
}

// Router builds the chi router with every v1 operation mounted.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(r.Logger))
	router.Use(middleware.Recoverer)

	config := huma.DefaultConfig("BudgetForge API", "1.0.0")
	config.DocsPath = ""
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	config.Components.SecuritySchemes[auth.SecurityScheme] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}

	api := humachi.New(router, config)
	api.UseMiddleware(auth.Middleware(api, r.Tokens))

	svc := r.Service
	handlers := []registrar{
		identity.NewRegisterHandler(svc.Auth),
		identity.NewLoginHandler(svc.Auth),
		identity.NewRefreshHandler(svc.Auth),
		identity.NewChangePasswordHandler(svc.Auth),
		identity.NewLogoutHandler(svc.Auth),
		identity.NewMeHandler(svc.Auth),

		account.NewAccountSummaryHandler(svc.Account),
		account.NewCreateAccountHandler(svc.Account),
		account.NewListAccountsHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewUpdateAccountHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),

		transaction.NewTransactionSummaryHandler(svc.Transaction),
		transaction.NewAccountTransactionsHandler(svc.Transaction),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(svc.Transaction),
		transaction.NewDeleteTransactionHandler(svc.Transaction),

		bill.NewUpcomingBillsHandler(svc.Bill),
		bill.NewCreateBillHandler(svc.Bill),
		bill.NewGetBillHandler(svc.Bill),
		bill.NewPayBillHandler(svc.Bill),
		bill.NewDeactivateBillHandler(svc.Bill),

		summary.NewBudgetSummaryHandler(svc.Summary),

		keyvalue.NewGetValueHandler(r.Cache),
		keyvalue.NewPutValueHandler(r.Cache),
		keyvalue.NewDeleteValueHandler(r.Cache),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
