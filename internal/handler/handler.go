package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	md "github.com/bookloans/library-service/pkg/middleware"

	"github.com/bookloans/library-service/pkg/auth"
	"github.com/bookloans/library-service/pkg/validate"
)

type Services struct {
	Book     BookService
	Customer CustomerService
	Loan     LoanService
	Auth     AuthService
}

type Handler struct {
	svc    Services
	jwtCfg auth.Config
	log    *zap.Logger
}

func New(svc Services, jwtCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{
		svc:    svc,
		jwtCfg: jwtCfg,
		log:    log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.POST("/books", h.CreateBook)
	api.PUT("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)
	api.POST("/books/search", h.SearchBooks)

	api.GET("/customers", h.ListCustomers)
	api.POST("/customers/new", h.CreateCustomer)
	api.PUT("/customers/:id", h.UpdateCustomer)
	api.DELETE("/customers/:id", h.DeleteCustomer)
	api.POST("/customers/search", h.SearchCustomers)

	api.GET("/loans", h.ListLoans)
	api.POST("/loans/new", h.CreateLoan)
	api.PUT("/loans/:id", h.UpdateLoan)
	api.DELETE("/loans/:id", h.DeleteLoan)
	api.POST("/loans/:id/return", h.ReturnLoan)

	jwtMW := md.JwtAuthentication(h.jwtCfg)
	api.POST("/user/register", h.Register)
	api.POST("/user/login", h.Login)
	api.GET("/user/profile", h.Profile, jwtMW)
	api.DELETE("/user/:id", h.DeleteUser, jwtMW)
	api.GET("/logout", h.Logout, jwtMW)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
