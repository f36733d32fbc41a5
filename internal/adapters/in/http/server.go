// Package http exposes the laundry operations over HTTP with echo. Every route
// except /health, /metrics and /photos requires a bearer token; the token's
// subject and role become the actor passed to the command.
package http

import (
	"log/slog"
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles the use cases the server calls.
type Handlers struct {
	AddToCart        commands.AddToCartCommandHandler
	RemoveFromCart   commands.RemoveFromCartCommandHandler
	PlaceOrder       commands.PlaceOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	CompleteOrder    commands.CompleteOrderCommandHandler
	FileComplaint    commands.FileComplaintCommandHandler
	ResolveComplaint commands.ResolveComplaintCommandHandler
	PurgeOrder       commands.PurgeOrderCommandHandler

	ClaimForProcessing commands.ClaimForProcessingCommandHandler
	CancelProcessing   commands.CancelProcessingCommandHandler
	ConfirmOrder       commands.ConfirmOrderCommandHandler
	StartChecking      commands.StartCheckingCommandHandler
	AmendCheckingNotes commands.AmendCheckingNotesCommandHandler
	AdvanceProcessing  commands.AdvanceProcessingCommandHandler

	AssignDriver     commands.AssignDriverCommandHandler
	CancelAssignment commands.CancelAssignmentCommandHandler
	StartTrip        commands.StartTripCommandHandler
	ConfirmArrival   commands.ConfirmArrivalCommandHandler
	CompleteTrip     commands.CompleteTripCommandHandler
	FailTrip         commands.FailTripCommandHandler

	AddAbsence    commands.AddAbsenceCommandHandler
	UpdateAbsence commands.UpdateAbsenceCommandHandler
	DeleteAbsence commands.DeleteAbsenceCommandHandler

	PendingOrders  queries.GetPendingOrdersQueryHandler
	OrderHistory   queries.GetOrderHistoryQueryHandler
	CurrentHandler queries.GetCurrentHandlerQueryHandler
	DriverRoute    queries.GetDriverAssignmentsQueryHandler
	DriverAbsences queries.GetDriverAbsencesQueryHandler
}

// Server adapts HTTP requests to commands and queries.
type Server struct {
	h     Handlers
	clock ports.Clock
}

func NewServer(h Handlers, clock ports.Clock) *Server {
	return &Server{h: h, clock: clock}
}

// Options configure the echo instance built by NewEcho.
type Options struct {
	JWTSecret string
	// PhotoDir is served under PhotoURLPrefix when both are set.
	PhotoDir       string
	PhotoURLPrefix string
	// MaxBodyBytes limits request bodies, for example "20M".
	MaxBodyBytes string
}

// NewEcho builds the echo instance with middleware and every route.
func NewEcho(s *Server, opts Options, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	if opts.MaxBodyBytes != "" {
		e.Use(middleware.BodyLimit(opts.MaxBodyBytes))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if opts.PhotoDir != "" && opts.PhotoURLPrefix != "" {
		e.Static(opts.PhotoURLPrefix, opts.PhotoDir)
	}

	api := e.Group("/api/v1", ActorMiddleware(opts.JWTSecret))
	s.register(api)
	return e
}

func (s *Server) register(api *echo.Group) {
	customer := RequireRole(RoleCustomer)
	staff := RequireRole(RoleStaff, RoleAdmin)
	driverOnly := RequireRole(RoleDriver)
	admin := RequireRole(RoleAdmin)
	anyone := RequireRole(RoleCustomer, RoleStaff, RoleDriver, RoleAdmin)

	api.POST("/cart/items", s.AddToCart, customer)
	api.DELETE("/cart/items/:serviceCode", s.RemoveFromCart, customer)
	api.POST("/orders/:orderId/place", s.PlaceOrder, customer)
	api.POST("/orders/:orderId/complaints", s.FileComplaint, customer)
	api.POST("/orders/:orderId/cancel", s.CancelOrder, RequireRole(RoleCustomer, RoleStaff, RoleAdmin))
	api.POST("/orders/:orderId/complete", s.CompleteOrder, RequireRole(RoleCustomer, RoleAdmin))
	api.GET("/orders/:orderId/history", s.GetOrderHistory, anyone)
	api.GET("/orders/:orderId/handler", s.GetCurrentHandler, anyone)

	api.GET("/orders/pending", s.GetPendingOrders, staff)
	api.POST("/orders/:orderId/claim", s.ClaimForProcessing, staff)
	api.DELETE("/orders/:orderId/claim", s.CancelProcessing, staff)
	api.POST("/orders/:orderId/confirm", s.ConfirmOrder, staff)
	api.POST("/orders/:orderId/checking", s.StartChecking, staff)
	api.POST("/orders/:orderId/checking/notes", s.AmendCheckingNotes, staff)
	api.POST("/orders/:orderId/progress", s.AdvanceProcessing, staff)
	api.POST("/orders/:orderId/complaints/resolve", s.ResolveComplaint, staff)

	api.POST("/assignments/:phase", s.AssignDriver, admin)
	api.POST("/assignments/cancel", s.CancelAssignments, admin)
	api.DELETE("/orders/:orderId", s.PurgeOrder, admin)

	api.GET("/driver/assignments", s.GetDriverAssignments, driverOnly)
	api.POST("/driver/orders/:orderId/:phase/start", s.StartTrip, driverOnly)
	api.POST("/driver/orders/:orderId/:phase/arrive", s.ConfirmArrival, driverOnly)
	api.POST("/driver/orders/:orderId/:phase/complete", s.CompleteTrip, driverOnly)
	api.POST("/driver/orders/:orderId/:phase/fail", s.FailTrip, driverOnly)
	api.GET("/driver/absences", s.GetDriverAbsences, driverOnly)
	api.POST("/driver/absences", s.AddAbsence, driverOnly)
	api.PUT("/driver/absences/:absenceId", s.UpdateAbsence, driverOnly)
	api.DELETE("/driver/absences/:absenceId", s.DeleteAbsence, driverOnly)
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if actor, ok := ActorFrom(c); ok {
				attrs = append(attrs, "actor_id", actor.ID.String(), "role", string(actor.Role))
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}
}
