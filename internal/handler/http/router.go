package http

import (
	"log/slog"
	"os"

	"github.com/attendly-app/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	reportHandler ReportHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check", attendanceHandler.RecordCheck)
				r.Get("/my/days/{date}", attendanceHandler.GetMyDay)
				r.Get("/my/summary/{month}", attendanceHandler.GetMyMonthlySummary)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/{employeeID}/days/{date}", attendanceHandler.GetDay)
					r.Post("/{employeeID}/days/{date}/finalize", attendanceHandler.FinalizeDay)
					r.Put("/{employeeID}/days/{date}/override", attendanceHandler.OverrideDay)
					r.Get("/{employeeID}/summary/{month}", attendanceHandler.GetMonthlySummary)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", leaveHandler.SubmitRequest)
				r.Get("/requests/my", leaveHandler.GetMyRequests)
				r.Post("/requests/{id}/cancel", leaveHandler.CancelRequest)
				r.Get("/balances/my", leaveHandler.GetMyBalances)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/requests/{id}/decide", leaveHandler.DecideRequest)
					r.Get("/requests/employee/{employeeID}", leaveHandler.ListRequests)
					r.Get("/balances/employee/{employeeID}", leaveHandler.ListBalances)
					r.Put("/balances", leaveHandler.SetBalance)
				})
			})

			r.Route("/violations", func(r chi.Router) {
				r.Get("/my/{month}", reportHandler.GetMyViolations)
				r.Get("/penalties/my", reportHandler.GetMyPenalties)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/{employeeID}/{month}", reportHandler.GetViolations)
					r.Get("/penalties/employee/{employeeID}", reportHandler.GetPenalties)
					r.Put("/penalties/{id}", reportHandler.DecidePenalty)
				})
			})

			// Admin only
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", settingsHandler.UpdateSettings)
				})
			})
		})
	})
	return r
}
