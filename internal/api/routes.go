package api

import (
	"log/slog"
	"net/http"

	"github.com/rajatsoni/panchang-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                              liveness + database check
//	GET  /api/v1/panchang/today               today's snapshot
//	GET  /api/v1/panchang/date/{date}         snapshot for a date
//	GET  /api/v1/panchang/range?start&end     snapshots for a span (<= 90 days)
//	GET  /api/v1/choghadiya/date/{date}       day/night period partition
//	GET  /api/v1/muhurta/score/{date}         score + factor breakdown
//	GET  /api/v1/muhurta/slots/{date}         ranked time slots
//	GET  /api/v1/muhurta/slots/{date}/ics     best slot as iCalendar
//	GET  /api/v1/profile                      stored profile (auth)
//	PUT  /api/v1/profile                      save profile (auth)
//	DELETE /api/v1/profile                    remove profile (auth)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	baseMiddleware := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	authWrap := AuthMiddleware(cfg, logger)

	// Public routes
	mux.HandleFunc("GET /health", handlers.HealthCheck)
	mux.HandleFunc("GET /api/v1/panchang/today", handlers.GetTodayPanchang)
	mux.HandleFunc("GET /api/v1/panchang/date/{date}", handlers.GetDatePanchang)
	mux.HandleFunc("GET /api/v1/panchang/range", handlers.GetRangePanchang)
	mux.HandleFunc("GET /api/v1/choghadiya/date/{date}", handlers.GetChoghadiya)
	mux.HandleFunc("GET /api/v1/muhurta/score/{date}", handlers.GetMuhurtaScore)
	mux.HandleFunc("GET /api/v1/muhurta/slots/{date}", handlers.GetMuhurtaSlots)
	mux.HandleFunc("GET /api/v1/muhurta/slots/{date}/ics", handlers.GetSlotsICS)

	// Profile routes (authenticated)
	mux.Handle("GET /api/v1/profile", authWrap(http.HandlerFunc(handlers.GetProfile)))
	mux.Handle("PUT /api/v1/profile", authWrap(http.HandlerFunc(handlers.PutProfile)))
	mux.Handle("DELETE /api/v1/profile", authWrap(http.HandlerFunc(handlers.DeleteProfile)))

	return baseMiddleware(mux)
}
