package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rajatsoni/panchang-api/internal/choghadiya"
	"github.com/rajatsoni/panchang-api/internal/config"
	"github.com/rajatsoni/panchang-api/internal/database"
	"github.com/rajatsoni/panchang-api/internal/muhurta"
	"github.com/rajatsoni/panchang-api/internal/panchang"
	"github.com/rajatsoni/panchang-api/internal/sunapi"
)

// maxRangeDays caps the range endpoint to keep bulk queries bounded.
const maxRangeDays = 90

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	sun    *sunapi.Provider
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance. sun may be nil, in which
// case every response uses the built-in sun-time approximation.
func NewHandlers(db *database.DB, sun *sunapi.Provider, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{db: db, sun: sun, cfg: cfg, logger: logger}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{"status": "healthy"})
}

// snapshotFor builds the scored snapshot for a date, routing sun times
// through the external provider when the request carries coordinates.
func (h *Handlers) snapshotFor(r *http.Request, date time.Time, event muhurta.EventType) panchang.Snapshot {
	snap := panchang.Approximate(date)

	if lat, lon, ok := coordinates(r, h.cfg); ok && h.sun != nil {
		times := h.sun.Lookup(r.Context(), lat, lon, date)
		snap.Sunrise = panchang.FormatMinutes(times.SunriseMinutes)
		snap.Sunset = panchang.FormatMinutes(times.SunsetMinutes)
	}

	snap.QualityScore = muhurta.Score(snap, event)
	snap.IsAuspicious = muhurta.IsAuspicious(snap.QualityScore)
	return snap
}

// GetTodayPanchang handles GET /api/v1/panchang/today
func (h *Handlers) GetTodayPanchang(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshotFor(r, time.Now(), muhurta.EventNone)
	WriteSuccess(w, snap)
}

// GetDatePanchang handles GET /api/v1/panchang/date/{date}
func (h *Handlers) GetDatePanchang(w http.ResponseWriter, r *http.Request) {
	date, ok := datePathValue(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.snapshotFor(r, date, muhurta.EventNone))
}

// GetRangePanchang handles GET /api/v1/panchang/range?start=YYYY-MM-DD&end=YYYY-MM-DD
//
// Days are computed independently; a failure on one day (impossible for
// the pure approximation, but the shape allows per-day sun lookups)
// skips that day rather than failing the whole range. A client that
// navigates away cancels the request context and the loop stops early.
func (h *Handlers) GetRangePanchang(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := panchang.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := panchang.ParseDateString(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	daysDiff := int(endDate.Sub(startDate).Hours() / 24)
	if daysDiff > maxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", maxRangeDays))
		return
	}

	event := muhurta.ParseEventType(r.URL.Query().Get("event"))

	var results []panchang.Snapshot
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		if r.Context().Err() != nil {
			// Superseded request; abandon without partial writes.
			return
		}
		results = append(results, h.snapshotFor(r, current, event))
	}

	WriteSuccess(w, map[string]any{
		"start": startStr,
		"end":   endStr,
		"days":  results,
	})
}

// GetChoghadiya handles GET /api/v1/choghadiya/date/{date}
func (h *Handlers) GetChoghadiya(w http.ResponseWriter, r *http.Request) {
	date, ok := datePathValue(w, r)
	if !ok {
		return
	}

	sunrise, sunset := h.sunTimes(r, date)
	day, night := choghadiya.Partition(date, sunrise, sunset)

	resp := map[string]any{
		"date":  panchang.FormatDate(date),
		"day":   day,
		"night": night,
	}

	// Only meaningful when the queried date is today.
	now := time.Now()
	if panchang.FormatDate(now) == panchang.FormatDate(date) {
		if current := choghadiya.CurrentPeriod(append(day, night...), now); current != nil {
			resp["current"] = current
		}
	}

	WriteSuccess(w, resp)
}

// GetMuhurtaScore handles GET /api/v1/muhurta/score/{date}?event=
func (h *Handlers) GetMuhurtaScore(w http.ResponseWriter, r *http.Request) {
	date, ok := datePathValue(w, r)
	if !ok {
		return
	}

	event := muhurta.ParseEventType(r.URL.Query().Get("event"))
	snap := h.snapshotFor(r, date, event)
	breakdown := muhurta.BreakdownFor(snap, event)

	WriteSuccess(w, map[string]any{
		"snapshot":  snap,
		"event":     event,
		"breakdown": breakdown,
	})
}

// GetMuhurtaSlots handles GET /api/v1/muhurta/slots/{date}?width=&step=&event=
func (h *Handlers) GetMuhurtaSlots(w http.ResponseWriter, r *http.Request) {
	date, ok := datePathValue(w, r)
	if !ok {
		return
	}

	slots := h.rankedSlots(r, date)
	WriteSuccess(w, map[string]any{
		"date":  panchang.FormatDate(date),
		"slots": slots,
	})
}

// GetSlotsICS handles GET /api/v1/muhurta/slots/{date}/ics?title=
// It exports the best-ranked slot as an iCalendar file.
func (h *Handlers) GetSlotsICS(w http.ResponseWriter, r *http.Request) {
	date, ok := datePathValue(w, r)
	if !ok {
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "Auspicious time"
	}

	slots := h.rankedSlots(r, date)
	if len(slots) == 0 {
		WriteNotFound(w, "No slots available for this date")
		return
	}

	ics := muhurta.WrapCalendar(muhurta.ToCalendarEvent(title, slots[0]))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=muhurta-%s.ics", panchang.FormatDate(date)))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ics)
}

// rankedSlots builds the scored slot list for a date from its snapshot,
// using the day's quality score as the base.
func (h *Handlers) rankedSlots(r *http.Request, date time.Time) []muhurta.Slot {
	event := muhurta.ParseEventType(r.URL.Query().Get("event"))
	snap := h.snapshotFor(r, date, event)

	base := float64(snap.QualityScore)
	return muhurta.RankSlots(muhurta.SlotInput{
		Date:        date,
		Sunrise:     snap.Sunrise,
		Sunset:      snap.Sunset,
		Tithi:       snap.Tithi,
		Nakshatra:   snap.Nakshatra,
		BaseQuality: &base,
	}, queryInt(r, "width"), queryInt(r, "step"))
}

// GetProfile handles GET /api/v1/profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.db.GetProfile(r.Context())
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "No profile saved")
			return
		}
		h.logger.Error("failed to get profile", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}

	WriteSuccess(w, profile)
}

// PutProfile handles PUT /api/v1/profile
func (h *Handlers) PutProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name"`
		BirthDate  string  `json:"birthDate"`
		BirthTime  *string `json:"birthTime,omitempty"`
		BirthPlace *string `json:"birthPlace,omitempty"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Name == "" {
		WriteBadRequest(w, "name is required")
		return
	}

	birthDate, err := panchang.ParseDateString(req.BirthDate)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid birthDate: %s. Use YYYY-MM-DD", req.BirthDate))
		return
	}

	// The moon sign is derived, never user-entered.
	profile := &database.Profile{
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		BirthTime:  req.BirthTime,
		BirthPlace: req.BirthPlace,
		MoonSign:   panchang.Approximate(birthDate).MoonSign,
	}

	if err := h.db.SaveProfile(r.Context(), profile); err != nil {
		h.logger.Error("failed to save profile", slog.Any("error", err))
		WriteInternalError(w, "Failed to save profile")
		return
	}

	WriteSuccess(w, profile)
}

// DeleteProfile handles DELETE /api/v1/profile
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteProfile(r.Context()); err != nil {
		h.logger.Error("failed to delete profile", slog.Any("error", err))
		WriteInternalError(w, "Failed to delete profile")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Profile deleted"})
}

// sunTimes resolves sun times for a date, preferring the external
// provider when coordinates are present.
func (h *Handlers) sunTimes(r *http.Request, date time.Time) (sunrise, sunset int) {
	if lat, lon, ok := coordinates(r, h.cfg); ok && h.sun != nil {
		times := h.sun.Lookup(r.Context(), lat, lon, date)
		return times.SunriseMinutes, times.SunsetMinutes
	}
	return panchang.SunTimes(date)
}

// datePathValue extracts and parses the {date} path segment, writing a
// 400 on failure.
func datePathValue(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.PathValue("date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return time.Time{}, false
	}

	date, err := panchang.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return time.Time{}, false
	}

	return date, true
}

// coordinates reads lat/lon from the query, falling back to configured
// defaults. ok is false when neither the request nor the config provides
// a location.
func coordinates(r *http.Request, cfg *config.Config) (lat, lon float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr != "" && lonStr != "" {
		latVal, errLat := strconv.ParseFloat(latStr, 64)
		lonVal, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat == nil && errLon == nil {
			return latVal, lonVal, true
		}
	}

	if cfg != nil && (cfg.DefaultLat != 0 || cfg.DefaultLon != 0) {
		return cfg.DefaultLat, cfg.DefaultLon, true
	}

	return 0, 0, false
}

// queryInt reads an integer query parameter, returning 0 (meaning "use
// the default") when absent or malformed.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// decodeJSON decodes a JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
