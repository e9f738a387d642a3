package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"salonbook/internal/cart"
	"salonbook/internal/database"
	"salonbook/internal/models"
	"salonbook/internal/service"

	"github.com/google/uuid"
)

const sessionHeader = "X-Session-ID"

// session returns the caller's session id, minting one for first-time
// visitors. The id is always echoed so the client can persist it.
func session(w http.ResponseWriter, r *http.Request) string {
	sid := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sid == "" {
		sid = uuid.NewString()
	}
	w.Header().Set(sessionHeader, sid)
	return sid
}

// cartView is the cart payload returned by every cart endpoint.
type cartView struct {
	Items         []models.CartItem `json:"items"`
	TotalPrice    float64           `json:"total_price"`
	TotalDuration int               `json:"total_duration"`
	Duplicate     bool              `json:"duplicate,omitempty"`
}

func newCartView(c *cart.Cart, duplicate bool) cartView {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return cartView{
		Items:         items,
		TotalPrice:    c.Total(),
		TotalDuration: c.TotalDuration(),
		Duplicate:     duplicate,
	}
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.GetServices(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("load service catalog")
		writeError(w, http.StatusInternalServerError, "failed to load services")
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"slots": models.TimeSlots()})
}

func (s *HTTPServer) handleCart(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)

	switch r.Method {
	case http.MethodGet:
		c, err := s.carts.Get(r.Context(), sid)
		if err != nil {
			s.logger.Error().Err(err).Msg("load cart")
			writeError(w, http.StatusInternalServerError, "failed to load cart")
			return
		}
		writeJSON(w, http.StatusOK, newCartView(c, false))

	case http.MethodDelete:
		if err := s.carts.Clear(r.Context(), sid); err != nil {
			s.logger.Error().Err(err).Msg("clear cart")
			writeError(w, http.StatusInternalServerError, "failed to clear cart")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sid := session(w, r)

	var body struct {
		ServiceID string `json:"service_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.ServiceID) == "" {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	c, duplicate, err := s.carts.Add(r.Context(), sid, body.ServiceID)
	if err != nil {
		if errors.Is(err, database.ErrServiceNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		s.logger.Error().Err(err).Str("service_id", body.ServiceID).Msg("add to cart")
		writeError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	writeJSON(w, http.StatusOK, newCartView(c, duplicate))
}

func (s *HTTPServer) handleCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sid := session(w, r)

	const prefix = "/api/v1/cart/items/"
	serviceID := strings.TrimPrefix(r.URL.Path, prefix)
	if serviceID == "" || strings.Contains(serviceID, "/") {
		writeError(w, http.StatusBadRequest, "service id is required")
		return
	}

	c, err := s.carts.Remove(r.Context(), sid, serviceID)
	if err != nil {
		s.logger.Error().Err(err).Str("service_id", serviceID).Msg("remove from cart")
		writeError(w, http.StatusInternalServerError, "failed to remove from cart")
		return
	}

	writeJSON(w, http.StatusOK, newCartView(c, false))
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	case http.MethodGet:
		s.handleListBookings(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)

	// One submission per session at a time.
	if _, loaded := s.inFlight.LoadOrStore(sid, struct{}{}); loaded {
		writeError(w, http.StatusConflict, "booking already in progress")
		return
	}
	defer s.inFlight.Delete(sid)

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.Submit(r.Context(), sid, &req)
	if err != nil {
		status, message := submitErrorStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error().Err(err).Msg("submit booking")
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

func submitErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrPastDate),
		errors.Is(err, service.ErrDateTooFar),
		errors.Is(err, service.ErrInvalidSlot):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	default:
		return http.StatusInternalServerError, "failed to create booking"
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/bookings/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error().Err(err).Str("booking_id", id).Msg("get booking")
		writeError(w, http.StatusInternalServerError, "failed to load booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.GetBookingsByDateRange(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("list bookings")
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "exports are not configured")
		return
	}

	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := s.exporter.ExportBookings(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("export bookings")
		writeError(w, http.StatusInternalServerError, "failed to export bookings")
		return
	}

	w.Header().Set("Content-Disposition", "attachment")
	http.ServeFile(w, r, path)
}

// handleNotification re-sends the owner email for an existing booking. The
// body carries the booking itself so the endpoint stays stateless.
func (s *HTTPServer) handleNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.email == nil {
		writeError(w, http.StatusServiceUnavailable, "email notifications are not configured")
		return
	}

	var body struct {
		Booking *models.Booking `json:"booking"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Booking == nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.email.Send(r.Context(), body.Booking)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", body.Booking.ID).Msg("send booking notification")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	fromStr := strings.TrimSpace(r.URL.Query().Get("from"))
	toStr := strings.TrimSpace(r.URL.Query().Get("to"))
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, errors.New("from and to are required")
	}

	start, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date; expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date; expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("to must not be before from")
	}
	return start, end, nil
}
