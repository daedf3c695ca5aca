package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/pizza-pricing/internal/common"
	"github.com/noah-isme/pizza-pricing/internal/pricing"
)

// Handler exposes the menu and quote endpoints.
type Handler struct {
	Svc      *Service
	validate *validator.Validate
}

// NewHandler wires a handler around svc.
func NewHandler(svc *Service) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{Svc: svc, validate: v}
}

type quoteRequest struct {
	Day   string             `json:"day" validate:"omitempty,min=3,max=9"`
	Items []quoteRequestItem `json:"items" validate:"required,min=1,dive"`
}

type quoteRequestItem struct {
	Pizza    string `json:"pizza" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,lte=1000"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Menu lists the catalog priced for ?day= or for today.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	day, err := parseDay(r.URL.Query().Get("day"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Menu(day)})
}

// Create prices the posted order and returns the breakdown without storing it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var payload quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid quote request", fieldErrors(err))
		return
	}
	req, err := toRequest(payload)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	q, err := h.Svc.Quote(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": q})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidQuantity):
		common.WriteError(w, common.BadRequest("INVALID_QUANTITY", err.Error(), err))
	case errors.Is(err, ErrTooManyItems):
		common.WriteError(w, common.BadRequest("TOO_MANY_ITEMS", err.Error(), err))
	default:
		common.WriteError(w, err)
	}
}

func toRequest(payload quoteRequest) (Request, error) {
	day, err := parseDay(payload.Day)
	if err != nil {
		return Request{}, err
	}
	req := Request{Day: day, Items: make([]Item, 0, len(payload.Items))}
	for i, it := range payload.Items {
		p, err := pricing.ParsePizzaType(it.Pizza)
		if err != nil {
			appErr := common.BadRequest("UNKNOWN_PIZZA", err.Error(), err)
			appErr.Details = map[string]any{"index": i}
			return Request{}, appErr
		}
		req.Items = append(req.Items, Item{Pizza: p, Quantity: *it.Quantity})
	}
	return req, nil
}

func parseDay(value string) (*pricing.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := pricing.ParseWeekday(value)
	if err != nil {
		return nil, common.BadRequest("UNKNOWN_DAY", err.Error(), err)
	}
	return &d, nil
}

func fieldErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		out = append(out, fieldError{Field: field, Rule: fe.Tag()})
	}
	return out
}
