package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	catalogdomain "github.com/al1ce23/shitshop/internal/catalog/domain"
	orderdomain "github.com/al1ce23/shitshop/internal/order/domain"
	"github.com/go-chi/chi/v5"
)

const (
	msgOrderSubmitted = "Order submitted successfully"
	msgOrderFailed    = "Failed to submit order"
	msgProductsFailed = "Failed to load products"
	msgInvalidBody    = "Invalid request body"
	msgBodyTooLarge   = "Request body too large"
)

type productDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
}

func toProductDTO(p catalogdomain.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       json.Number(p.Price.String()),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.log.Error("list products failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, msgProductsFailed)
		return
	}

	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err, msgProductsFailed)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	var payload orderdomain.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	order, err := h.orders.SubmitOrder(r.Context(), payload)
	if err != nil {
		writeAppError(w, err, msgOrderFailed)
		return
	}

	writeJSON(w, http.StatusOK, orderdomain.OrderResponse{
		Success: true,
		Message: msgOrderSubmitted,
		OrderID: order.ID,
	})
}
