package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stocktrack/stocktrack/internal/csvtemplate"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/repository"
	"github.com/stocktrack/stocktrack/internal/status"
)

func (r *Router) filterOptions(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"order_status":    []string{status.All, status.Requested, status.Preparing, status.Ordered, status.NotOrdered, status.Received},
		"shortage_status": []string{status.All, status.InStock, status.Caution, status.Shortage},
	})
}

func (r *Router) inventory(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter := models.FilterCriteria{
		QRCode:         q.Get("qr_code"),
		SearchText:     q.Get("search_text"),
		OrderStatus:    q.Get("order_status"),
		ShortageStatus: q.Get("shortage_status"),
	}

	listing, err := r.svc.Inventory(req.Context(), filter)
	if err != nil {
		slog.Error("inventory query failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := make([]itemJSON, len(listing.Items))
	for i, c := range listing.Items {
		data[i] = encodeItem(c)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"data":     data,
		"total":    listing.Total,
		"filtered": listing.Filtered,
	})
}

func (r *Router) outbound(w http.ResponseWriter, req *http.Request) {
	r.movement(w, req, models.ActionOutbound)
}

func (r *Router) inbound(w http.ResponseWriter, req *http.Request) {
	r.movement(w, req, models.ActionInbound)
}

func (r *Router) movement(w http.ResponseWriter, req *http.Request, kind models.ActionKind) {
	var body models.MovementRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := body.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var newStock int
	var err error
	if kind == models.ActionOutbound {
		newStock, err = r.svc.Outbound(req.Context(), body)
	} else {
		newStock, err = r.svc.Inbound(req.Context(), body)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   fmt.Sprintf("%s of %d recorded for %s", kind, body.Quantity, body.Code),
		"new_stock": newStock,
	})
}

func (r *Router) order(w http.ResponseWriter, req *http.Request) {
	var body models.OrderRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := body.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := r.svc.RequestOrder(req.Context(), body)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("order request for %s filed", body.Code),
		"order_id": order.ID,
	})
}

func (r *Router) updateConsumable(w http.ResponseWriter, req *http.Request) {
	code := mux.Vars(req)["code"]

	var body models.ItemUpdate
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := body.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.svc.UpdateItem(req.Context(), code, body); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%s updated", code),
	})
}

func (r *Router) movements(w http.ResponseWriter, req *http.Request) {
	limit := 20
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	moves, err := r.svc.Movements(req.Context(), mux.Vars(req)["code"], limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data := make([]movementJSON, len(moves))
	for i, m := range moves {
		data[i] = encodeMovement(m)
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (r *Router) downloadTemplate(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+csvtemplate.FileName)
	w.WriteHeader(http.StatusOK)
	w.Write(csvtemplate.Bytes())
}

// respondServiceError maps service failures to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
