package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"printbazar/m/domain"
	"printbazar/m/internal/printjob"
	"printbazar/m/internal/shop"
	"printbazar/m/internal/storage"
)

const maxUploadBytes = 32 << 20

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.shop.Products(q.Get("category"), q.Get("q")))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.shop.Categories())
}

// Cart

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type changeQuantityRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.shop.Cart())
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.shop.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) changeCartItem(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.shop.ChangeQuantity(r.Context(), chi.URLParam(r, "key"), req.Delta)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.shop.RemoveFromCart(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.shop.ClearCart(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Print jobs

type configurePrintJobRequest struct {
	Mode    string `json:"print_mode" validate:"required,oneof=BW Color"`
	Sides   string `json:"sides" validate:"required,oneof=Single Double"`
	Binding string `json:"binding" validate:"required,oneof=None Spiral Wire Hard"`
}

func (h *Handler) uploadPrintJob(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	snap, err := h.shop.UploadPrintFile(r.Context(), file, storage.PutInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, snap)
}

func (h *Handler) getPrintJob(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("wait") == "true" {
		snap, err := h.shop.WaitPrintJob(r.Context())
		if err != nil {
			respondErr(w, err)
			return
		}
		respondJSON(w, http.StatusOK, snap)
		return
	}
	respondJSON(w, http.StatusOK, h.shop.PrintJob())
}

func (h *Handler) configurePrintJob(w http.ResponseWriter, r *http.Request) {
	var req configurePrintJobRequest
	if !h.bind(w, r, &req) {
		return
	}
	snap, err := h.shop.ConfigurePrintJob(printjob.Options{
		Mode:    domain.PrintMode(req.Mode),
		Sides:   domain.Sides(req.Sides),
		Binding: domain.Binding(req.Binding),
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (h *Handler) commitPrintJob(w http.ResponseWriter, r *http.Request) {
	view, err := h.shop.CommitPrintJob(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) resetPrintJob(w http.ResponseWriter, r *http.Request) {
	h.shop.ResetPrintJob()
	respondJSON(w, http.StatusOK, h.shop.PrintJob())
}

// Checkout

type checkoutRequest struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Urgent bool   `json:"urgent"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !h.bind(w, r, &req) {
		return
	}
	order, err := h.shop.Checkout(r.Context(), shop.CheckoutInput{Name: req.Name, Phone: req.Phone, Urgent: req.Urgent})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.shop.MyOrders())
}
