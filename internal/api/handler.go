package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"printbazar/m/domain"
	"printbazar/m/internal/apperr"
	"printbazar/m/internal/shop"
)

type ctxKey string

const (
	ctxRole  ctxKey = "role"
	ctxPhone ctxKey = "phone"
)

// Admin is the single back office credential.
type Admin struct {
	Email        string
	PasswordHash string
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	shop     *shop.Shop
	secret   string
	admin    Admin
	validate *validator.Validate
}

// New constructs a Handler.
func New(s *shop.Shop, secret string, admin Admin) *Handler {
	return &Handler{shop: s, secret: secret, admin: admin, validate: newValidator()}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/customer", h.loginCustomer)
		r.Post("/staff", h.loginStaff)
		r.Post("/logout", h.logout)
	})

	r.Get("/catalog", h.listProducts)
	r.Get("/catalog/categories", h.listCategories)

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{key}", h.changeCartItem)
			r.Delete("/items/{key}", h.removeCartItem)
		})

		pr.Route("/print-jobs", func(r chi.Router) {
			r.Post("/", h.uploadPrintJob)
			r.Get("/current", h.getPrintJob)
			r.Put("/current", h.configurePrintJob)
			r.Delete("/current", h.resetPrintJob)
			r.Post("/current/commit", h.commitPrintJob)
		})

		pr.Post("/checkout", h.checkout)
		pr.Get("/orders/mine", h.myOrders)

		pr.Route("/admin", func(r chi.Router) {
			r.Use(h.staffOnly)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.listOrders)
				r.Post("/", h.createOrder)
				r.Get("/counts", h.orderCounts)
				r.Get("/{id}", h.getOrder)
				r.Patch("/{id}", h.updateOrder)
				r.Delete("/{id}", h.deleteOrder)
				r.Post("/{id}/advance", h.advanceOrder)
				r.Post("/{id}/status", h.transitionOrder)
				r.Post("/{id}/payment", h.recordPayment)
				r.Get("/{id}/whatsapp", h.whatsApp)
			})

			r.Get("/dashboard", h.dashboard)
			r.Post("/report", h.generateReport)

			r.Route("/stock", func(r chi.Router) {
				r.Get("/", h.listStock)
				r.Post("/", h.addStock)
				r.Put("/{id}", h.updateStock)
				r.Delete("/{id}", h.deleteStock)
				r.Post("/{id}/adjust", h.adjustStock)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.listExpenses)
				r.Post("/", h.addExpense)
			})

			r.Post("/categories", h.addCategory)
			r.Post("/products/{id}/toggle-stock", h.toggleProductStock)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(sess domain.Session) (string, error) {
	claims := authClaims{
		Name:  sess.Name,
		Phone: sess.Phone,
		Role:  string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxRole, claims.Role)
		ctx = context.WithValue(ctx, ctxPhone, claims.Phone)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...domain.Role) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := domain.Role(role.(string))
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

func (h *Handler) staffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.requireRole(w, r, domain.RoleAdmin, domain.RoleStaff) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Auth Handlers

type customerLoginRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,numeric,min=10"`
}

type staffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

func (h *Handler) loginCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerLoginRequest
	if !h.bind(w, r, &req) {
		return
	}
	sess, err := h.shop.LoginCustomer(r.Context(), req.Name, req.Phone)
	if err != nil {
		respondErr(w, err)
		return
	}
	h.respondSession(w, sess)
}

func (h *Handler) loginStaff(w http.ResponseWriter, r *http.Request) {
	var req staffLoginRequest
	if !h.bind(w, r, &req) {
		return
	}
	if h.admin.PasswordHash == "" || !strings.EqualFold(req.Email, h.admin.Email) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	sess, err := h.shop.LoginStaff(r.Context(), "Admin", strings.ToLower(req.Email), domain.RoleAdmin)
	if err != nil {
		respondErr(w, err)
		return
	}
	h.respondSession(w, sess)
}

func (h *Handler) respondSession(w http.ResponseWriter, sess domain.Session) {
	token, err := h.generateToken(sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, Session: sess})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.Logout(r.Context()); err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondErr maps core errors to a status code and their public message.
func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		respondError(w, http.StatusRequestTimeout, "request cancelled")
		return
	}
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("api: %v", err)
	}
	resp := errorResponse{Error: apperr.PublicMessage(err)}
	if ae, ok := apperr.As(err); ok {
		resp.Fields = ae.Fields
	}
	respondJSON(w, status, resp)
}
