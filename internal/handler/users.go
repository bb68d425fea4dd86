package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/middleware"
	"golang.org/x/crypto/bcrypt"
)

// UserStore defines the database methods needed by user handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type UserStore interface {
	ListUsers(ctx context.Context, role pgtype.Text) ([]database.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (database.User, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	UpdateUser(ctx context.Context, arg database.UpdateUserParams) (database.User, error)
	SoftDeleteUser(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	CountActiveAdmins(ctx context.Context) (int64, error)
}

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	store UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// RegisterPublicRoutes registers the waiter directory used by waiter and kiosk screens.
func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/users/waiters", h.ListWaiters)
}

// RegisterBootstrapRoutes registers user creation. Mount it behind
// OptionalAuthenticate so the very first admin can be created without a token.
func (h *UserHandler) RegisterBootstrapRoutes(r chi.Router) {
	r.Post("/users", h.Create)
}

// RegisterRoutes registers the admin-only user endpoints.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.List)
	r.Get("/users/{id}", h.Get)
	r.Put("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
}

// --- Request / Response types ---

type createUserRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=15"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"required,oneof=admin waiter receptionist kitchen"`
	ProfileImage string `json:"profile_image"`
}

type updateUserRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=15"`
	Password     string `json:"password" validate:"omitempty,min=6"`
	Role         string `json:"role" validate:"required,oneof=admin waiter receptionist kitchen"`
	ProfileImage string `json:"profile_image"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	ProfileImage *string   `json:"profile_image"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type waiterResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func toUserResponse(u database.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		ProfileImage: textPtr(u.ProfileImage),
		IsDeleted:    u.IsDeleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// --- Handlers ---

// ListWaiters returns id and name of every active waiter.
func (h *UserHandler) ListWaiters(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context(), pgtype.Text{String: enum.UserRoleWaiter, Valid: true})
	if err != nil {
		writeInternalError(w, "list waiters", err)
		return
	}

	resp := make([]waiterResponse, len(users))
	for i, u := range users {
		resp[i] = waiterResponse{ID: u.ID, Name: u.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// List returns all active users, optionally filtered by ?role=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	var role pgtype.Text
	if s := r.URL.Query().Get("role"); s != "" {
		if !enum.IsStaffRole(s) && s != enum.UserRoleCustomer {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid role"})
			return
		}
		role = pgtype.Text{String: s, Valid: true}
	}

	users, err := h.store.ListUsers(r.Context(), role)
	if err != nil {
		writeInternalError(w, "list users", err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one user, including soft-deleted ones.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		writeInternalError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Create adds a staff user. Without a token it only succeeds while no
// active admin exists, and then only for role admin.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		admins, err := h.store.CountActiveAdmins(r.Context())
		if err != nil {
			writeInternalError(w, "count admins", err)
			return
		}
		if admins > 0 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			return
		}
		if req.Role != enum.UserRoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "the first user must be an admin"})
			return
		}
	} else if claims.Role != enum.UserRoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeInternalError(w, "hash password", err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), database.CreateUserParams{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		HashedPassword: string(hash),
		Role:           req.Role,
		ProfileImage:   textOrNull(req.ProfileImage),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "email or phone already exists"})
			return
		}
		writeInternalError(w, "create user", err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Update replaces a user's profile. The password is re-hashed only when supplied.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var hashed pgtype.Text
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeInternalError(w, "hash password", err)
			return
		}
		hashed = pgtype.Text{String: string(hash), Valid: true}
	}

	user, err := h.store.UpdateUser(r.Context(), database.UpdateUserParams{
		ID:             userID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           req.Role,
		HashedPassword: hashed,
		ProfileImage:   textOrNull(req.ProfileImage),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "email or phone already exists"})
			return
		}
		writeInternalError(w, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Delete soft-deletes a user. Orders keep referencing it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return
	}

	if _, err := h.store.SoftDeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		writeInternalError(w, "delete user", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
