package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"techos-service/internal/middleware"
	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var userEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserHandler exposes account management. Company admins manage their own
// company's accounts; super admins, carrying no company scope, see accounts
// across every tenant. Super admin accounts themselves never appear in
// listings and cannot be created through this surface.
type UserHandler struct {
	users *store.UserStore
}

// NewUserHandler wires the account endpoints.
func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

type userRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID *uint  `json:"company_id"`
	Active    *bool  `json:"active"`
}

func (r *userRequest) validate(requirePassword bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Nome é obrigatório"
	}
	if !userEmailPattern.MatchString(r.Email) {
		errs["email"] = "E-mail inválido"
	}
	if requirePassword && len(r.Password) < 6 {
		errs["password"] = "Senha deve ter no mínimo 6 caracteres"
	}
	if r.Password != "" && len(r.Password) < 6 {
		errs["password"] = "Senha deve ter no mínimo 6 caracteres"
	}
	// Super admin accounts are provisioned out of band, never via the API.
	if r.Role != model.RoleCompanyAdmin && r.Role != model.RoleUser {
		errs["role"] = "Perfil inválido"
	}
	return errs
}

// List returns accounts in scope sorted by name: the admin's own company, or
// every company for a super admin. Super admin accounts are never listed.
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	companyID := middleware.CompanyIDFromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	users, err := h.users.ListByCompany(c.Request().Context(), companyID)
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list users"})
	}

	prometheus.RecordEntityOp("user", "list")
	return c.JSON(http.StatusOK, users)
}

// Get fetches one account by id, within the caller's company scope.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	if !h.inScope(c, &user) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// Create registers an account. Email is unique platform-wide; the password is
// stored as a bcrypt hash. Company admins always create into their own
// company regardless of the payload.
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(true); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		Password: string(hash),
		Role:     req.Role,
		Active:   req.Active == nil || *req.Active,
	}
	user.SetCompanyID(h.targetCompany(c, req.CompanyID))

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			log.Warn("Duplicate user email rejected", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	prometheus.RecordEntityOp("user", "create")
	log.Info("User created", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, user)
}

// Update replaces an account's editable fields. An empty password keeps the
// stored hash.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if errs := req.validate(false); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": errs})
	}

	user, err := h.users.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	if !h.inScope(c, &user) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.TrimSpace(req.Email)
	user.Phone = req.Phone
	user.Role = req.Role
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
		}
		user.Password = string(hash)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.users.Update(c.Request().Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		log.Error("Failed to update user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}

	prometheus.RecordEntityOp("user", "update")
	return c.JSON(http.StatusOK, user)
}

// Delete hard-deletes an account. Existing tokens stay valid until they
// expire; the account lookup at the next login is what closes the door.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	user, err := h.users.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	if !h.inScope(c, &user) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.users.Delete(c.Request().Context(), 0, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		log.Error("Failed to delete user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}

	prometheus.RecordEntityOp("user", "delete")
	log.Info("User deleted", zap.Uint("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// Toggle flips an account's active flag. A deactivated account fails the next
// login with the same generic message as bad credentials.
func (h *UserHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	user, err := h.users.GetByID(c.Request().Context(), 0, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	if !h.inScope(c, &user) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err = h.users.ToggleActive(c.Request().Context(), 0, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle user"})
	}

	prometheus.RecordEntityOp("user", "toggle")
	return c.JSON(http.StatusOK, user)
}

// inScope reports whether the caller may touch the target account: super
// admins reach any non-super-admin account, company admins only their own
// company's.
func (h *UserHandler) inScope(c echo.Context, target *model.User) bool {
	if target.Role == model.RoleSuperAdmin {
		return false
	}
	scope := middleware.CompanyIDFromContext(c)
	if scope == 0 {
		return true
	}
	return target.CompanyID != nil && *target.CompanyID == scope
}

// targetCompany resolves which company a created account lands in: company
// admins always their own, super admins whatever the payload names.
func (h *UserHandler) targetCompany(c echo.Context, requested *uint) uint {
	if scope := middleware.CompanyIDFromContext(c); scope != 0 {
		return scope
	}
	if requested != nil {
		return *requested
	}
	return 0
}
