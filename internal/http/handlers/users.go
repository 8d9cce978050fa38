package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sikmo/useradmin/internal/cache"
	"github.com/sikmo/useradmin/internal/config"
	"github.com/sikmo/useradmin/internal/domain/role"
	"github.com/sikmo/useradmin/internal/domain/user"
	"github.com/sikmo/useradmin/internal/security"
)

type UserStore interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Create(ctx context.Context, username, surname, firstname, email, passwordHash string, roleID int64) error
	Update(ctx context.Context, id int64, surname, firstname, username, email string, roleID int64) error
	Delete(ctx context.Context, id int64) error
}

type RoleStore interface {
	List(ctx context.Context) ([]role.Role, error)
	ListForUser(ctx context.Context, userID int64) ([]role.UserRole, error)
}

type UsersHandler struct {
	users UserStore
	roles RoleStore
	cache *cache.Cache
}

func NewUsersHandler(users UserStore, roles RoleStore) *UsersHandler {
	return &UsersHandler{users: users, roles: roles}
}

func NewUsersHandlerWithCache(users UserStore, roles RoleStore, c *cache.Cache) *UsersHandler {
	return &UsersHandler{users: users, roles: roles, cache: c}
}

type CreateUserRequest struct {
	Username  string `form:"username"`
	Surname   string `form:"surname"`
	Firstname string `form:"firstname"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Role      int64  `form:"role"`
}

type UpdateUserRequest struct {
	Surname   string `form:"surname"`
	Firstname string `form:"firstname"`
	Username  string `form:"username"`
	Email     string `form:"email"`
	Role      int64  `form:"role"`
}

// List renders the user table. The update/delete query flags carry the
// outcome of a prior write redirect.
func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "user_list", gin.H{
		"users":  users,
		"update": ctx.Query("update"),
		"delete": ctx.Query("delete"),
	})
}

func (h *UsersHandler) NewForm(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	roles, err := h.loadRoles(cctx)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "add_user", gin.H{"roles": roles})
}

func (h *UsersHandler) Create(ctx *gin.Context) {
	var req CreateUserRequest

	if err := ctx.ShouldBind(&req); err != nil {
		RespondError(ctx, err)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err = h.users.Create(cctx, req.Username, req.Surname, req.Firstname, req.Email, hash, req.Role)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/user_list?update=success")
}

func (h *UsersHandler) Detail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		// an unparseable id behaves like a missing user
		ctx.Redirect(http.StatusFound, "/user_list")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.Redirect(http.StatusFound, "/user_list")
			return
		}

		RespondError(ctx, err)
		return
	}

	userRoles, err := h.roles.ListForUser(cctx, id)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	roles, err := h.loadRoles(cctx)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "user_detail", gin.H{
		"user":      u,
		"userRoles": userRoles,
		"roles":     roles,
	})
}

func (h *UsersHandler) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	var req UpdateUserRequest

	if err := ctx.ShouldBind(&req); err != nil {
		RespondError(ctx, err)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err = h.users.Update(cctx, id, req.Surname, req.Firstname, req.Username, req.Email, req.Role)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/user_list?update=success")
}

// Delete removes the user. A missing id is a no-op in the procedure, so
// the redirect still reports success.
func (h *UsersHandler) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err = h.users.Delete(cctx, id)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/user_list?delete=success")
}

const rolesCacheKey = "roles.list"

func (h *UsersHandler) loadRoles(ctx context.Context) ([]role.Role, error) {
	if h.cache != nil {
		if v, ok := h.cache.Get(rolesCacheKey); ok {
			if roles, ok := v.([]role.Role); ok {
				return roles, nil
			}
		}
	}

	roles, err := h.roles.List(ctx)

	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Set(rolesCacheKey, roles)
	}

	return roles, nil
}
