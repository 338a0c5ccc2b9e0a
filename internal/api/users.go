package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Username    Nullable[string] `json:"username"`
	Email       Nullable[string] `json:"email"`
	Password    Nullable[string] `json:"password"`
	FirstName   Nullable[string] `json:"first_name"`
	LastName    Nullable[string] `json:"last_name"`
	IsActive    Nullable[bool]   `json:"is_active"`
	IsStaff     Nullable[bool]   `json:"is_staff"`
	IsSuperuser Nullable[bool]   `json:"is_superuser"`
	Groups      Nullable[[]uint] `json:"groups"`
}

// input validates the request. A partial request leaves out fields that
// are not sent.
func (r *userRequest) input(partial bool) (service.UserInput, error) {
	var f fieldErrors
	var in service.UserInput

	if r.Username.Set || !partial {
		if f.present("username", r.Username.Set, r.Username.Valid, false) {
			username := strings.TrimSpace(r.Username.Value)
			f.text("username", username, 150)
			f.check("username", username, "omitempty,username")
			in.Username = &username
		}
	}

	if f.notNull("email", r.Email.Set, r.Email.Valid) && r.Email.Set {
		email := strings.TrimSpace(r.Email.Value)
		f.check("email", email, "omitempty,max=254,email")
		in.Email = &email
	}

	if f.notNull("password", r.Password.Set, r.Password.Valid) && r.Password.Set {
		if r.Password.Value == "" {
			f.verr.Add("password", msgBlank)
		}
		f.check("password", r.Password.Value, "max=128")
		in.Password = r.Password.Ptr()
	}

	for _, name := range []struct {
		field string
		value Nullable[string]
		dst   **string
	}{
		{"first_name", r.FirstName, &in.FirstName},
		{"last_name", r.LastName, &in.LastName},
	} {
		if f.notNull(name.field, name.value.Set, name.value.Valid) && name.value.Set {
			v := strings.TrimSpace(name.value.Value)
			f.check(name.field, v, "max=150")
			*name.dst = &v
		}
	}

	for _, flag := range []struct {
		field string
		value Nullable[bool]
		dst   **bool
	}{
		{"is_active", r.IsActive, &in.IsActive},
		{"is_staff", r.IsStaff, &in.IsStaff},
		{"is_superuser", r.IsSuperuser, &in.IsSuperuser},
	} {
		if f.notNull(flag.field, flag.value.Set, flag.value.Valid) {
			*flag.dst = flag.value.Ptr()
		}
	}

	if f.notNull("groups", r.Groups.Set, r.Groups.Valid) && r.Groups.Set {
		in.GroupIDs = r.Groups.Ptr()
	}

	return in, f.err()
}

func (h *Handler) listUsers(c *gin.Context) {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	users, total, err := h.services.Users.ListUsers(c.Request.Context(), page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]UserView, 0, len(users))
	for _, u := range users {
		results = append(results, userView(l, u))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := h.services.Users.GetUser(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(newLinker(c), user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := req.input(false)
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := h.services.Users.CreateUser(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.AbortWithStatusJSON(http.StatusConflict, detail(msgUsernameUsed))
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userView(newLinker(c), user))
}

func (h *Handler) replaceUser(c *gin.Context) {
	h.updateUser(c, false)
}

func (h *Handler) patchUser(c *gin.Context) {
	h.updateUser(c, true)
}

func (h *Handler) updateUser(c *gin.Context, partial bool) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	if _, err := h.services.Users.GetUser(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := req.input(partial)
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := h.services.Users.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			err = service.NewFieldError("username", msgUsernameUsed)
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(newLinker(c), user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.services.Users.DeleteUser(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
