package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// login accepts json or form credentials and starts a session.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	var err error
	if c.ContentType() == binding.MIMEJSON {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBind(&req)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, detail("JSON parse error - "+err.Error()))
		return
	}

	var f fieldErrors
	if req.Username == "" {
		f.verr.Add("username", msgRequired)
	}
	if req.Password == "" {
		f.verr.Add("password", msgRequired)
	}
	if err := f.err(); err != nil {
		abortWithError(c, err)
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			err = service.NewNonFieldError(msgLoginFailed)
		}
		abortWithError(c, err)
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(newLinker(c), user))
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail("Successfully logged out."))
}
