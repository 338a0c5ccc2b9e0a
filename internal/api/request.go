package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/emrgen/wiki/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Nullable tells an absent json field apart from an explicit null.
type Nullable[T any] struct {
	Value T
	Set   bool
	Valid bool
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value, or nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// bindJSON decodes a json request body into v. An empty body leaves v
// untouched. It writes the error response and returns false on failure.
func bindJSON(c *gin.Context, v any) bool {
	if ct := c.ContentType(); ct != "" && ct != binding.MIMEJSON {
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, detail(fmt.Sprintf("Unsupported media type \"%s\" in request.", ct)))
		return false
	}

	if err := c.ShouldBindJSON(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, detail("JSON parse error - "+err.Error()))
		return false
	}

	return true
}

// pathID reads a numeric path parameter. Anything else cannot name a record.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s %q", store.ErrNotFound, name, raw)
	}

	return uint(id), nil
}

// clientIP returns the address the request came from, if known.
func clientIP(c *gin.Context) *string {
	ip := strings.TrimSpace(c.ClientIP())
	if ip == "" {
		return nil
	}
	return &ip
}
