package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/response"
)

// pathID parses the named path parameter as an entity id. A non-numeric
// segment reads as an address to nothing: 404, same as a missing row.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Abort(c, response.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}
