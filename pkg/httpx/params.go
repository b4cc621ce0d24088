package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryParam — первое непустое (после обрезки пробелов) значение из query по списку имён.
// Позволяет принимать и camelCase, и snake_case варианты одного параметра.
func QueryParam(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			return v
		}
	}
	return ""
}
