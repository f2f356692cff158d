package v1

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter. Missing or malformed values
// yield def; the usecases clamp the range.
func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryList accepts both ?k=a&k=b and ?k=a,b.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
