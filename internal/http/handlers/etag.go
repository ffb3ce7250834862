package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag encodes payload once, tags it with a strong ETag and
// answers 304 when the client already holds that representation.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.JSON(status, payload)
		return
	}

	etag := etagFor(body)
	ctx.Header("ETag", etag)
	ctx.Header("Cache-Control", "no-cache")

	if ifNoneMatchMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", body)
}

func etagFor(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func ifNoneMatchMatches(headerValue, current string) bool {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return false
	}
	if headerValue == "*" {
		return true
	}

	for _, part := range strings.Split(headerValue, ",") {
		// weak comparison: W/"x" matches "x"
		candidate := strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if candidate == current {
			return true
		}
	}

	return false
}
