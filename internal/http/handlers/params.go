package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/meetuphub/internal/domain/page"
)

const requestTimeout = 2 * time.Second

// parseID accepts the ids the int4 primary keys can hold.
func parseID(raw string) (int, bool) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return int(id), true
}

// pathID reads a positive integer path parameter, answering 400 otherwise.
func pathID(ctx *gin.Context, name, resource string) (int, bool) {
	id, ok := parseID(ctx.Param(name))
	if !ok {
		RespondBadRequest(ctx, resource+" id must be a positive 32-bit integer", gin.H{"field": name})
		return 0, false
	}
	return id, true
}

// pageableFrom reads ?page= and ?size=, falling back to page 0 and the default size.
func pageableFrom(ctx *gin.Context) (page.Pageable, bool) {
	number, size := 0, page.DefaultSize

	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondBadRequest(ctx, "page must be an integer", gin.H{"field": "page"})
			return page.Pageable{}, false
		}
		number = n
	}

	if raw := ctx.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondBadRequest(ctx, "size must be an integer", gin.H{"field": "size"})
			return page.Pageable{}, false
		}
		size = n
	}

	p, err := page.Of(number, size)
	if err != nil {
		RespondBadRequest(ctx, "page must be >= 0 and size between 1 and "+strconv.Itoa(page.MaxSize), gin.H{
			"page": number,
			"size": size,
		})
		return page.Pageable{}, false
	}

	return p, true
}
