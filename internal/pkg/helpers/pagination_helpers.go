package helpers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Page is a zero-based window over an ordered listing.
type Page struct {
	Number int
	Size   int
}

// Offset returns how many records precede the page, capped so the store
// still accepts it as a signed 64-bit value.
func (p Page) Offset() uint64 {
	if p.Number <= 0 {
		return 0
	}
	limit := p.Limit()
	last := uint64(math.MaxInt64) / limit
	if uint64(p.Number) > last {
		return last * limit
	}
	return uint64(p.Number) * limit
}

// Limit returns the page size, falling back to DefaultPageSize.
func (p Page) Limit() uint64 {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return uint64(p.Size)
}

// ParsePage reads the zero-based "page" query parameter. Missing, malformed
// or negative values select the first page; numbers too large for an int
// select a page past any listing.
func ParsePage(c *gin.Context, size int) Page {
	n, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		n = math.MaxInt
	case err != nil || n < 0:
		n = 0
	}
	return Page{Number: n, Size: size}
}
