package cached

import (
	"strconv"

	"github.com/geocoder89/meetuphub/internal/domain/page"
)

// every write bumps the generation, so entries filled by a read that raced
// the write land under a key nobody reads again
func meetupKey(gen int64, id int) string {
	return "meetups:v1:gen=" + strconv.FormatInt(gen, 10) + ":id=" + strconv.Itoa(id)
}

func meetupsPageKey(gen int64, p page.Pageable) string {
	return "meetups:list:v1:gen=" + strconv.FormatInt(gen, 10) +
		":page=" + strconv.Itoa(p.Page) +
		":size=" + strconv.Itoa(p.Size)
}
