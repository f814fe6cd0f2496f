package service

// Pagination defaults shared by all list operations. User listing pages are
// smaller than the rest of the API.
const (
	DefaultPageSize     = 20
	DefaultUserPageSize = 10
)

// normalizePage clamps page/limit to sane values and derives the row offset.
// Pages are 1-based: offset = (page-1) * limit.
func normalizePage(page, limit, defaultLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}
