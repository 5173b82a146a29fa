package usecase

const (
	// DefaultListLimit is the page size used when a caller does not ask
	// for one.
	DefaultListLimit = 20

	// MaxListLimit caps the page size of transaction listings.
	MaxListLimit = 100
)

// normalizeLimit clamps pagination parameters to sane values.
func normalizeLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
