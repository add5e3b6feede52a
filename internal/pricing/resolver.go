package pricing

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
)

// ErrNoQuote means the selected page cannot be priced (out of the design's
// valid page range). Callers must not allow add-to-cart without a quote.
var ErrNoQuote = errors.New("no price for the selected page")

type Quote struct {
	UnitPrice int64  `json:"unit_price"` // paise
	Label     string `json:"label"`
}

// Resolve derives the unit price and display label for one page of a design.
// The result is deterministic for a given (design, page) pair: the price shown
// before add-to-cart is exactly the price frozen into the cart line. Prices are
// never re-resolved at cart-read or checkout time.
func Resolve(design *catalog.Design, page int) (*Quote, error) {
	if page < 1 || page > design.PageCount {
		return nil, ErrNoQuote
	}

	minRupees, maxRupees, err := parsePriceRange(design.PriceRange)
	if err != nil {
		return nil, fmt.Errorf("design %s: %w", design.ID, err)
	}

	// Stable pseudo-price spread over the design's range, whole rupees.
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d", design.ID, page)
	span := maxRupees - minRupees + 1
	rupees := minRupees + int64(h.Sum32())%span

	return &Quote{
		UnitPrice: rupees * 100,
		Label:     fmt.Sprintf("%s (Page %d)", design.Name, page),
	}, nil
}

// parsePriceRange parses a "500-2000" bounds string into whole rupees.
func parsePriceRange(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed price range %q", s)
	}

	min, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed price range %q: %w", s, err)
	}
	max, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed price range %q: %w", s, err)
	}
	if min < 0 || max < min {
		return 0, 0, fmt.Errorf("malformed price range %q", s)
	}

	return min, max, nil
}
