package checkout

import (
	"time"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
)

type SnapshotItem struct {
	DesignID  string `json:"design_id"`
	Page      int    `json:"page"`
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// Snapshot is the full cart state frozen at submission time. Later cart
// mutations cannot affect an in-flight order; the charged amount, the header
// total and the persisted lines all come from the same snapshot.
type Snapshot struct {
	Items       []SnapshotItem `json:"items"`
	TotalAmount int64          `json:"total_amount"`
	Currency    string         `json:"currency"`
	CapturedAt  time.Time      `json:"captured_at"`
}

func TakeSnapshot(c *cart.Store, currency string) *Snapshot {
	lines := c.Lines()

	snapshot := &Snapshot{
		Items:      make([]SnapshotItem, 0, len(lines)),
		Currency:   currency,
		CapturedAt: time.Now(),
	}

	var total int64
	for _, line := range lines {
		subtotal := line.Subtotal()
		snapshot.Items = append(snapshot.Items, SnapshotItem{
			DesignID:  line.DesignID,
			Page:      line.Page,
			Label:     line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	snapshot.TotalAmount = total
	return snapshot
}
