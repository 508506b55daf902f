package order

import (
	"time"

	"techos-service/internal/model"
)

// Stats is the dashboard summary: a pure fold over the order collection by
// status and category equality.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	Waiting    int `json:"waiting"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Canceled   int `json:"canceled"`
	Quotes     int `json:"quotes"`
	Sales      int `json:"sales"`
	Warranties int `json:"warranties"`
	Visits     int `json:"visits"`
}

// ComputeStats counts orders per status and category.
func ComputeStats(orders []model.ServiceOrder) Stats {
	s := Stats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case StatusOpen:
			s.Open++
		case StatusWaiting:
			s.Waiting++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		case StatusCanceled:
			s.Canceled++
		}
		switch o.Category {
		case CategoryQuote:
			s.Quotes++
		case CategorySale:
			s.Sales++
		case CategoryWarranty:
			s.Warranties++
		case CategoryVisit:
			s.Visits++
		}
	}
	return s
}

// urgentAfterDays is the SLA threshold: open or in-progress orders older than
// this many whole days are flagged on the dashboard.
const urgentAfterDays = 7

// UrgentOrders filters orders still being worked (open or in progress) whose
// age in whole days exceeds the threshold. Completed and canceled orders are
// never urgent regardless of age. Input order is preserved.
func UrgentOrders(orders []model.ServiceOrder, now time.Time) []model.ServiceOrder {
	urgent := []model.ServiceOrder{}
	for _, o := range orders {
		if o.Status != StatusOpen && o.Status != StatusInProgress {
			continue
		}
		days := int(now.Sub(o.OpenedAt).Hours() / 24)
		if days > urgentAfterDays {
			urgent = append(urgent, o)
		}
	}
	return urgent
}

// GroupByDate buckets orders by the local calendar day they were opened,
// keyed "2006-01-02". Orders sharing a day keep their incoming order.
func GroupByDate(orders []model.ServiceOrder) map[string][]model.ServiceOrder {
	grouped := map[string][]model.ServiceOrder{}
	for _, o := range orders {
		key := o.OpenedAt.Local().Format("2006-01-02")
		grouped[key] = append(grouped[key], o)
	}
	return grouped
}
