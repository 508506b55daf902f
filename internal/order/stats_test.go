package order

import (
	"testing"
	"time"

	"techos-service/internal/model"
)

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	if s != (Stats{}) {
		t.Errorf("empty input should yield zero stats, got %+v", s)
	}
}

func TestComputeStats(t *testing.T) {
	orders := []model.ServiceOrder{
		{Status: StatusOpen, Category: CategoryQuote},
		{Status: StatusOpen, Category: CategorySale},
		{Status: StatusWaiting, Category: CategoryWarranty},
		{Status: StatusInProgress, Category: CategoryVisit},
		{Status: StatusDone, Category: CategoryQuote},
		{Status: StatusCanceled, Category: CategoryQuote},
	}

	s := ComputeStats(orders)
	want := Stats{
		Total: 6, Open: 2, Waiting: 1, InProgress: 1, Done: 1, Canceled: 1,
		Quotes: 3, Sales: 1, Warranties: 1, Visits: 1,
	}
	if s != want {
		t.Errorf("ComputeStats = %+v, want %+v", s, want)
	}
}

func TestUrgentOrders(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -10)
	recent := now.AddDate(0, 0, -3)
	boundary := now.AddDate(0, 0, -7) // exactly seven days is not urgent yet

	orders := []model.ServiceOrder{
		{ID: 1, Status: StatusOpen, OpenedAt: old},
		{ID: 2, Status: StatusInProgress, OpenedAt: old},
		{ID: 3, Status: StatusOpen, OpenedAt: recent},
		{ID: 4, Status: StatusOpen, OpenedAt: boundary},
		{ID: 5, Status: StatusDone, OpenedAt: old},
		{ID: 6, Status: StatusCanceled, OpenedAt: old},
		{ID: 7, Status: StatusWaiting, OpenedAt: old},
	}

	urgent := UrgentOrders(orders, now)
	if len(urgent) != 2 {
		t.Fatalf("got %d urgent orders, want 2: %+v", len(urgent), urgent)
	}
	if urgent[0].ID != 1 || urgent[1].ID != 2 {
		t.Errorf("urgent ids = %d, %d; want 1, 2", urgent[0].ID, urgent[1].ID)
	}
}

func TestUrgentOrdersEmptyNeverNil(t *testing.T) {
	urgent := UrgentOrders(nil, time.Now())
	if urgent == nil {
		t.Error("urgent list should never be nil")
	}
	if len(urgent) != 0 {
		t.Errorf("got %d, want 0", len(urgent))
	}
}

func TestGroupByDate(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	day1Later := time.Date(2026, 3, 10, 17, 30, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)

	orders := []model.ServiceOrder{
		{ID: 1, OpenedAt: day1},
		{ID: 2, OpenedAt: day2},
		{ID: 3, OpenedAt: day1Later},
	}

	grouped := GroupByDate(orders)
	if len(grouped) != 2 {
		t.Fatalf("got %d buckets, want 2", len(grouped))
	}
	bucket := grouped["2026-03-10"]
	if len(bucket) != 2 || bucket[0].ID != 1 || bucket[1].ID != 3 {
		t.Errorf("2026-03-10 bucket = %+v", bucket)
	}
	if len(grouped["2026-03-11"]) != 1 {
		t.Errorf("2026-03-11 bucket = %+v", grouped["2026-03-11"])
	}
}
