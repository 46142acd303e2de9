package report

import (
	"sort"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// Statistics summarises a collection. Counts use the effective status.
type Statistics struct {
	Total          int
	ByStatus       map[domain.Status]int
	TotalAmount    money.Money
	ApprovedAmount money.Money
}

// Count returns the number of quotations in status s.
func (s Statistics) Count(st domain.Status) int {
	return s.ByStatus[st]
}

// Summarize computes statistics in a single pass over qs.
func Summarize(qs []domain.Quotation, now time.Time) Statistics {
	st := Statistics{
		ByStatus:       make(map[domain.Status]int, len(domain.AllStatuses)),
		TotalAmount:    money.Zero,
		ApprovedAmount: money.Zero,
	}
	for _, s := range domain.AllStatuses {
		st.ByStatus[s] = 0
	}
	for i := range qs {
		q := &qs[i]
		status := q.EffectiveStatus(now)
		st.Total++
		st.ByStatus[status]++
		st.TotalAmount = st.TotalAmount.Add(q.Totals.Total)
		if status == domain.StatusApproved {
			st.ApprovedAmount = st.ApprovedAmount.Add(q.Totals.Total)
		}
	}
	return st
}

// MonthTotals aggregates the quotations issued in one calendar month.
type MonthTotals struct {
	Month    string // YYYY-MM
	Count    int
	Total    money.Money
	Approved money.Money
}

// Group buckets qs by issue month, oldest month first.
func Group(qs []domain.Quotation, now time.Time) []MonthTotals {
	byMonth := map[string]*MonthTotals{}
	for i := range qs {
		q := &qs[i]
		key := q.IssueDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthTotals{Month: key, Total: money.Zero, Approved: money.Zero}
			byMonth[key] = m
		}
		m.Count++
		m.Total = m.Total.Add(q.Totals.Total)
		if q.EffectiveStatus(now) == domain.StatusApproved {
			m.Approved = m.Approved.Add(q.Totals.Total)
		}
	}

	out := make([]MonthTotals, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
