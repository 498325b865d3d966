package repository

import "time"

// StageUpdate is the status/date change applied to an SR or PO during a
// cascade. An empty Status leaves the stored status alone; nil dates clear
// the stored dates.
type StageUpdate struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (u StageUpdate) fields() map[string]interface{} {
	f := map[string]interface{}{
		"start_date": u.StartDate,
		"end_date":   u.EndDate,
	}
	if u.Status != "" {
		f["status"] = u.Status
	}
	return f
}
