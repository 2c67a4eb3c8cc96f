package domain

import "time"

// The Clone methods return deep copies so that stored records never share
// slices or pointers with values handed to callers.

func (c Customer) EntityID() string { return c.ID }

func (c Customer) Clone() Customer { return c }

func (t Technician) EntityID() string { return t.ID }

func (t Technician) Clone() Technician {
	t.Skills = cloneSlice(t.Skills)
	return t
}

func (q Quote) EntityID() string { return q.ID }

func (q Quote) Clone() Quote {
	q.Items = cloneSlice(q.Items)
	q.ApprovedAt = cloneTime(q.ApprovedAt)
	return q
}

func (j Job) EntityID() string { return j.ID }

func (j Job) Clone() Job {
	j.TechnicianID = cloneString(j.TechnicianID)
	j.QuoteID = cloneString(j.QuoteID)
	j.ScheduledStart = cloneString(j.ScheduledStart)
	j.CompletedAt = cloneTime(j.CompletedAt)
	j.Logs = cloneSlice(j.Logs)
	return j
}

func (i Invoice) EntityID() string { return i.ID }

func (i Invoice) Clone() Invoice {
	if i.Customer != nil {
		c := *i.Customer
		i.Customer = &c
	}
	if i.Technician != nil {
		t := i.Technician.Clone()
		i.Technician = &t
	}
	i.LineItems = cloneSlice(i.LineItems)
	return i
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
