package memory

import (
	"context"
	"sort"
	"strconv"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
)

type violationRecordRepository struct {
	store *Store
}

func NewViolationRecordRepository(store *Store) violation.RecordRepository {
	return &violationRecordRepository{store: store}
}

func (r *violationRecordRepository) Append(ctx context.Context, rec violation.Record) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key3(rec.EmployeeID, rec.DateKey, string(rec.Type))
	if _, exists := r.store.records[k]; exists {
		return false, nil
	}
	r.store.records[k] = rec
	return true, nil
}

func (r *violationRecordRepository) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]violation.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []violation.Record
	for _, rec := range r.store.records {
		if rec.EmployeeID == employeeID && rec.MonthKey == monthKey {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].DateKey < records[j].DateKey })
	return records, nil
}

type violationCountRepository struct {
	store *Store
}

func NewViolationCountRepository(store *Store) violation.CountRepository {
	return &violationCountRepository{store: store}
}

func (r *violationCountRepository) Increment(ctx context.Context, employeeID, companyID string, t violation.Type, monthKey string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key3(employeeID, string(t), monthKey)
	c, ok := r.store.counts[k]
	if !ok {
		c = violation.MonthlyCount{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Type:       t,
			MonthKey:   monthKey,
		}
	}
	c.Count++
	r.store.counts[k] = c
	return c.Count, nil
}

func (r *violationCountRepository) Get(ctx context.Context, employeeID string, t violation.Type, monthKey string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.counts[key3(employeeID, string(t), monthKey)].Count, nil
}

func (r *violationCountRepository) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]violation.MonthlyCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var counts []violation.MonthlyCount
	for _, c := range r.store.counts {
		if c.EmployeeID == employeeID && c.MonthKey == monthKey {
			counts = append(counts, c)
		}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Type < counts[j].Type })
	return counts, nil
}

type penaltyRepository struct {
	store *Store
}

func NewPenaltyRepository(store *Store) violation.PenaltyRepository {
	return &penaltyRepository{store: store}
}

func (r *penaltyRepository) CreateIfAbsent(ctx context.Context, p violation.PenaltyRecord) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	k := key3(p.EmployeeID, string(p.Type), p.MonthKey) + "|" + strconv.Itoa(p.TriggerCount)
	if _, exists := r.store.triggers[k]; exists {
		return false, nil
	}
	r.store.triggers[k] = p.ID
	r.store.penalties[p.ID] = p
	return true, nil
}

func (r *penaltyRepository) GetByID(ctx context.Context, id string) (violation.PenaltyRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.penalties[id]
	if !ok {
		return violation.PenaltyRecord{}, violation.ErrPenaltyNotFound
	}
	return p, nil
}

func (r *penaltyRepository) ListByEmployee(ctx context.Context, employeeID string) ([]violation.PenaltyRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var penalties []violation.PenaltyRecord
	for _, p := range r.store.penalties {
		if p.EmployeeID == employeeID {
			penalties = append(penalties, p)
		}
	}
	sort.Slice(penalties, func(i, j int) bool { return penalties[i].DateIncurred.After(penalties[j].DateIncurred) })
	return penalties, nil
}

func (r *penaltyRepository) UpdateStatus(ctx context.Context, id string, from, to violation.PenaltyStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.penalties[id]
	if !ok {
		return violation.ErrPenaltyNotFound
	}
	if p.Status != from {
		return violation.ErrPenaltyAlreadyDecided
	}
	p.Status = to
	r.store.penalties[id] = p
	return nil
}
