package memory

import (
	"context"
	"sort"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
)

type leaveBalanceRepository struct {
	store *Store
}

func NewLeaveBalanceRepository(store *Store) leave.BalanceRepository {
	return &leaveBalanceRepository{store: store}
}

func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string, t leave.Type) (leave.Balance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.balances[key2(employeeID, string(t))]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r *leaveBalanceRepository) Put(ctx context.Context, b leave.Balance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.balances[key2(b.EmployeeID, string(b.Type))] = b
	return nil
}

func (r *leaveBalanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var balances []leave.Balance
	for _, b := range r.store.balances {
		if b.EmployeeID == employeeID {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Type < balances[j].Type })
	return balances, nil
}

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.RequestRepository {
	return &leaveRequestRepository{store: store}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.requests[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var requests []leave.Request
	for _, req := range r.store.requests {
		if req.EmployeeID == employeeID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].SubmittedAt.After(requests[j].SubmittedAt) })
	return requests, nil
}

func (r *leaveRequestRepository) ListBlockingInRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]leave.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var requests []leave.Request
	for _, req := range r.store.requests {
		if req.EmployeeID != employeeID || !req.Blocks() {
			continue
		}
		if leave.Overlaps(startDate, endDate, req.StartDate, req.EndDate) {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].StartDate.Before(requests[j].StartDate) })
	return requests, nil
}

func (r *leaveRequestRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, req := range r.store.requests {
		if req.EmployeeID == employeeID && req.Status == leave.RequestStatusApproved && req.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, actorID string, notes *string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if req.Status != from {
		return leave.ErrAlreadyProcessed
	}

	req.Status = to
	req.UpdatedAt = at
	if to == leave.RequestStatusCancelled {
		req.CancelledBy = &actorID
		req.CancelledAt = &at
	} else {
		req.DecidedBy = &actorID
		req.DecidedAt = &at
		req.ReviewerNotes = notes
	}
	r.store.requests[id] = req
	return nil
}
