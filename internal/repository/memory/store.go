// Package memory provides in-memory repository implementations backed by
// mutex-guarded maps. Used by the test suites and by the memory database
// driver for local development; semantics mirror the PostgreSQL layer,
// including idempotent appends and compare-and-set status updates.
package memory

import (
	"context"
	"sync"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
)

type Store struct {
	mu sync.RWMutex

	settings  map[string]settings.CompanySettings // company_id
	days      map[string]attendance.AttendanceDay // employee_id|date_key
	balances  map[string]leave.Balance            // employee_id|leave_type
	requests  map[string]leave.Request            // request id
	records   map[string]violation.Record         // employee_id|date_key|type
	counts    map[string]violation.MonthlyCount   // employee_id|type|month_key
	penalties map[string]violation.PenaltyRecord  // penalty id
	triggers  map[string]string                   // employee_id|type|month_key|trigger_count -> penalty id
	employees map[string]employee.Employee        // employee id

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		settings:  make(map[string]settings.CompanySettings),
		days:      make(map[string]attendance.AttendanceDay),
		balances:  make(map[string]leave.Balance),
		requests:  make(map[string]leave.Request),
		records:   make(map[string]violation.Record),
		counts:    make(map[string]violation.MonthlyCount),
		penalties: make(map[string]violation.PenaltyRecord),
		triggers:  make(map[string]string),
		employees: make(map[string]employee.Employee),
	}
}

type txKeyType struct{}

var txKey txKeyType

// WithinTx implements database.TxRunner. Multi-step mutations are serialized
// behind one store-wide lock; there is no rollback, matching the needs of
// tests and local development only. Nested calls join the outer section.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey, struct{}{}))
}

var _ database.TxRunner = (*Store)(nil)

func key2(a, b string) string { return a + "|" + b }

func key3(a, b, c string) string { return a + "|" + b + "|" + c }
