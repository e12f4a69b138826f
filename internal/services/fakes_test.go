package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cedarkey/leasing-service/models"
)

// memStore backs the in-memory repository fakes used by the service tests.
type memStore struct {
	mu           sync.Mutex
	buildings    map[uuid.UUID]*models.Building
	units        map[uuid.UUID]*models.Unit
	reservations map[uuid.UUID]*models.Reservation
	installments []*models.Installment
	tickets      map[uuid.UUID]*models.ServiceTicket
	expenses     []*models.Expense
}

func newMemStore() *memStore {
	return &memStore{
		buildings:    make(map[uuid.UUID]*models.Building),
		units:        make(map[uuid.UUID]*models.Unit),
		reservations: make(map[uuid.UUID]*models.Reservation),
		tickets:      make(map[uuid.UUID]*models.ServiceTicket),
	}
}

// passTx runs the closure directly; the fakes have no real transactions.
type passTx struct{}

func (passTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func updateTag() pgconn.CommandTag {
	return pgconn.CommandTag("UPDATE 1")
}

/* ---------- buildings ---------- */

type fakeBuildingRepo struct{ s *memStore }

func (r *fakeBuildingRepo) Create(ctx context.Context, b *models.Building) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *b
	r.s.buildings[b.ID] = &cp
	return nil
}

func (r *fakeBuildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.buildings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBuildingRepo) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Building, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Building
	for _, b := range r.s.buildings {
		if b.CompanyID == companyID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

/* ---------- units ---------- */

type fakeUnitRepo struct{ s *memStore }

func (r *fakeUnitRepo) Create(ctx context.Context, u *models.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	cp.RowVersion = 1
	r.s.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUnitRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Unit
	for _, u := range r.s.units {
		if u.BuildingID == bldgID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) ListInMaintenance(ctx context.Context) ([]*models.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Unit
	for _, u := range r.s.units {
		if u.OccupancyStatus == models.OccupancyMaintenance {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) UpdateOccupancyStatus(ctx context.Context, id uuid.UUID, status models.OccupancyStatusType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.OccupancyStatus = status
	u.RowVersion++
	return nil
}

func (r *fakeUnitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.units[u.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *u
	cp.RowVersion = expected + 1
	r.s.units[u.ID] = &cp
	return updateTag(), nil
}

func (r *fakeUnitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *u
	if err := mutate(&cp); err != nil {
		return err
	}
	cp.RowVersion = u.RowVersion + 1
	r.s.units[id] = &cp
	return nil
}

/* ---------- reservations ---------- */

type fakeReservationRepo struct{ s *memStore }

func (r *fakeReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *res
	cp.RowVersion = 1
	r.s.reservations[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Reservation
	for _, res := range r.s.reservations {
		if res.UnitID == unitID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) ListActiveOverlapping(ctx context.Context, unitID uuid.UUID, start, end time.Time) ([]*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Reservation
	for _, res := range r.s.reservations {
		if res.UnitID == unitID && res.Status == models.ReservationStatusActive && res.Overlaps(start, end) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) HasActiveEndingOnOrAfter(ctx context.Context, unitID uuid.UUID, day time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.reservations {
		if res.UnitID == unitID && res.Status == models.ReservationStatusActive && !res.EndDate.Before(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) FindActiveByUnitID(ctx context.Context, unitID uuid.UUID) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.reservations {
		if res.UnitID == unitID && res.Status == models.ReservationStatusActive {
			cp := *res
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReservationRepo) ListExpired(ctx context.Context, day time.Time) ([]*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Reservation
	for _, res := range r.s.reservations {
		if res.Status == models.ReservationStatusActive && res.EndDate.Before(day) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) ListMaintenanceWithoutOpenTicket(ctx context.Context) ([]*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Reservation
	for _, res := range r.s.reservations {
		if res.Status != models.ReservationStatusActive {
			continue
		}
		unit, ok := r.s.units[res.UnitID]
		if !ok || unit.OccupancyStatus != models.OccupancyMaintenance {
			continue
		}
		hasOpen := false
		for _, t := range r.s.tickets {
			if t.ReservationID == res.ID && t.Type == models.TicketTypeMaintenance && t.Open() {
				hasOpen = true
				break
			}
		}
		if !hasOpen {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatusType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	res.Status = status
	res.RowVersion++
	return nil
}

func (r *fakeReservationRepo) UpdateIfVersion(ctx context.Context, res *models.Reservation, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.reservations[res.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *res
	cp.RowVersion = expected + 1
	r.s.reservations[res.ID] = &cp
	return updateTag(), nil
}

func (r *fakeReservationRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Reservation) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *res
	if err := mutate(&cp); err != nil {
		return err
	}
	cp.RowVersion = res.RowVersion + 1
	r.s.reservations[id] = &cp
	return nil
}

/* ---------- installments ---------- */

type fakeInstallmentRepo struct{ s *memStore }

func (r *fakeInstallmentRepo) CreateMany(ctx context.Context, list []models.Installment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range list {
		cp := list[i]
		r.s.installments = append(r.s.installments, &cp)
	}
	return nil
}

func (r *fakeInstallmentRepo) ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.Installment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Installment
	for _, in := range r.s.installments {
		if in.ReservationID == resID {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInstallmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InstallmentStatusType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range r.s.installments {
		if in.ID == id {
			in.Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeInstallmentRepo) CancelOpenByReservationID(ctx context.Context, resID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range r.s.installments {
		if in.ReservationID == resID &&
			(in.Status == models.InstallmentStatusPending || in.Status == models.InstallmentStatusDelayed) {
			in.Status = models.InstallmentStatusCancelled
		}
	}
	return nil
}

/* ---------- service tickets ---------- */

type fakeTicketRepo struct{ s *memStore }

func (r *fakeTicketRepo) Create(ctx context.Context, t *models.ServiceTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
	cp.RowVersion = 1
	r.s.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
	return &cp, nil
}

func (r *fakeTicketRepo) ListByReservationID(ctx context.Context, resID uuid.UUID) ([]*models.ServiceTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.ServiceTicket
	for _, t := range r.s.tickets {
		if t.ReservationID == resID {
			cp := *t
			cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindOpenMaintenance(ctx context.Context, resID uuid.UUID) (*models.ServiceTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.ReservationID == resID && t.Type == models.TicketTypeMaintenance && t.Open() {
			cp := *t
			cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTicketRepo) UpdateIfVersion(ctx context.Context, t *models.ServiceTicket, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tickets[t.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *t
	cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
	cp.RowVersion = expected + 1
	r.s.tickets[t.ID] = &cp
	return updateTag(), nil
}

func (r *fakeTicketRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ServiceTicket) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *t
	cp.History = append([]models.TicketHistoryEntry(nil), t.History...)
	if err := mutate(&cp); err != nil {
		return err
	}
	cp.RowVersion = t.RowVersion + 1
	r.s.tickets[id] = &cp
	return nil
}

/* ---------- expenses ---------- */

type fakeExpenseRepo struct{ s *memStore }

func (r *fakeExpenseRepo) Create(ctx context.Context, e *models.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.expenses = append(r.s.expenses, &cp)
	return nil
}

func (r *fakeExpenseRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Expense
	for _, e := range r.s.expenses {
		if e.BuildingID == bldgID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}
