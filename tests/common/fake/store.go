// Package fake provides an in-memory storage double for usecase tests. The
// whole transaction body runs under one mutex, which mirrors the serialization
// the per-facility-day advisory lock gives the real store.
package fake

import (
	"context"
	"sync"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/cobooking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/domain/ledger"
	"facility-booking/internal/domain/maintenance"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationJob struct {
	Kind    string
	Payload []byte
	RunAt   time.Time
}

type Store struct {
	mu sync.Mutex

	Facilities map[uuid.UUID]*facility.Facility
	Accounts   map[uuid.UUID]*shared.AccountSnapshot
	Bookings   map[uuid.UUID]*booking.Booking
	Invites    map[uuid.UUID]*cobooking.Invite
	Entries    []ledger.Entry
	Blocks     map[uuid.UUID]*maintenance.Block
	Jobs       []NotificationJob
}

func NewStore() *Store {
	return &Store{
		Facilities: make(map[uuid.UUID]*facility.Facility),
		Accounts:   make(map[uuid.UUID]*shared.AccountSnapshot),
		Bookings:   make(map[uuid.UUID]*booking.Booking),
		Invites:    make(map[uuid.UUID]*cobooking.Invite),
		Blocks:     make(map[uuid.UUID]*maintenance.Block),
	}
}

func (s *Store) AddFacility(f *facility.Facility) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Facilities[f.ID()] = f
}

func (s *Store) AddAccount(snap *shared.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Accounts[snap.ID] = snap
}

// Grant seeds an account with credits outside any command flow.
func (s *Store) Grant(accountID uuid.UUID, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := ledger.NewCredit(accountID, amount, ledger.ReasonAdminAdjustment, nil, nil, time.Now().UTC())
	if err != nil {
		panic(err)
	}
	s.Entries = append(s.Entries, entry)
}

func (s *Store) BalanceOf(accountID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(accountID)
}

func (s *Store) balanceLocked(accountID uuid.UUID) int {
	sum := 0
	for _, e := range s.Entries {
		if e.AccountID == accountID {
			sum += e.Amount
		}
	}
	return sum
}

func (s *Store) EntriesFor(accountID uuid.UUID) []ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Entry
	for _, e := range s.Entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

type snapshot struct {
	bookings map[uuid.UUID]*booking.Booking
	invites  map[uuid.UUID]*cobooking.Invite
	entries  []ledger.Entry
	blocks   map[uuid.UUID]*maintenance.Block
	jobs     []NotificationJob
}

// snapshotLocked copies the mutable state shallowly. Repositories replace
// map values instead of mutating them, so a shallow copy is a real savepoint.
func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		bookings: make(map[uuid.UUID]*booking.Booking, len(s.Bookings)),
		invites:  make(map[uuid.UUID]*cobooking.Invite, len(s.Invites)),
		blocks:   make(map[uuid.UUID]*maintenance.Block, len(s.Blocks)),
		entries:  append([]ledger.Entry(nil), s.Entries...),
		jobs:     append([]NotificationJob(nil), s.Jobs...),
	}
	for id, b := range s.Bookings {
		snap.bookings[id] = b
	}
	for id, inv := range s.Invites {
		snap.invites[id] = inv
	}
	for id, blk := range s.Blocks {
		snap.blocks[id] = blk
	}
	return snap
}

func (s *Store) restoreLocked(snap snapshot) {
	s.Bookings = snap.bookings
	s.Invites = snap.invites
	s.Blocks = snap.blocks
	s.Entries = snap.entries
	s.Jobs = snap.jobs
}

// UoW adapts the store to the unit-of-work port. Within snapshots before the
// transaction body and restores on error, matching rollback semantics.
type UoW struct {
	store *Store
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

var _ shared.UnitOfWork = (*UoW)(nil)

func (u *UoW) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.snapshotLocked()
	if err := fn(context.Background(), &fakeTx{store: u.store}); err != nil {
		u.store.restoreLocked(snap)
		return err
	}
	return nil
}

func (u *UoW) Reads() shared.StoreReads {
	return &lockedReads{store: u.store}
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Bookings() shared.BookingRepository         { return &bookingRepo{store: t.store} }
func (t *fakeTx) Invites() shared.InviteRepository           { return &inviteRepo{store: t.store} }
func (t *fakeTx) Ledger() shared.LedgerRepository            { return &ledgerRepo{store: t.store} }
func (t *fakeTx) Maintenance() shared.MaintenanceRepository  { return &maintenanceRepo{store: t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &notificationRepo{store: t.store}
}
func (t *fakeTx) Reads() shared.StoreReads { return &unlockedReads{store: t.store} }

func (t *fakeTx) LockFacilityDay(context.Context, uuid.UUID, time.Time) error {
	// The store mutex already serializes whole transactions.
	return nil
}

// lockedReads serves out-of-transaction reads and takes the mutex itself.
type lockedReads struct {
	store *Store
}

func (r *lockedReads) FacilityByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&unlockedReads{store: r.store}).FacilityByID(ctx, id)
}

func (r *lockedReads) AccountByID(ctx context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&unlockedReads{store: r.store}).AccountByID(ctx, id)
}

func (r *lockedReads) AccountByEmail(ctx context.Context, email string) (*shared.AccountSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&unlockedReads{store: r.store}).AccountByEmail(ctx, email)
}

// unlockedReads serves reads inside a transaction, where the mutex is held.
type unlockedReads struct {
	store *Store
}

func (r *unlockedReads) FacilityByID(_ context.Context, id uuid.UUID) (*facility.Facility, error) {
	fac, ok := r.store.Facilities[id]
	if !ok {
		return nil, errs.ErrUnknownFacility
	}
	return fac, nil
}

func (r *unlockedReads) AccountByID(_ context.Context, id uuid.UUID) (*shared.AccountSnapshot, error) {
	snap, ok := r.store.Accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return snap, nil
}

func (r *unlockedReads) AccountByEmail(_ context.Context, email string) (*shared.AccountSnapshot, error) {
	for _, snap := range r.store.Accounts {
		if snap.Email == email {
			return snap, nil
		}
	}
	return nil, errs.ErrAccountNotFound
}
