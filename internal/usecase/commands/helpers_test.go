//go:build unit

package commands_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/account"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/shared"
	"facility-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// baseTime is a Tuesday morning well inside the default operating hours.
var baseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

var testPolicy = config.BookingConfig{
	CheckInGrace:      15 * time.Minute,
	RefundPercent:     80,
	MonitorInterval:   30 * time.Second,
	MonitorBatchLimit: 100,
}

type env struct {
	store *fake.Store
	clk   *clock.FakeClock
	uow   *fake.UoW
}

func newEnv() *env {
	store := fake.NewStore()
	return &env{
		store: store,
		clk:   clock.NewFakeClock(baseTime),
		uow:   fake.NewUoW(store),
	}
}

func (e *env) bookingCommands() commands.BookingCommands {
	return commands.NewBookingCommands(e.uow, e.clk, testPolicy)
}

func (e *env) inviteCommands() commands.InviteCommands {
	return commands.NewInviteCommands(e.uow, e.clk)
}

func (e *env) ledgerCommands() commands.LedgerCommands {
	return commands.NewLedgerCommands(e.uow, e.clk)
}

func (e *env) maintenanceCommands() commands.MaintenanceCommands {
	return commands.NewMaintenanceCommands(e.uow, e.clk)
}

// addFacility seeds a court open 08:00-22:00.
func (e *env) addFacility(t *testing.T, capacity, creditPerHour int) *facility.Facility {
	t.Helper()
	hours, err := facility.NewOperatingHours(8*60, 22*60)
	require.NoError(t, err)
	fac, err := facility.NewFacility(uuid.New(), "Court A", facility.KindCourt, capacity, creditPerHour, hours)
	require.NoError(t, err)
	e.store.AddFacility(fac)
	return fac
}

func (e *env) addMember(t *testing.T, credits int) commands.Actor {
	t.Helper()
	return e.addAccount(t, account.RoleMember, credits)
}

func (e *env) addAdmin(t *testing.T) commands.Actor {
	t.Helper()
	return e.addAccount(t, account.RoleAdmin, 0)
}

func (e *env) addAccount(t *testing.T, role account.Role, credits int) commands.Actor {
	t.Helper()
	id := uuid.New()
	e.store.AddAccount(&shared.AccountSnapshot{
		ID:       id,
		Email:    id.String() + "@example.com",
		Role:     role,
		IsActive: true,
	})
	if credits > 0 {
		e.store.Grant(id, credits)
	}
	return commands.Actor{ID: id, Role: role}
}
