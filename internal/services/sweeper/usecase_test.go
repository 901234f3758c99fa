package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/directory"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/event"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/policy"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
	"github.com/AdrianMoldovan/Mentenix/internal/services/sweeper/repo"
)

type fakePolicies struct {
	set policy.Set
	err error
}

func (f *fakePolicies) Load(context.Context) (policy.Set, error) { return f.set, f.err }

type fakeOrders struct {
	orders []*workorder.WorkOrder
	err    error
}

func (f *fakeOrders) ListUnresolved(context.Context) ([]*workorder.WorkOrder, error) {
	return f.orders, f.err
}

type fakeDirectory struct {
	recipients []directory.Recipient
	err        error
}

func (f *fakeDirectory) ListActive(context.Context) ([]directory.Recipient, error) {
	return f.recipients, f.err
}

// fakeLedger derives SentLevels from recorded entries, so consecutive
// sweeps against the same instance observe each other's writes.
type fakeLedger struct {
	mu        sync.Mutex
	entries   []*ledger.Entry
	readErr   error
	recordErr error
}

func (f *fakeLedger) SentLevels(_ context.Context, ids []uuid.UUID) (ledger.SentSet, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	set := make(ledger.SentSet)
	for _, e := range f.entries {
		set.Add(e.WorkOrderID, e.Level)
	}
	return set, nil
}

func (f *fakeLedger) Record(_ context.Context, e *ledger.Entry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	fail map[uuid.UUID]error
	sent []uuid.UUID
}

func (f *fakeSender) Send(_ context.Context, to uuid.UUID, _ push.Message) error {
	if err := f.fail[to]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type fakeEvents struct {
	mu  sync.Mutex
	evs []event.ReminderSent
}

func (f *fakeEvents) PublishReminderSent(_ context.Context, ev event.ReminderSent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evs = append(f.evs, ev)
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixture struct {
	policies *fakePolicies
	orders   *fakeOrders
	people   *fakeDirectory
	ledger   *fakeLedger
	sender   *fakeSender
	events   *fakeEvents
	now      time.Time
}

func newFixture() *fixture {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &fixture{
		policies: &fakePolicies{set: criticalPolicies()},
		orders:   &fakeOrders{},
		people: &fakeDirectory{recipients: []directory.Recipient{
			{ID: admin1, Role: directory.RoleAdmin, Active: true},
			{ID: admin2, Role: directory.RoleAdmin, Active: true},
			{ID: mgr1, Role: directory.RoleManager, Active: true},
			{ID: tech1, Role: directory.RoleTechnician, Active: true},
		}},
		ledger: &fakeLedger{},
		sender: &fakeSender{},
		events: &fakeEvents{},
		now:    now,
	}
}

func (f *fixture) usecase() *Usecase {
	log := zap.NewNop()
	return NewUC(
		repo.PolicySource{R: f.policies},
		repo.OrderSource{R: f.orders},
		repo.RecipientDirectory{R: f.people},
		repo.ReminderLedger{R: f.ledger},
		repo.Events{P: f.events},
		NewEvaluator(log),
		NewDispatcher(f.sender, time.Second, log),
		fixedClock{t: f.now},
		log,
		2,
	)
}

func TestSweep_AdminEscalation_FansOutToAllAdmins(t *testing.T) {
	f := newFixture()
	f.orders.orders = []*workorder.WorkOrder{order(9*time.Hour, f.now, nil)}

	sum, err := f.usecase().Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Summary{WorkOrdersChecked: 1, RemindersSent: 2, RemindersFailed: 0}, sum)
	assert.ElementsMatch(t, []uuid.UUID{admin1, admin2}, f.sender.sent)
	require.Len(t, f.ledger.entries, 2)
	for _, e := range f.ledger.entries {
		assert.Equal(t, ledger.LevelEscalationAdmin, e.Level)
		assert.Equal(t, f.now, e.SentAt)
	}
	assert.Len(t, f.events.evs, 2)
}

func TestSweep_PerRecipientIndependence(t *testing.T) {
	f := newFixture()
	f.orders.orders = []*workorder.WorkOrder{order(9*time.Hour, f.now, nil)}
	f.sender.fail = map[uuid.UUID]error{admin2: errors.New("transport down")}

	sum, err := f.usecase().Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.RemindersSent)
	assert.Equal(t, 1, sum.RemindersFailed)
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, admin1, f.ledger.entries[0].SentTo)
}

func TestSweep_Rerun_IsIdempotent(t *testing.T) {
	f := newFixture()
	assignee := tech1
	f.orders.orders = []*workorder.WorkOrder{order(2*time.Hour, f.now, &assignee)}
	uc := f.usecase()

	sum, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RemindersSent)

	sum, err = uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{WorkOrdersChecked: 1}, sum)
	assert.Len(t, f.sender.sent, 1, "no second send")
}

func TestSweep_FailedSend_RetriedNextSweep(t *testing.T) {
	f := newFixture()
	assignee := tech1
	f.orders.orders = []*workorder.WorkOrder{order(2*time.Hour, f.now, &assignee)}
	f.sender.fail = map[uuid.UUID]error{tech1: errors.New("timeout")}
	uc := f.usecase()

	sum, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RemindersFailed)
	assert.Empty(t, f.ledger.entries)

	f.sender.fail = nil
	sum, err = uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RemindersSent)
	require.Len(t, f.ledger.entries, 1)
}

func TestSweep_PolicyLoadFailure_Fatal(t *testing.T) {
	f := newFixture()
	f.policies.err = errors.New("settings table unreachable")
	f.orders.orders = []*workorder.WorkOrder{order(9*time.Hour, f.now, nil)}

	_, err := f.usecase().Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load reminder policies")
	assert.Empty(t, f.sender.sent, "nothing sent on fatal error")
}

func TestSweep_SourceFailure_Fatal(t *testing.T) {
	f := newFixture()
	f.orders.err = errors.New("db gone")

	_, err := f.usecase().Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list unresolved work orders")
}

func TestSweep_LedgerReadFailure_Fatal(t *testing.T) {
	f := newFixture()
	f.orders.orders = []*workorder.WorkOrder{order(9*time.Hour, f.now, nil)}
	f.ledger.readErr = errors.New("db gone")

	_, err := f.usecase().Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load reminder log")
	assert.Empty(t, f.sender.sent)
}

func TestSweep_DirectoryFailure_Fatal(t *testing.T) {
	f := newFixture()
	f.orders.orders = []*workorder.WorkOrder{order(9*time.Hour, f.now, nil)}
	f.people.err = errors.New("db gone")

	_, err := f.usecase().Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load recipients")
}

func TestSweep_LedgerWriteFailure_SendStillCounts(t *testing.T) {
	f := newFixture()
	assignee := tech1
	f.orders.orders = []*workorder.WorkOrder{order(2*time.Hour, f.now, &assignee)}
	f.ledger.recordErr = errors.New("insert failed")

	sum, err := f.usecase().Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.RemindersSent)
	assert.Len(t, f.sender.sent, 1)
}

func TestSweep_NoPolicyForPriority_SweepContinues(t *testing.T) {
	f := newFixture()
	noPolicy := order(9*time.Hour, f.now, nil)
	noPolicy.Priority = workorder.PriorityLow
	f.orders.orders = []*workorder.WorkOrder{
		noPolicy,
		order(9*time.Hour, f.now, nil),
	}

	sum, err := f.usecase().Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.WorkOrdersChecked)
	assert.Equal(t, 2, sum.RemindersSent, "the critical order still escalates to both admins")
}

func TestSweep_NoOrders(t *testing.T) {
	f := newFixture()

	sum, err := f.usecase().Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}
