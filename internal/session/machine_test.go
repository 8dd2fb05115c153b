package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

var allStatuses = []model.UnitStatus{
	model.StatusAvailable,
	model.StatusPendingPayment,
	model.StatusPendingApproval,
	model.StatusInUse,
	model.StatusTimeUp,
	model.StatusMaintenance,
	model.StatusUnavailable,
}

func TestCanTransitionTable(t *testing.T) {
	allowed := map[model.UnitStatus]map[model.UnitStatus]bool{
		model.StatusAvailable: {
			model.StatusPendingPayment: true,
			model.StatusMaintenance:    true,
			model.StatusUnavailable:    true,
		},
		model.StatusPendingPayment: {
			model.StatusPendingApproval: true,
			model.StatusAvailable:       true,
			model.StatusMaintenance:     true,
			model.StatusUnavailable:     true,
		},
		model.StatusPendingApproval: {
			model.StatusInUse:     true,
			model.StatusAvailable: true,
		},
		model.StatusInUse: {
			model.StatusTimeUp: true,
		},
		model.StatusTimeUp: {
			model.StatusPendingPayment: true,
			model.StatusAvailable:      true,
			model.StatusMaintenance:    true,
			model.StatusUnavailable:    true,
		},
		model.StatusMaintenance: {
			model.StatusAvailable:   true,
			model.StatusUnavailable: true,
		},
		model.StatusUnavailable: {
			model.StatusAvailable:   true,
			model.StatusMaintenance: true,
		},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestApplyRejectsSameStatus(t *testing.T) {
	for _, s := range allStatuses {
		u := model.Unit{ID: "1", Name: "PC-01", Status: s}
		err := Apply(&u, Request{Status: s}, time.Now())
		assert.ErrorIs(t, err, ErrSameStatus, "status %s", s)
	}
}

func TestApplyRejectsUnknownStatus(t *testing.T) {
	u := model.Unit{ID: "1", Name: "PC-01", Status: model.StatusAvailable}
	err := Apply(&u, Request{Status: "broken"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplyPaymentSubmissionRequiresPayload(t *testing.T) {
	base := model.Unit{ID: "1", Name: "PC-01", Status: model.StatusPendingPayment}

	u := base
	err := Apply(&u, Request{Status: model.StatusPendingApproval, PaymentMethod: "gcash"}, time.Now())
	assert.ErrorIs(t, err, ErrMissingPayment, "missing duration")
	assert.Equal(t, model.StatusPendingPayment, u.Status, "rejected submit must not mutate the unit")

	u = base
	err = Apply(&u, Request{Status: model.StatusPendingApproval, Duration: 60}, time.Now())
	assert.ErrorIs(t, err, ErrMissingPayment, "missing payment method")
	assert.Equal(t, model.StatusPendingPayment, u.Status)
}

func TestApplyPaymentSubmissionSetsPayload(t *testing.T) {
	u := model.Unit{ID: "1", Name: "PC-01", Status: model.StatusPendingPayment}
	err := Apply(&u, Request{
		Status:        model.StatusPendingApproval,
		Duration:      60,
		User:          "alice",
		Email:         "alice@example.com",
		PaymentMethod: "gcash",
		PaymentProof:  "data:image/png;base64,abc",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.StatusPendingApproval, u.Status)
	assert.Equal(t, 60, u.SessionDuration)
	assert.Equal(t, "alice", u.User)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "gcash", u.PaymentMethod)
	assert.Equal(t, "data:image/png;base64,abc", u.PaymentProof)
}

func TestApplyApprovalKeepsSubmittedPayload(t *testing.T) {
	u := model.Unit{
		ID: "1", Name: "PC-01",
		Status:          model.StatusPendingApproval,
		User:            "alice",
		Email:           "alice@example.com",
		SessionDuration: 60,
		PaymentMethod:   "gcash",
	}
	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	err := Apply(&u, Request{Status: model.StatusInUse}, start)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInUse, u.Status)
	require.NotNil(t, u.SessionStart)
	assert.Equal(t, start, *u.SessionStart)
	assert.Equal(t, "alice", u.User)
	assert.Equal(t, 60, u.SessionDuration)
	assert.Equal(t, "gcash", u.PaymentMethod)
}

func TestApplyApprovalAdminOverrides(t *testing.T) {
	u := model.Unit{
		ID: "1", Name: "PC-01",
		Status:          model.StatusPendingApproval,
		User:            "alice",
		SessionDuration: 60,
		PaymentMethod:   "gcash",
	}
	err := Apply(&u, Request{Status: model.StatusInUse, Duration: 120, User: "bob"}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 120, u.SessionDuration)
	assert.Equal(t, "bob", u.User)
	assert.Equal(t, "gcash", u.PaymentMethod, "unset override fields keep the submitted values")
}

func TestApplyTimeUpKeepsPayloadDropsStart(t *testing.T) {
	start := time.Now()
	u := model.Unit{
		ID: "1", Name: "PC-01",
		Status:          model.StatusInUse,
		User:            "alice",
		Email:           "alice@example.com",
		SessionDuration: 60,
		PaymentMethod:   "gcash",
		SessionStart:    &start,
	}
	err := Apply(&u, Request{Status: model.StatusTimeUp}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.StatusTimeUp, u.Status)
	assert.Nil(t, u.SessionStart)
	assert.Equal(t, "alice", u.User, "the customer still owes; keep the payload for invoicing")
	assert.Equal(t, 60, u.SessionDuration)
}

func TestApplyGuardedPendingPaymentReset(t *testing.T) {
	// time_up with an active user: the reset keeps the payload.
	u := model.Unit{
		ID: "1", Name: "PC-01",
		Status:          model.StatusTimeUp,
		User:            "alice",
		SessionDuration: 60,
		PaymentMethod:   "gcash",
	}
	err := Apply(&u, Request{Status: model.StatusPendingPayment}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.User)
	assert.Equal(t, 60, u.SessionDuration)

	// time_up with nobody attached: the reset clears the leftovers.
	u = model.Unit{ID: "1", Name: "PC-01", Status: model.StatusTimeUp, SessionDuration: 60, PaymentMethod: "gcash"}
	err = Apply(&u, Request{Status: model.StatusPendingPayment}, time.Now())
	require.NoError(t, err)
	assert.Zero(t, u.SessionDuration)
	assert.Empty(t, u.PaymentMethod)

	// Reservation from available always starts clean.
	u = model.Unit{ID: "1", Name: "PC-01", Status: model.StatusAvailable, User: "stale"}
	err = Apply(&u, Request{Status: model.StatusPendingPayment}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, u.User)
}

func TestApplyIdleStatusesClearSession(t *testing.T) {
	for _, to := range []model.UnitStatus{model.StatusAvailable, model.StatusMaintenance, model.StatusUnavailable} {
		start := time.Now()
		u := model.Unit{
			ID: "1", Name: "PC-01",
			Status:          model.StatusTimeUp,
			User:            "alice",
			Email:           "alice@example.com",
			SessionDuration: 60,
			PaymentMethod:   "gcash",
			PaymentProof:    "proof",
			SessionStart:    &start,
		}
		err := Apply(&u, Request{Status: to}, time.Now())
		require.NoError(t, err)

		assert.Equal(t, to, u.Status)
		assert.Empty(t, u.User)
		assert.Empty(t, u.Email)
		assert.Zero(t, u.SessionDuration)
		assert.Empty(t, u.PaymentMethod)
		assert.Empty(t, u.PaymentProof)
		assert.Nil(t, u.SessionStart)
	}
}

func TestApplyRejectionClearsSession(t *testing.T) {
	u := model.Unit{
		ID: "1", Name: "PC-01",
		Status:          model.StatusPendingApproval,
		User:            "alice",
		SessionDuration: 60,
		PaymentMethod:   "gcash",
	}
	err := Apply(&u, Request{Status: model.StatusAvailable}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, u.Status)
	assert.Empty(t, u.User)
	assert.Zero(t, u.SessionDuration)
}

func TestApplyInUseOnlyEndsWithTimeUp(t *testing.T) {
	for _, to := range allStatuses {
		if to == model.StatusTimeUp || to == model.StatusInUse {
			continue
		}
		u := model.Unit{ID: "1", Name: "PC-01", Status: model.StatusInUse}
		err := Apply(&u, Request{Status: to}, time.Now())
		assert.ErrorIs(t, err, ErrIllegalTransition, "in_use -> %s", to)
	}
}

func TestMachineTransition(t *testing.T) {
	reg := store.NewRegistry("PC-01")
	m := NewMachine(reg)

	u, err := m.Transition("1", Request{Status: model.StatusPendingPayment})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingPayment, u.Status)

	got, err := reg.Get("1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingPayment, got.Status, "transition must be committed to the registry")

	_, err = m.Transition("99", Request{Status: model.StatusAvailable})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMachineEditAppliesRenameAndTransitionTogether(t *testing.T) {
	reg := store.NewRegistry("PC-01")
	m := NewMachine(reg)

	u, err := m.Edit("1", "Gaming-Rig", Request{Status: model.StatusMaintenance})
	require.NoError(t, err)
	assert.Equal(t, "Gaming-Rig", u.Name)
	assert.Equal(t, model.StatusMaintenance, u.Status)

	got, _ := reg.Get("1")
	assert.Equal(t, "Gaming-Rig", got.Name)
	assert.Equal(t, model.StatusMaintenance, got.Status)
}

func TestMachineEditRejectedTransitionRollsBackRename(t *testing.T) {
	reg := store.NewRegistry("PC-01")
	m := NewMachine(reg)

	_, err := m.Edit("1", "Gaming-Rig", Request{Status: model.StatusInUse})
	require.ErrorIs(t, err, ErrIllegalTransition)

	got, _ := reg.Get("1")
	assert.Equal(t, "PC-01", got.Name, "a rejected edit must not leave a partial rename behind")
	assert.Equal(t, model.StatusAvailable, got.Status)
}

func TestMachineEditRenameOnly(t *testing.T) {
	reg := store.NewRegistry("PC-01")
	m := NewMachine(reg)

	u, err := m.Edit("1", "Gaming-Rig", Request{})
	require.NoError(t, err)
	assert.Equal(t, "Gaming-Rig", u.Name)
	assert.Equal(t, model.StatusAvailable, u.Status)

	_, err = m.Edit("1", "   ", Request{})
	assert.ErrorIs(t, err, store.ErrEmptyName)
}

func TestMachineRejectedTransitionLeavesUnitUnchanged(t *testing.T) {
	reg := store.NewRegistry("PC-01")
	m := NewMachine(reg)

	_, err := m.Transition("1", Request{Status: model.StatusInUse})
	require.ErrorIs(t, err, ErrIllegalTransition)

	got, err := reg.Get("1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, got.Status)
}
