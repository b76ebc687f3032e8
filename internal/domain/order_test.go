package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionForwardSteps(t *testing.T) {
	tests := []struct {
		name   string
		from   OrderStatus
		target OrderStatus
		role   Role
		err    error
	}{
		{"place to assigned", StatusPlaced, StatusAccepted, RoleDasher, nil},
		{"assigned to hall", StatusAccepted, StatusAtHall, RoleDasher, nil},
		{"hall to line", StatusAtHall, StatusInLine, RoleDasher, nil},
		{"line to on the way", StatusInLine, StatusPickedUp, RoleDasher, nil},
		{"on the way to delivered", StatusPickedUp, StatusDelivered, RoleDasher, nil},
		{"skip a step", StatusAccepted, StatusPickedUp, RoleDasher, ErrInvalidTransition},
		{"move backwards", StatusInLine, StatusAtHall, RoleDasher, ErrInvalidTransition},
		{"stay in place", StatusAtHall, StatusAtHall, RoleDasher, ErrInvalidTransition},
		{"past delivered", StatusDelivered, StatusDelivered, RoleDasher, ErrInvalidTransition},
		{"past cancelled", StatusCancelled, StatusAccepted, RoleDasher, ErrInvalidTransition},
		{"customer advancing", StatusAccepted, StatusAtHall, RoleCustomer, ErrInvalidTransition},
		{"made-up status", StatusPlaced, OrderStatus("Teleported"), RoleDasher, ErrUnknownStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.from.CanTransition(tc.target, tc.role)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	// only the customer, and only before a dasher is assigned
	assert.NoError(t, StatusPlaced.CanTransition(StatusCancelled, RoleCustomer))
	assert.ErrorIs(t, StatusPlaced.CanTransition(StatusCancelled, RoleDasher), ErrInvalidTransition)
	assert.ErrorIs(t, StatusAccepted.CanTransition(StatusCancelled, RoleCustomer), ErrInvalidTransition)
	assert.ErrorIs(t, StatusPickedUp.CanTransition(StatusCancelled, RoleCustomer), ErrInvalidTransition)
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPlaced.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("Teleported").Valid())

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPickedUp.Terminal())

	assert.Equal(t, -1, StatusCancelled.Index())
	assert.Equal(t, 0, StatusPlaced.Index())
	assert.Equal(t, 5, StatusDelivered.Index())
}

func TestMergeCartLines(t *testing.T) {
	merged := MergeCartLines([]CartLine{
		{Name: "Wrap", Quantity: 1},
		{Name: "Salad", Quantity: 2},
		{Name: "Wrap", Quantity: 3},
		{Name: "Cookie", Quantity: 0},
	})

	require.Len(t, merged, 3)
	assert.Equal(t, CartLine{Name: "Wrap", Quantity: 4}, merged[0])
	assert.Equal(t, CartLine{Name: "Salad", Quantity: 2}, merged[1])
	assert.Equal(t, CartLine{Name: "Cookie", Quantity: 1}, merged[2])
}
