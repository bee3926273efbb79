package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokernight/pkg/contracts/domain"
)

func TestComputeTwoPlayers(t *testing.T) {
	transfers, err := Compute(map[string]float64{
		"Alice": 10,
		"Bob":   -10,
	}, DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, []domain.Transfer{
		{Payer: "Bob", Payee: "Alice", Amount: 10},
	}, transfers)
}

func TestComputeFourPlayers(t *testing.T) {
	transfers, err := Compute(map[string]float64{
		"A": 12,
		"B": 8,
		"C": -10,
		"D": -10,
	}, DefaultTolerance)
	require.NoError(t, err)

	// Equal debts break ties by name, so C settles before D.
	assert.Equal(t, []domain.Transfer{
		{Payer: "C", Payee: "A", Amount: 10},
		{Payer: "D", Payee: "A", Amount: 2},
		{Payer: "D", Payee: "B", Amount: 8},
	}, transfers)
}

func TestComputeImbalance(t *testing.T) {
	_, err := Compute(map[string]float64{
		"A": 5,
		"B": -4,
	}, DefaultTolerance)
	require.Error(t, err)

	var imbalance *ImbalanceError
	require.ErrorAs(t, err, &imbalance)
	assert.InDelta(t, 1.0, imbalance.Imbalance, 1e-9)
}

func TestComputeAllSettled(t *testing.T) {
	transfers, err := Compute(map[string]float64{
		"A": 0,
		"B": 1e-9,
		"C": -1e-9,
	}, DefaultTolerance)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestComputeEmptyInput(t *testing.T) {
	transfers, err := Compute(nil, DefaultTolerance)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestComputeDeterministic(t *testing.T) {
	nets := map[string]float64{
		"Eve":   -5,
		"Frank": -5,
		"Grace": 5,
		"Heidi": 5,
	}
	first, err := Compute(nets, DefaultTolerance)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Compute(nets, DefaultTolerance)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeConservation(t *testing.T) {
	nets := map[string]float64{
		"A": 33.5,
		"B": -12.25,
		"C": -21.25,
		"D": 0,
	}
	transfers, err := Compute(nets, DefaultTolerance)
	require.NoError(t, err)

	paid := map[string]float64{}
	for _, tr := range transfers {
		assert.Greater(t, tr.Amount, 0.0)
		paid[tr.Payer] -= tr.Amount
		paid[tr.Payee] += tr.Amount
	}
	for player, net := range nets {
		assert.InDelta(t, net, paid[player], 0.01, "player %s", player)
	}
}

func TestFormatTransfers(t *testing.T) {
	text := FormatTransfers([]domain.Transfer{
		{Payer: "Bob", Payee: "Alice", Amount: 12.5},
		{Payer: "Carl", Payee: "Alice", Amount: 3},
	}, "£")
	assert.Equal(t, "Bob -> Alice: £12.50\nCarl -> Alice: £3.00", text)
}

func TestFormatTransfersEmpty(t *testing.T) {
	assert.Equal(t, "", FormatTransfers(nil, "£"))
}
