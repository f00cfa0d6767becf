package kernel_test

import (
	"testing"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("12.345"))

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "12.35", m.String())
	})

	t.Run("zero is allowed", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "0.00", m.String())
	})

	t.Run("negative is out of range", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoneyFromString(t *testing.T) {
	m, err := kernel.MoneyFromString("9.5")
	require.NoError(t, err)
	assert.Equal(t, "9.50", m.String())

	_, err = kernel.MoneyFromString("nine")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	price, err := kernel.MoneyFromString("4.20")
	require.NoError(t, err)
	extra, err := kernel.MoneyFromString("0.85")
	require.NoError(t, err)

	subtotal := price.Mul(3)
	total := subtotal.Add(extra)

	assert.Equal(t, "12.60", subtotal.String())
	assert.Equal(t, "13.45", total.String())
	assert.True(t, kernel.ZeroMoney().Add(price).IsEqual(price))
}

func TestMoney_ZeroValueIsNotConstructed(t *testing.T) {
	var m kernel.Money
	assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
	require.NoError(t, kernel.ZeroMoney().Validate())
}
