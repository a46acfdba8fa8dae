package seed_test

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AmirSomo/api/internal/ledger"
	"github.com/AmirSomo/api/internal/logger"
	"github.com/AmirSomo/api/internal/seed"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func TestRunSeedsDemoAccounts(t *testing.T) {
	l := ledger.New()
	seed.Run(l)

	user1, err := l.GetBalance("user1")
	require.NoError(t, err)
	assert.True(t, user1.Equal(decimal.NewFromInt(1000)))

	user2, err := l.GetBalance("user2")
	require.NoError(t, err)
	assert.True(t, user2.Equal(decimal.NewFromInt(1500)))
}

func TestRunIsIdempotent(t *testing.T) {
	l := ledger.New()
	seed.Run(l)
	seed.Run(l)

	user1, err := l.GetBalance("user1")
	require.NoError(t, err)
	assert.True(t, user1.Equal(decimal.NewFromInt(1000)))

	txs, err := l.ListTransactions("user1")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
