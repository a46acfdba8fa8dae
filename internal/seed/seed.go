package seed

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AmirSomo/api/internal/ledger"
	"github.com/AmirSomo/api/internal/logger"
)

var testAccounts = []struct {
	Username string
	Balance  decimal.Decimal
}{
	{"user1", decimal.NewFromInt(1000)},
	{"user2", decimal.NewFromInt(1500)},
}

// Run creates the two demo accounts the service has always shipped with.
// Safe to call more than once: accounts that already exist are skipped.
func Run(l *ledger.Ledger) {
	for _, a := range testAccounts {
		acct, err := l.CreateAccount(a.Username, a.Balance)
		if errors.Is(err, ledger.ErrDuplicateAccount) {
			logger.Log.Info("seed account already present", zap.String("username", a.Username))
			continue
		}
		if err != nil {
			logger.Log.Fatal("seed failed", zap.String("username", a.Username), zap.Error(err))
		}
		logger.Log.Info("seeded account",
			zap.String("username", a.Username),
			zap.String("account_id", acct.ID),
			zap.String("balance", a.Balance.String()))
	}
}
