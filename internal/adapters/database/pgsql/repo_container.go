package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	creditRepo := newPgxCreditRepository(dbPool)
	closureRepo := newPgxClosureRepository(dbPool)
	shareRepo := newPgxShareRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		CreditRepo:       creditRepo,
		ClosureRepo:      closureRepo,
		ShareRepo:        shareRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	}
}
