package services

import (
	portsrepo "github.com/giantprolu/gestiondecompte/internal/core/ports/repositories"
	portssvc "github.com/giantprolu/gestiondecompte/internal/core/ports/services"
	"github.com/giantprolu/gestiondecompte/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deliverer portssvc.PushDeliverer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Share service first: it is the authorizer the other services depend on.
	container.Share = NewShareService(repos.ShareRepo, repos.UserRepo)
	authorizer := portssvc.ShareAuthorizerSvc(container.Share)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountShareAuthorizer(authorizer),
	)

	container.Notification = NewNotificationService(repos.NotificationRepo, deliverer)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.CreditRepo,
		WithTransactionShareAuthorizer(authorizer),
	)

	container.Recurring = NewRecurringService(
		repos.TransactionRepo,
		WithRunNotifier(container.Notification),
	)

	container.Closure = NewClosureService(repos.TransactionRepo, repos.ClosureRepo)
	container.Credit = NewCreditService(repos.CreditRepo, repos.AccountRepo)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.User = NewUserService(
		repos.UserRepo,
		WithOAuthHandler(container.GoogleOAuthHandler),
	)
	container.TokenService = NewTokenService(cfg, container.User)

	return container
}
