package service

import (
	"time"

	"github.com/ejay-detera/orgspace/core/config"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/throttle"
	"github.com/ejay-detera/orgspace/internal/validation"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	limiter   throttle.Limiter
	publisher EventPublisher
	validator *validation.Validator
	cfg       config.Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, limiter throttle.Limiter, publisher EventPublisher, cfg config.Config) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		limiter:   limiter,
		publisher: publisher,
		validator: validation.New(time.Now),
		cfg:       cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.stores.Users(),
		s.stores.Sessions(),
		s.stores.Organizations(),
		s.limiter,
		throttle.Policy{MaxAttempts: s.cfg.Throttle.MaxAttempts, Decay: s.cfg.Throttle.Decay},
		s.validator,
		s.cfg.Auth.SessionTTL,
		time.Now,
	)
}

func (s *Services) Registration() RegistrationService {
	return NewRegistrationService(s.stores.Users(), s.Auth(), s.publisher, s.validator, s.cfg.Auth.BcryptCost)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.txRunner, s.publisher, s.validator, GenerateOrganizationCode)
}
