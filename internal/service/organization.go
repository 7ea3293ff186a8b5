package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/queue"
	"github.com/ejay-detera/orgspace/internal/store"
	"github.com/ejay-detera/orgspace/internal/validation"
)

const (
	organizationCodeLength   = 10
	organizationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxProvisionAttempts     = 3
)

type CreateOrganizationInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,max=255"`
	Image       string `json:"image" validate:"omitempty,max=2048"`
}

// ProvisionResult is everything written by one successful Create.
type ProvisionResult struct {
	Organization *model.Organization
	Committee    *model.Committee
	Membership   *model.Membership
}

type OrganizationService interface {
	Create(ctx context.Context, in CreateOrganizationInput, actorID int64) (*ProvisionResult, error)
}

// CodeGenerator produces organization join codes.
type CodeGenerator func() (string, error)

type organizationService struct {
	txRunner  TxRunner
	publisher EventPublisher
	validator *validation.Validator
	newCode   CodeGenerator
}

func NewOrganizationService(txRunner TxRunner, publisher EventPublisher, validator *validation.Validator, codes CodeGenerator) OrganizationService {
	if codes == nil {
		codes = GenerateOrganizationCode
	}
	return &organizationService{
		txRunner:  txRunner,
		publisher: publisher,
		validator: validator,
		newCode:   codes,
	}
}

func (s *organizationService) Create(ctx context.Context, in CreateOrganizationInput, actorID int64) (*ProvisionResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Image = strings.TrimSpace(in.Image)

	if errs := s.validator.Struct(in); errs != nil {
		return nil, &ValidationError{Errors: errs}
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    &actorID,
		Component: "orgspace.service.organization",
	})

	var lastErr error
	for attempt := 1; attempt <= maxProvisionAttempts; attempt++ {
		result, err := s.provision(ctx, in, actorID)
		if err == nil {
			ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &result.Organization.ID})
			slog.InfoContext(ctx, "organization provisioned",
				"name", result.Organization.Name,
				"committee_id", result.Committee.ID)

			publish(ctx, s.publisher, queue.Event{
				Type:           queue.EventOrganizationCreated,
				UserID:         actorID,
				OrganizationID: &result.Organization.ID,
				Name:           result.Organization.Name,
			})
			return result, nil
		}

		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return nil, verr
		case store.IsConflictOn(err, store.ConstraintOrganizationName):
			return nil, fieldError("name", validation.MsgNameTaken)
		case store.IsConflictOn(err, store.ConstraintOrganizationCode):
			slog.InfoContext(ctx, "organization code collision, retrying", "attempt", attempt)
			lastErr = err
		default:
			slog.ErrorContext(ctx, "organization provisioning failed", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
		}
	}

	slog.ErrorContext(ctx, "organization provisioning failed", "error", lastErr, "attempts", maxProvisionAttempts)
	return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, lastErr)
}

// provision writes the organization, its executive committee and the creator's
// membership in one transaction.
func (s *organizationService) provision(ctx context.Context, in CreateOrganizationInput, actorID int64) (*ProvisionResult, error) {
	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	var result *ProvisionResult
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Organizations().GetByName(ctx, in.Name); err == nil {
			return fieldError("name", validation.MsgNameTaken)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking organization name: %w", err)
		}

		org := &model.Organization{
			ID:          id.New(),
			Name:        in.Name,
			Description: in.Description,
			Type:        in.Type,
			Status:      model.OrganizationStatusActive,
			Code:        code,
			Image:       optional(in.Image),
			CreatedBy:   actorID,
		}
		if err := sp.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		committee := &model.Committee{
			ID:             id.New(),
			OrganizationID: org.ID,
			Name:           model.ExecutiveCommitteeName,
			Description:    model.ExecutiveCommitteeDescription,
			IsPublic:       false,
			CreatedBy:      &actorID,
		}
		if err := sp.Committees().Create(ctx, committee); err != nil {
			return fmt.Errorf("creating executive committee: %w", err)
		}

		membership := &model.Membership{
			ID:             id.New(),
			UserID:         actorID,
			OrganizationID: org.ID,
			Role:           model.MemberRolePresident,
			Status:         model.MemberStatusActive,
		}
		if err := sp.Memberships().Create(ctx, membership); err != nil {
			return fmt.Errorf("creating president membership: %w", err)
		}

		result = &ProvisionResult{Organization: org, Committee: committee, Membership: membership}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateOrganizationCode returns 10 uniformly random characters from [A-Z0-9].
func GenerateOrganizationCode() (string, error) {
	limit := big.NewInt(int64(len(organizationCodeAlphabet)))
	buf := make([]byte, organizationCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating organization code: %w", err)
		}
		buf[i] = organizationCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
