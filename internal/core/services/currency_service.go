package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gastosapp/gastos_backend/internal/apperrors"
	"github.com/gastosapp/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastosapp/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/gastosapp/gastos_backend/internal/dto"
)

type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		userRepo:     userRepo,
	}
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	actor, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user %s: %w", creatorUserID, err)
	}
	if !domain.CanManageCatalogs(actor.Roles) {
		return nil, fmt.Errorf("%w: insufficient role to manage currencies", apperrors.ErrForbidden)
	}

	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check currency uniqueness: %w", err)
		}
	} else if existing != nil {
		return nil, fmt.Errorf("%w: currency %s already registered", apperrors.ErrDuplicate, code)
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         strings.TrimSpace(req.Name),
		Precision:    req.Precision,
		AuditFields:  domain.NewAuditFields(creatorUserID, time.Now()),
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
