package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// TenantService is deliberately thin: tenants are created unassigned
// and only pick up unit details through PropertyService.AssignTenant.
type TenantService interface {
	Create(ctx context.Context, in dtos.CreateTenantRequest) (*models.Tenant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Tenant, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, in dtos.CreatePaymentRequest) (*models.Payment, error)
	RecordPayment(ctx context.Context, paymentID uuid.UUID, amount float64) error
}

type tenantService struct {
	tenantRepo  repositories.TenantRepository
	paymentRepo repositories.PaymentRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, paymentRepo repositories.PaymentRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo, paymentRepo: paymentRepo}
}

func (s *tenantService) Create(ctx context.Context, in dtos.CreateTenantRequest) (*models.Tenant, error) {
	t := &models.Tenant{
		ID:         uuid.New(),
		LandlordID: in.LandlordID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
	}
	t.SetRowVersion(1)
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrTenantNotFound
	}
	return t, nil
}

func (s *tenantService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Tenant, error) {
	tenants, err := s.tenantRepo.ListByLandlordID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if tenants == nil {
		tenants = []*models.Tenant{}
	}
	return tenants, nil
}

func (s *tenantService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.tenantRepo.SoftDelete(ctx, id)
}

func (s *tenantService) CreatePayment(ctx context.Context, in dtos.CreatePaymentRequest) (*models.Payment, error) {
	if _, err := s.Get(ctx, in.TenantID); err != nil {
		return nil, err
	}
	due, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, err
	}
	p := &models.Payment{
		ID:         uuid.New(),
		TenantID:   in.TenantID,
		PropertyID: in.PropertyID,
		Amount:     in.Amount,
		DueDate:    due,
		Status:     models.PaymentUnpaid,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *tenantService) RecordPayment(ctx context.Context, paymentID uuid.UUID, amount float64) error {
	return s.paymentRepo.RecordPayment(ctx, paymentID, amount)
}
