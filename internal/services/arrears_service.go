package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// ArrearsService joins payments against tenants and properties to
// produce the balances view. All math runs server-side behind one
// endpoint; clients never re-aggregate raw collections.
type ArrearsService interface {
	// Overview is scoped to the landlord, or global when landlordID is
	// nil. If any of the three source fetches fails the whole view
	// degrades to the zero-valued shape (fail closed).
	Overview(ctx context.Context, landlordID *uuid.UUID) *dtos.ArrearsOverviewResponse
}

type arrearsService struct {
	paymentRepo repositories.PaymentRepository
	tenantRepo  repositories.TenantRepository
	propRepo    repositories.PropertyRepository
}

func NewArrearsService(
	paymentRepo repositories.PaymentRepository,
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
) ArrearsService {
	return &arrearsService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		propRepo:    propRepo,
	}
}

func (s *arrearsService) Overview(ctx context.Context, landlordID *uuid.UUID) *dtos.ArrearsOverviewResponse {
	empty := &dtos.ArrearsOverviewResponse{Rows: []dtos.ArrearsRow{}}

	var (
		payments []*models.Payment
		tenants  []*models.Tenant
		props    []*models.Property
		err      error
	)
	if landlordID != nil {
		payments, err = s.paymentRepo.ListByLandlordID(ctx, *landlordID)
	} else {
		payments, err = s.paymentRepo.ListAll(ctx)
	}
	if err != nil {
		utils.Logger.WithError(err).Error("Arrears aggregation: payment fetch failed, reporting empty stats")
		return empty
	}
	if landlordID != nil {
		tenants, err = s.tenantRepo.ListByLandlordID(ctx, *landlordID)
	} else {
		tenants, err = s.tenantRepo.ListAll(ctx)
	}
	if err != nil {
		utils.Logger.WithError(err).Error("Arrears aggregation: tenant fetch failed, reporting empty stats")
		return empty
	}
	if landlordID != nil {
		props, err = s.propRepo.ListByLandlordID(ctx, *landlordID)
	} else {
		props, err = s.propRepo.ListAll(ctx)
	}
	if err != nil {
		utils.Logger.WithError(err).Error("Arrears aggregation: property fetch failed, reporting empty stats")
		return empty
	}

	tenantsByID := make(map[uuid.UUID]*models.Tenant, len(tenants))
	for _, t := range tenants {
		tenantsByID[t.ID] = t
	}
	propsByID := make(map[uuid.UUID]*models.Property, len(props))
	for _, p := range props {
		propsByID[p.ID] = p
	}

	out := &dtos.ArrearsOverviewResponse{
		TotalTenants: len(tenants),
		Rows:         []dtos.ArrearsRow{},
	}
	inArrears := map[uuid.UUID]bool{}

	for _, pay := range payments {
		out.TotalDue += pay.Amount
		out.TotalPaid += pay.AmountPaid
		if !pay.Outstanding() {
			continue
		}

		out.TotalArrears += pay.Balance()
		inArrears[pay.TenantID] = true

		row := dtos.ArrearsRow{
			PaymentID:  pay.ID,
			TenantID:   pay.TenantID,
			Amount:     pay.Amount,
			AmountPaid: pay.AmountPaid,
			Balance:    pay.Balance(),
			DueDate:    pay.DueDate,
			Status:     string(pay.Status),
		}
		tenant := tenantsByID[pay.TenantID]
		if tenant != nil {
			row.TenantName = tenant.FullName()
			row.Email = tenant.Email
			row.Phone = tenant.Phone
		}
		row.PropertyName = resolvePropertyName(pay, tenant, propsByID)
		out.Rows = append(out.Rows, row)
	}

	out.TenantsInArrears = len(inArrears)
	out.TenantsPaidUp = out.TotalTenants - out.TenantsInArrears
	if out.TenantsPaidUp < 0 {
		// Payments referencing tenants outside the visible set.
		out.TenantsPaidUp = 0
	}
	return out
}

// resolvePropertyName tolerates missing or stale references, trying in
// order: the payment's own property link, the tenant's property link,
// then the tenant's denormalized property name. This chain is the only
// place a dangling reference is forgiven.
func resolvePropertyName(
	pay *models.Payment,
	tenant *models.Tenant,
	propsByID map[uuid.UUID]*models.Property,
) string {
	if p, ok := propsByID[pay.PropertyID]; ok {
		return p.Name
	}
	if tenant != nil {
		if tenant.PropertyID != nil {
			if p, ok := propsByID[*tenant.PropertyID]; ok {
				return p.Name
			}
		}
		if tenant.PropertyName != "" {
			return tenant.PropertyName
		}
	}
	return ""
}
