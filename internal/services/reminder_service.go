package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// ReminderConfig carries the credentials and sender identities for
// outbound arrears notifications. Empty fields disable the matching
// channel rather than failing the sweep.
type ReminderConfig struct {
	SendGridAPIKey  string
	FromEmail       string
	FromName        string
	TwilioSID       string
	TwilioAuthToken string
	TwilioFrom      string
	SandboxMode     bool
}

// ReminderService rolls unpaid payments past their due date into
// overdue and nudges the affected tenants by email and SMS.
type ReminderService interface {
	RunOverdueSweep(ctx context.Context) error
	SendArrearsReminders(ctx context.Context) (int, error)
}

type reminderService struct {
	paymentRepo repositories.PaymentRepository
	tenantRepo  repositories.TenantRepository
	cfg         ReminderConfig
	sgClient    *sendgrid.Client
	twClient    *twilio.RestClient
}

func NewReminderService(
	paymentRepo repositories.PaymentRepository,
	tenantRepo repositories.TenantRepository,
	cfg ReminderConfig,
) ReminderService {
	s := &reminderService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		cfg:         cfg,
	}
	if cfg.SendGridAPIKey != "" {
		s.sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	if cfg.TwilioSID != "" && cfg.TwilioAuthToken != "" {
		s.twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return s
}

// RunOverdueSweep is the nightly job body: flip stale unpaid payments
// to overdue, then send reminders for everything still outstanding.
func (s *reminderService) RunOverdueSweep(ctx context.Context) error {
	flipped, err := s.paymentRepo.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("marking overdue payments: %w", err)
	}
	if flipped > 0 {
		utils.Logger.WithField("count", flipped).Info("Payments rolled to overdue")
	}

	sent, err := s.SendArrearsReminders(ctx)
	if err != nil {
		return err
	}
	utils.Logger.WithField("reminders", sent).Info("Overdue sweep finished")
	return nil
}

// SendArrearsReminders groups outstanding balances per tenant and
// sends at most one email and one SMS each. Per-tenant failures are
// logged and skipped so one bad address cannot stall the rest.
func (s *reminderService) SendArrearsReminders(ctx context.Context) (int, error) {
	payments, err := s.paymentRepo.ListOutstanding(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing outstanding payments: %w", err)
	}

	balances := make(map[uuid.UUID]float64)
	for _, p := range payments {
		if b := p.Balance(); b > 0 {
			balances[p.TenantID] += b
		}
	}

	sent := 0
	for tenantID, balance := range balances {
		tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
		if err != nil || tenant == nil {
			utils.Logger.WithFields(logrus.Fields{
				"tenantId": tenantID,
			}).WithError(err).Warn("Skipping reminder for unknown tenant")
			continue
		}
		if s.notifyTenant(tenant, balance) {
			sent++
		}
	}
	return sent, nil
}

func (s *reminderService) notifyTenant(tenant *models.Tenant, balance float64) bool {
	delivered := false
	if err := s.sendEmail(tenant, balance); err != nil {
		utils.Logger.WithField("tenantId", tenant.ID).WithError(err).Warn("Arrears email failed")
	} else if s.sgClient != nil {
		delivered = true
	}
	if err := s.sendSMS(tenant, balance); err != nil {
		utils.Logger.WithField("tenantId", tenant.ID).WithError(err).Warn("Arrears SMS failed")
	} else if s.twClient != nil && tenant.Phone != "" {
		delivered = true
	}
	return delivered
}

func (s *reminderService) sendEmail(tenant *models.Tenant, balance float64) error {
	if s.sgClient == nil {
		return nil
	}
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(tenant.FullName(), tenant.Email)
	subject := "Rent balance reminder"
	plain := reminderBody(tenant, balance)
	html := "<p>" + strings.ReplaceAll(plain, "\n", "<br>") + "</p>"
	message := mail.NewSingleEmail(from, subject, to, plain, html)
	if s.cfg.SandboxMode {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		message.SetMailSettings(settings)
	}
	resp, err := s.sgClient.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d: %w", resp.StatusCode, utils.ErrExternalServiceFailure)
	}
	return nil
}

func (s *reminderService) sendSMS(tenant *models.Tenant, balance float64) error {
	if s.twClient == nil || tenant.Phone == "" {
		return nil
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(tenant.Phone)
	params.SetFrom(s.cfg.TwilioFrom)
	params.SetBody(reminderBody(tenant, balance))
	_, err := s.twClient.Api.CreateMessage(params)
	return err
}

func reminderBody(tenant *models.Tenant, balance float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n", tenant.FirstName)
	if tenant.PropertyName != "" && tenant.UnitLabel != "" {
		fmt.Fprintf(&b, "Your unit %s at %s has an outstanding rent balance of %.2f.\n", tenant.UnitLabel, tenant.PropertyName, balance)
	} else {
		fmt.Fprintf(&b, "You have an outstanding rent balance of %.2f.\n", balance)
	}
	b.WriteString("Please clear it at your earliest convenience.")
	return b.String()
}
