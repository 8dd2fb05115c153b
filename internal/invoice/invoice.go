// Package invoice renders and sends session invoices. Rendering joins the
// unit's session payload against the pricing table at read time; the unit
// itself never stores a price.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"comrent-backend/internal/model"
	"comrent-backend/internal/store"
)

// ErrNotEligible is returned when a unit lacks the payload an invoice
// needs or is not in an invoiceable status.
var ErrNotEligible = errors.New("unit has no invoiceable session")

// Result is the outcome contract of a send: success plus a human message.
// A failed send still produces a Result, not an error, because invoicing
// failure must never look like a failed state transition.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service renders invoice emails from the editable template and hands them
// to the mailer.
type Service struct {
	pricing   *store.PricingStore
	templates *store.TemplateStore
	audit     *store.AuditLog
	mailer    Mailer
	company   string
}

// NewService creates an invoice service.
func NewService(pricing *store.PricingStore, templates *store.TemplateStore, audit *store.AuditLog, mailer Mailer, company string) *Service {
	return &Service{
		pricing:   pricing,
		templates: templates,
		audit:     audit,
		mailer:    mailer,
		company:   company,
	}
}

// Eligible reports whether a unit can be invoiced: it must carry a customer
// name, email and duration, and be in a status where payment is relevant.
func Eligible(u model.Unit) bool {
	if u.Email == "" || u.User == "" || u.SessionDuration == 0 {
		return false
	}
	switch u.Status {
	case model.StatusInUse, model.StatusTimeUp, model.StatusPendingPayment:
		return true
	}
	return false
}

// Amount formats the price for a duration, degrading to "unknown" when the
// duration has no tier.
func (s *Service) Amount(minutes int) string {
	tier, ok := s.pricing.Lookup(minutes)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("₱%.2f", tier.Price)
}

// DurationLabel returns the tier label for a duration, or a plain
// "N minutes" when the duration has no tier.
func (s *Service) DurationLabel(minutes int) string {
	if tier, ok := s.pricing.Lookup(minutes); ok {
		return tier.Label
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// Render produces the subject and body for a unit's invoice by substituting
// the template placeholders.
func (s *Service) Render(u model.Unit) (subject, body string, err error) {
	if !Eligible(u) {
		return "", "", ErrNotEligible
	}

	repl := strings.NewReplacer(
		"{{companyName}}", s.company,
		"{{customerName}}", u.User,
		"{{pcName}}", u.Name,
		"{{duration}}", s.DurationLabel(u.SessionDuration),
		"{{amount}}", s.Amount(u.SessionDuration),
	)
	tpl := s.templates.Get()
	return repl.Replace(tpl.Subject), repl.Replace(tpl.Body), nil
}

// Send renders and delivers the unit's invoice. Delivery failure comes back
// as an unsuccessful Result; the only errors returned are eligibility
// problems the caller should treat as validation failures.
func (s *Service) Send(ctx context.Context, u model.Unit) (Result, error) {
	subject, body, err := s.Render(u)
	if err != nil {
		return Result{}, err
	}

	if err := s.mailer.Send(ctx, u.Email, subject, body); err != nil {
		return Result{
			Success: false,
			Message: fmt.Sprintf("could not send invoice to %s: %v", u.Email, err),
		}, nil
	}

	s.audit.Append(fmt.Sprintf("Sent invoice to %s for PC %q.", u.Email, u.Name))
	return Result{
		Success: true,
		Message: fmt.Sprintf("Invoice sent to %s.", u.Email),
	}, nil
}
