package invoice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/klokku/freelancer/internal/repository"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownProject  = errors.New("invoice project does not exist")
	ErrInvalidStatus   = errors.New("invalid invoice status")
	ErrDuplicateNumber = errors.New("invoice number is already used")
)

// ProjectFinder resolves the project an invoice is issued for.
type ProjectFinder interface {
	Get(ctx context.Context, id string) (model.Project, error)
}

// Totals groups invoice totals by status. Overdue covers sent invoices whose
// due date has passed.
type Totals struct {
	Outstanding float64 `json:"outstanding"`
	Overdue     float64 `json:"overdue"`
	Paid        float64 `json:"paid"`
	Draft       float64 `json:"draft"`
}

type Service interface {
	List(ctx context.Context) ([]model.Invoice, error)
	Get(ctx context.Context, id string) (model.Invoice, error)
	Create(ctx context.Context, invoice model.Invoice) (model.Invoice, error)
	Update(ctx context.Context, invoice model.Invoice) (model.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetStatus(ctx context.Context, id string, status model.InvoiceStatus) (model.Invoice, error)
	AppendItem(ctx context.Context, id string) (model.Invoice, error)
	EditItem(ctx context.Context, id string, index int, edit ItemEdit) (model.Invoice, error)
	DeleteItem(ctx context.Context, id string, index int) (model.Invoice, error)
	Totals(ctx context.Context) (Totals, error)
}

// ItemEdit changes the fields that are set.
type ItemEdit struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Rate        *float64 `json:"rate"`
}

type ServiceImpl struct {
	repo     *repository.Repository[model.Invoice]
	projects ProjectFinder
	clock    utils.Clock
}

func NewService(repo *repository.Repository[model.Invoice], projects ProjectFinder) *ServiceImpl {
	return &ServiceImpl{repo, projects, &utils.SystemClock{}}
}

func (s *ServiceImpl) List(ctx context.Context) ([]model.Invoice, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (model.Invoice, error) {
	return s.repo.Find(ctx, id)
}

// Create takes the client from the invoice's project. New invoices start as
// drafts and get the next free number when none is given.
func (s *ServiceImpl) Create(ctx context.Context, invoice model.Invoice) (model.Invoice, error) {
	if err := s.resolveClient(ctx, &invoice); err != nil {
		return model.Invoice{}, err
	}
	invoice.Status = model.InvoiceDraft
	invoice.Items = RecomputeAmounts(invoice.Items)

	var stored model.Invoice
	err := s.repo.Modify(ctx, func(items []model.Invoice) ([]model.Invoice, error) {
		if strings.TrimSpace(invoice.Number) == "" {
			invoice.Number = NextNumber(items, s.clock.Now().Year())
		} else if numberTaken(items, invoice.Number, "") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, invoice.Number)
		}
		stored = invoice.WithIdentity(repository.NewId())
		return append(items, stored), nil
	})
	if err != nil {
		return model.Invoice{}, err
	}
	log.Debugf("Invoice %s created for project %s", stored.Number, stored.ProjectId)
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, invoice model.Invoice) (model.Invoice, error) {
	if err := s.resolveClient(ctx, &invoice); err != nil {
		return model.Invoice{}, err
	}
	if invoice.Status == "" {
		invoice.Status = model.InvoiceDraft
	}
	if !ValidStatus(invoice.Status) {
		return model.Invoice{}, ErrInvalidStatus
	}
	invoice.Items = RecomputeAmounts(invoice.Items)
	err := s.repo.Modify(ctx, func(items []model.Invoice) ([]model.Invoice, error) {
		if strings.TrimSpace(invoice.Number) != "" && numberTaken(items, invoice.Number, invoice.Id) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, invoice.Number)
		}
		for i := range items {
			if items[i].Id == invoice.Id {
				items[i] = invoice
				return items, nil
			}
		}
		return nil, repository.ErrNotFound
	})
	if err != nil {
		return model.Invoice{}, err
	}
	return invoice, nil
}

// numberTaken reports whether another invoice than exceptId carries number.
func numberTaken(invoices []model.Invoice, number string, exceptId string) bool {
	number = strings.TrimSpace(number)
	for _, inv := range invoices {
		if inv.Id != exceptId && strings.EqualFold(strings.TrimSpace(inv.Number), number) {
			return true
		}
	}
	return false
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) SetStatus(ctx context.Context, id string, status model.InvoiceStatus) (model.Invoice, error) {
	if !ValidStatus(status) {
		return model.Invoice{}, ErrInvalidStatus
	}
	return s.modifyInvoice(ctx, id, func(invoice *model.Invoice) error {
		invoice.Status = status
		return nil
	})
}

func (s *ServiceImpl) AppendItem(ctx context.Context, id string) (model.Invoice, error) {
	return s.modifyInvoice(ctx, id, func(invoice *model.Invoice) error {
		invoice.Items = AddItem(invoice.Items)
		return nil
	})
}

func (s *ServiceImpl) EditItem(ctx context.Context, id string, index int, edit ItemEdit) (model.Invoice, error) {
	return s.modifyInvoice(ctx, id, func(invoice *model.Invoice) error {
		items := invoice.Items
		var err error
		if edit.Description != nil {
			if items, err = SetItemDescription(items, index, *edit.Description); err != nil {
				return err
			}
		}
		if edit.Quantity != nil {
			if items, err = SetItemQuantity(items, index, *edit.Quantity); err != nil {
				return err
			}
		}
		if edit.Rate != nil {
			if items, err = SetItemRate(items, index, *edit.Rate); err != nil {
				return err
			}
		}
		if index < 0 || index >= len(items) {
			return ErrItemIndex
		}
		invoice.Items = items
		return nil
	})
}

func (s *ServiceImpl) DeleteItem(ctx context.Context, id string, index int) (model.Invoice, error) {
	return s.modifyInvoice(ctx, id, func(invoice *model.Invoice) error {
		items, err := RemoveItem(invoice.Items, index)
		if err != nil {
			return err
		}
		invoice.Items = items
		return nil
	})
}

func (s *ServiceImpl) modifyInvoice(ctx context.Context, id string, fn func(invoice *model.Invoice) error) (model.Invoice, error) {
	var updated model.Invoice
	err := s.repo.Modify(ctx, func(items []model.Invoice) ([]model.Invoice, error) {
		for i := range items {
			if items[i].Id != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, repository.ErrNotFound
	})
	if err != nil {
		return model.Invoice{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Totals(ctx context.Context) (Totals, error) {
	invoices, err := s.repo.GetAll(ctx)
	if err != nil {
		return Totals{}, err
	}
	now := s.clock.Now()
	var totals Totals
	for _, i := range invoices {
		total := Total(i.Items)
		switch i.Status {
		case model.InvoiceSent:
			totals.Outstanding += total
			if due, ok := metrics.ParseDate(i.DueDate, now.Location()); ok && due.Before(now) {
				totals.Overdue += total
			}
		case model.InvoicePaid:
			totals.Paid += total
		case model.InvoiceDraft:
			totals.Draft += total
		}
	}
	return totals, nil
}

func (s *ServiceImpl) resolveClient(ctx context.Context, invoice *model.Invoice) error {
	project, err := s.projects.Get(ctx, invoice.ProjectId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownProject, invoice.ProjectId)
		}
		return err
	}
	invoice.ClientId = project.ClientId
	return nil
}

// NextNumber returns INV-<year>-<n> where n follows the highest numeric
// suffix among existing invoice numbers, zero padded to three digits.
func NextNumber(invoices []model.Invoice, year int) string {
	highest := 0
	for _, i := range invoices {
		parts := strings.Split(i.Number, "-")
		if len(parts) < 3 {
			continue
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("INV-%d-%03d", year, highest+1)
}

func ValidStatus(status model.InvoiceStatus) bool {
	switch status {
	case model.InvoiceDraft, model.InvoiceSent, model.InvoicePaid:
		return true
	}
	return false
}
