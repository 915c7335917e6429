package invoice

import (
	"errors"
	"slices"

	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
)

var ErrItemIndex = errors.New("invoice item index out of range")

// The item functions below never modify their input. Edits of quantity or
// rate recompute the amount of the edited item only.

func AddItem(items []model.InvoiceItem) []model.InvoiceItem {
	return append(slices.Clone(items), model.InvoiceItem{})
}

func RemoveItem(items []model.InvoiceItem, index int) ([]model.InvoiceItem, error) {
	if index < 0 || index >= len(items) {
		return nil, ErrItemIndex
	}
	return slices.Delete(slices.Clone(items), index, index+1), nil
}

func SetItemQuantity(items []model.InvoiceItem, index int, quantity float64) ([]model.InvoiceItem, error) {
	return editItem(items, index, func(item *model.InvoiceItem) {
		item.Quantity = quantity
		item.Amount = metrics.ItemAmount(item.Quantity, item.Rate)
	})
}

func SetItemRate(items []model.InvoiceItem, index int, rate float64) ([]model.InvoiceItem, error) {
	return editItem(items, index, func(item *model.InvoiceItem) {
		item.Rate = rate
		item.Amount = metrics.ItemAmount(item.Quantity, item.Rate)
	})
}

func SetItemDescription(items []model.InvoiceItem, index int, description string) ([]model.InvoiceItem, error) {
	return editItem(items, index, func(item *model.InvoiceItem) {
		item.Description = description
	})
}

// RecomputeAmounts returns a copy of items with every amount set to
// quantity * rate.
func RecomputeAmounts(items []model.InvoiceItem) []model.InvoiceItem {
	result := make([]model.InvoiceItem, len(items))
	for i, item := range items {
		item.Amount = metrics.ItemAmount(item.Quantity, item.Rate)
		result[i] = item
	}
	return result
}

func Total(items []model.InvoiceItem) float64 {
	return metrics.InvoiceTotal(items)
}

func editItem(items []model.InvoiceItem, index int, edit func(item *model.InvoiceItem)) ([]model.InvoiceItem, error) {
	if index < 0 || index >= len(items) {
		return nil, ErrItemIndex
	}
	result := slices.Clone(items)
	edit(&result[index])
	return result, nil
}
