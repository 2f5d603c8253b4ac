package model

import (
	"fmt"
	"sort"

	"github.com/AlanJumeaucourt/wealth-manager-sub001/internal/apperrors"
)

// Category catalogue per transaction type. Categories are fixed rather than
// free-form so that an unrecognized category is a decoding error instead of
// silently falling back to an expense bucket.
var categoriesByType = map[TransactionType]map[string]bool{
	TypeExpense: {
		"groceries":     true,
		"restaurants":   true,
		"transport":     true,
		"housing":       true,
		"utilities":     true,
		"health":        true,
		"leisure":       true,
		"shopping":      true,
		"subscriptions": true,
		"taxes":         true,
		"fees":          true,
		"other_expense": true,
	},
	TypeIncome: {
		"salary":       true,
		"refund":       true,
		"interest":     true,
		"dividends":    true,
		"gifts":        true,
		"other_income": true,
	},
	TypeTransfer: {
		"internal": true,
		"savings":  true,
	},
}

// ParseCategory validates a category against the catalogue for the given type.
// Returns apperrors.ErrUnknownCategory when the category is not recognized.
func ParseCategory(txType TransactionType, raw string) (string, error) {
	valid, ok := categoriesByType[txType]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownTransactionType, txType)
	}
	if !valid[raw] {
		return "", fmt.Errorf("%w: %q for type %s", apperrors.ErrUnknownCategory, raw, txType)
	}
	return raw, nil
}

// CategoriesFor returns the known categories for a transaction type.
// Used by validation and by the category listing endpoint.
func CategoriesFor(txType TransactionType) []string {
	valid := categoriesByType[txType]
	categories := make([]string, 0, len(valid))
	for c := range valid {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
