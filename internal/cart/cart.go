// Package cart holds the customer's in-progress order: the item being customised in the
// modal, the options chosen for it, who it is for, and the running total.
//
// The browser keeps the same state while the customer shops; the checkout service rebuilds
// a Cart from the submitted payload with prices taken from the menu, so the totals charged
// never depend on client-supplied amounts.
package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mamba-kebabs/ordering/internal/enum"
	"github.com/shopspring/decimal"
)

const (
	MaxNoteLength  = 500
	MaxOwnerLength = 60

	noIngredients = "No specific ingredients selected"
	noNote        = "No special instructions"
)

// KebabIngredients are the toggles offered for items with the kebab options type.
var KebabIngredients = []string{
	"Spicy sauce",
	"Soft sauce",
	"Onions",
	"Lettuce",
	"Tomatoes",
	"Chili powder",
	"Cabbage",
}

var (
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrUnknownOptionsType  = errors.New("unknown options type")
	ErrNoteTooLong         = fmt.Errorf("note must be at most %d characters", MaxNoteLength)
	ErrOwnerTooLong        = fmt.Errorf("item owner must be at most %d characters", MaxOwnerLength)
	ErrNegativePrice       = errors.New("price must be >= 0")
)

// Item is the part of a menu row the cart needs.
type Item struct {
	MenuID      int64
	Name        string
	Price       decimal.Decimal
	OptionsType string
}

// Selection is what the customer picked in the customisation modal.
type Selection struct {
	Ingredients []string
	Note        string
}

// Toggle adds the ingredient if it is not selected and removes it if it is.
func (s *Selection) Toggle(ingredient string) {
	if i := slices.Index(s.Ingredients, ingredient); i >= 0 {
		s.Ingredients = slices.Delete(s.Ingredients, i, i+1)
		return
	}
	s.Ingredients = append(s.Ingredients, ingredient)
}

// Details renders a selection the way the kitchen and the payment page show it.
func Details(optionsType string, sel Selection) string {
	if optionsType == enum.OptionsTypeKebab {
		if len(sel.Ingredients) == 0 {
			return noIngredients
		}
		return strings.Join(sel.Ingredients, ", ")
	}
	if note := strings.TrimSpace(sel.Note); note != "" {
		return note
	}
	return noNote
}

// Line is one customised item in the cart. Quantity is always one; two identical kebabs
// with different sauces are two lines.
type Line struct {
	UniqueID  string          `json:"unique_id"`
	MenuID    int64           `json:"menu_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Details   string          `json:"details"`
	ItemOwner string          `json:"item_owner,omitempty"`
}

// Cart is an ordered list of lines. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add validates the selection against the item and appends a new line.
func (c *Cart) Add(item Item, sel Selection, owner string) (Line, error) {
	if item.Price.IsNegative() {
		return Line{}, ErrNegativePrice
	}
	if err := validateSelection(item.OptionsType, sel); err != nil {
		return Line{}, err
	}
	owner = strings.TrimSpace(owner)
	if utf8.RuneCountInString(owner) > MaxOwnerLength {
		return Line{}, ErrOwnerTooLong
	}

	line := Line{
		UniqueID:  uuid.NewString(),
		MenuID:    item.MenuID,
		Name:      item.Name,
		Price:     item.Price,
		Details:   Details(item.OptionsType, sel),
		ItemOwner: owner,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove drops the line with the given id. It reports whether a line was removed.
func (c *Cart) Remove(uniqueID string) bool {
	i := slices.IndexFunc(c.lines, func(l Line) bool { return l.UniqueID == uniqueID })
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Total is the sum of all line prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price)
	}
	return total
}

func validateSelection(optionsType string, sel Selection) error {
	switch optionsType {
	case enum.OptionsTypeKebab:
		for i, ing := range sel.Ingredients {
			if !slices.Contains(KebabIngredients, ing) {
				return fmt.Errorf("%w: %q", ErrUnknownIngredient, ing)
			}
			if slices.Contains(sel.Ingredients[:i], ing) {
				return fmt.Errorf("%w: %q", ErrDuplicateIngredient, ing)
			}
		}
	case enum.OptionsTypeText:
		if utf8.RuneCountInString(sel.Note) > MaxNoteLength {
			return ErrNoteTooLong
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOptionsType, optionsType)
	}
	return nil
}
