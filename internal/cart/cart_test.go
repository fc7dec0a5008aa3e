package cart

import (
	"strings"
	"testing"

	"github.com/mamba-kebabs/ordering/internal/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kebab() Item {
	return Item{MenuID: 1, Name: "Mamba Kebab", Price: decimal.RequireFromString("6.50"), OptionsType: enum.OptionsTypeKebab}
}

func fries() Item {
	return Item{MenuID: 2, Name: "Fries", Price: decimal.RequireFromString("3.00"), OptionsType: enum.OptionsTypeText}
}

func TestSelectionToggle(t *testing.T) {
	var sel Selection
	sel.Toggle("Onions")
	sel.Toggle("Lettuce")
	sel.Toggle("Tomatoes")
	assert.Equal(t, []string{"Onions", "Lettuce", "Tomatoes"}, sel.Ingredients)

	sel.Toggle("Lettuce")
	assert.Equal(t, []string{"Onions", "Tomatoes"}, sel.Ingredients)
}

func TestDetails(t *testing.T) {
	tests := []struct {
		name        string
		optionsType string
		sel         Selection
		want        string
	}{
		{"kebab without ingredients", enum.OptionsTypeKebab, Selection{}, "No specific ingredients selected"},
		{"kebab with ingredients", enum.OptionsTypeKebab, Selection{Ingredients: []string{"Spicy sauce", "Onions"}}, "Spicy sauce, Onions"},
		{"kebab ignores note", enum.OptionsTypeKebab, Selection{Note: "extra hot"}, "No specific ingredients selected"},
		{"text without note", enum.OptionsTypeText, Selection{}, "No special instructions"},
		{"text blank note", enum.OptionsTypeText, Selection{Note: "   "}, "No special instructions"},
		{"text note trimmed", enum.OptionsTypeText, Selection{Note: "  no pickles "}, "no pickles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Details(tt.optionsType, tt.sel))
		})
	}
}

func TestCartAddAndTotal(t *testing.T) {
	c := New()

	l1, err := c.Add(kebab(), Selection{Ingredients: []string{"Soft sauce"}}, "Alex")
	require.NoError(t, err)
	l2, err := c.Add(kebab(), Selection{Ingredients: []string{"Spicy sauce"}}, "")
	require.NoError(t, err)
	_, err = c.Add(fries(), Selection{Note: "extra salt"}, " Sam ")
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.NotEqual(t, l1.UniqueID, l2.UniqueID, "identical items must stay separate lines")
	assert.True(t, c.Total().Equal(decimal.RequireFromString("16.00")), "total: %s", c.Total())

	lines := c.Lines()
	assert.Equal(t, "Soft sauce", lines[0].Details)
	assert.Equal(t, "Alex", lines[0].ItemOwner)
	assert.Equal(t, "extra salt", lines[2].Details)
	assert.Equal(t, "Sam", lines[2].ItemOwner)
}

func TestCartRemove(t *testing.T) {
	c := New()
	l1, _ := c.Add(kebab(), Selection{}, "")
	_, _ = c.Add(fries(), Selection{}, "")

	assert.True(t, c.Remove(l1.UniqueID))
	assert.False(t, c.Remove(l1.UniqueID))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Total().Equal(decimal.RequireFromString("3.00")))
}

func TestCartLinesIsCopy(t *testing.T) {
	c := New()
	_, _ = c.Add(fries(), Selection{}, "")

	lines := c.Lines()
	lines[0].Name = "mutated"

	assert.Equal(t, "Fries", c.Lines()[0].Name)
}

func TestCartAdd_Rejections(t *testing.T) {
	c := New()

	_, err := c.Add(kebab(), Selection{Ingredients: []string{"Pineapple"}}, "")
	assert.ErrorIs(t, err, ErrUnknownIngredient)

	_, err = c.Add(kebab(), Selection{Ingredients: []string{"Onions", "Lettuce", "Onions"}}, "")
	assert.ErrorIs(t, err, ErrDuplicateIngredient)
	assert.EqualError(t, err, `duplicate ingredient: "Onions"`)

	_, err = c.Add(fries(), Selection{Note: strings.Repeat("x", MaxNoteLength+1)}, "")
	assert.ErrorIs(t, err, ErrNoteTooLong)

	_, err = c.Add(fries(), Selection{}, strings.Repeat("y", MaxOwnerLength+1))
	assert.ErrorIs(t, err, ErrOwnerTooLong)

	_, err = c.Add(Item{Name: "Mystery", OptionsType: "pizza"}, Selection{}, "")
	assert.ErrorIs(t, err, ErrUnknownOptionsType)

	_, err = c.Add(Item{Name: "Refund", Price: decimal.NewFromInt(-1), OptionsType: enum.OptionsTypeText}, Selection{}, "")
	assert.ErrorIs(t, err, ErrNegativePrice)

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}
