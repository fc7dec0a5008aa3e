package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mamba-kebabs/ordering/internal/auth"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMenuFile(t *testing.T) {
	data := []byte(`
items:
  - name: Mamba Kebab
    price: "6.50"
    category: Kebabs
    options_type: kebab
  - name: " Fries "
    price: "3"
    category: Sides
`)
	items, err := LoadMenuFile(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Mamba Kebab", items[0].Name)
	assert.Equal(t, "6.50", money.Format(items[0].Price))
	assert.Equal(t, database.MenuOptionsTypeKebab, items[0].OptionsType)

	assert.Equal(t, "Fries", items[1].Name)
	assert.Equal(t, "3.00", money.Format(items[1].Price))
	assert.Equal(t, database.MenuOptionsTypeText, items[1].OptionsType, "options_type defaults to text")
}

func TestLoadMenuFile_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "items: []", "no items"},
		{"bad yaml", "items: [", "parse menu file"},
		{"missing name", "items:\n  - price: \"1\"", "name is required"},
		{"duplicate", "items:\n  - {name: A, price: \"1\"}\n  - {name: A, price: \"2\"}", "duplicate name"},
		{"bad price", "items:\n  - {name: A, price: cheap}", "invalid price"},
		{"negative", "items:\n  - {name: A, price: \"-1\"}", "price must be >= 0"},
		{"options", "items:\n  - {name: A, price: \"1\", options_type: pizza}", "options_type must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMenuFile([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHashPassword(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("kitchen-secret\n"))
	cmd.SetArgs([]string{"hash-password"})

	require.NoError(t, cmd.Execute())

	s, err := auth.NewSharedSecretFromHash(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.True(t, s.Verify("kitchen-secret"))
	assert.False(t, s.Verify("kitchen-secret\n"))
}

func TestHashPassword_Empty(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("\n"))
	cmd.SetArgs([]string{"hash-password"})

	assert.ErrorIs(t, cmd.Execute(), auth.ErrEmptySecret)
}

func TestDatabaseURLPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	assert.Equal(t, "postgres://flag", (&RootOptions{DatabaseURL: "postgres://flag"}).databaseURL())
	assert.Equal(t, "postgres://env", (&RootOptions{}).databaseURL())
}
