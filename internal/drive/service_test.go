package drive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"exports", "sales", "sku.csv"}, splitPath("/exports//sales/ sku.csv "))
	assert.Nil(t, splitPath("/"))
}

func TestEscapeQuery(t *testing.T) {
	assert.Equal(t, `O\'Brien\\sales`, escapeQuery(`O'Brien\sales`))
}

func TestNewService_RequiresCredentials(t *testing.T) {
	_, err := NewService(context.Background(), "  ")
	assert.Error(t, err)

	_, err = NewService(context.Background(), "{not json")
	assert.Error(t, err)
}
