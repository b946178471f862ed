package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "10", want: 10},
		{name: "decimal", input: "10.50", want: 10.5},
		{name: "spaces trimmed", input: "  3 ", want: 3},
		{name: "zero allowed", input: "0", want: 0},
		{name: "missing value", input: "", wantErr: true, errMsg: "price: is required"},
		{name: "only spaces", input: "   ", wantErr: true, errMsg: "price: is required"},
		{name: "not a number", input: "ten", wantErr: true, errMsg: "price: must be a number"},
		{name: "negative", input: "-1", wantErr: true, errMsg: "price: must not be negative"},
		{name: "NaN", input: "NaN", wantErr: true, errMsg: "price: must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		product models.Product
		wantErr bool
	}{
		{
			name:    "valid product",
			product: models.Product{Name: "Hammer", Price: 10, Category: "Tools"},
		},
		{
			name:    "missing name",
			product: models.Product{Price: 10, Category: "Tools"},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "negative price",
			product: models.Product{Name: "Hammer", Price: -5, Category: "Tools"},
			wantErr: true,
			field:   "price",
		},
		{
			name:    "missing category",
			product: models.Product{Name: "Hammer", Price: 10},
			wantErr: true,
			field:   "category",
		},
		{
			name:    "name too long",
			product: models.Product{Name: strings.Repeat("a", MaxNameLen+1), Price: 1, Category: "Tools"},
			wantErr: true,
			field:   "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.product)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(models.Category{Name: "Tools", Description: "Hand tools"}))
	assert.Error(t, ValidateCategory(models.Category{Name: "Tools"}))
	assert.Error(t, ValidateCategory(models.Category{Description: "Hand tools"}))

	// длинное описание допустимо
	long := models.Category{Name: "Tools", Description: strings.Repeat("d", MaxNameLen*3)}
	assert.NoError(t, ValidateCategory(long))
}

func TestValidateBook(t *testing.T) {
	assert.NoError(t, ValidateBook(models.Book{Name: "Go", Author: "Pike", Genre: "Tech"}))
	assert.Error(t, ValidateBook(models.Book{Name: "Go", Genre: "Tech"}))
	assert.Error(t, ValidateBook(models.Book{Name: "Go", Author: "Pike"}))
}

func TestValidateChatMessage(t *testing.T) {
	assert.NoError(t, ValidateChatMessage(models.ChatMessage{Text: "hi", Sender: models.SenderUser, Timestamp: 1}))
	assert.Error(t, ValidateChatMessage(models.ChatMessage{Text: " ", Sender: models.SenderUser, Timestamp: 1}))
	assert.Error(t, ValidateChatMessage(models.ChatMessage{Text: "hi", Sender: "bot", Timestamp: 1}))
	assert.Error(t, ValidateChatMessage(models.ChatMessage{Text: "hi", Sender: models.SenderSystem}))
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit failed: %w", &Error{Field: "name", Message: "is required"})
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}
