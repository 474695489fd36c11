package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductInStock(t *testing.T) {
	tests := []struct {
		name  string
		stock int64
		want  bool
	}{
		{"zero stock", 0, false},
		{"single unit", 1, true},
		{"many units", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("Widget", "", 9900, tt.stock)
			assert.Equal(t, tt.want, p.InStock())
		})
	}
}
