package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"Int64", int64(1042), 1042},
		{"Int", 7, 7},
		{"Uint64", uint64(99), 99},
		{"Float64", float64(12.0), 12},
		{"String", "250", 250},
		{"ByteSlice", []byte("300"), 300},
		{"Garbage", "not a number", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestLastDotSegment(t *testing.T) {
	assert.Equal(t, "customers", LastDotSegment("staging.crm.customers"))
	assert.Equal(t, "orders", LastDotSegment("orders"))
	assert.Equal(t, "", LastDotSegment("trailing."))
}
