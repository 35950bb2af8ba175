package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DataContext", "datacontext"},
		{"data_context", "datacontext"},
		{"data-context", "datacontext"},
		{"Data Context", "datacontext"},
		{"HTTPStatus", "httpstatus"},
		{"__", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeStripped(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"UserID", "user"},
		{"user_ids", "user"},
		{"SelectedValue", "selected"},
		{"HeaderText", "header"},
		{"ID", "id"},
		{"Text", "text"},
		{"Width", "width"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStripped(tt.input))
		})
	}
}
