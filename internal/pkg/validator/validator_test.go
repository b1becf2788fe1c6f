package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#ff0000", "#ff0000", true},
		{"#FF0000", "#ff0000", true},
		{" #00ff00 ", "#00ff00", true},
		{"#0f0", "#00ff00", true},
		{"red", "", false},
		{"", "", false},
		{"#ff00001", "", false},
		{"#gg0000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_CustomTags(t *testing.T) {
	type meta struct {
		Name  string `validate:"notblank"`
		Color string `validate:"mapcolor"`
	}

	assert.NoError(t, Validate(&meta{Name: "A", Color: "#ff0000"}))
	assert.Error(t, Validate(&meta{Name: "   ", Color: "#ff0000"}))
	assert.Error(t, Validate(&meta{Name: "A", Color: "blue"}))
}
