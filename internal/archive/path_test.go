// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"38413", "38413", false},
		{"38.413", "38413", false},
		{" 36411 ", "36411", false},
		{"380", "380", false},
		{"38", "", true},
		{"38a13", "", true},
		{"3.8413", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSpecNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "38", Series("38413"))
	assert.Equal(t, "38.413", Dotted("38413"))
	assert.Equal(t, "38413-f23.zip", FileName("38413", "f23"))
	assert.Equal(t, "Specs/archive/38_series/38.413", Dir("38413"))
	assert.Equal(t, "Specs/archive/36_series/36.411/36411-f00.zip", Path("36411", "f00"))
}
