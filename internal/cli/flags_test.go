package cli

import (
	"testing"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    overlay.Rect
		wantErr string
	}{
		{name: "plain", value: "10,5,12,1", want: overlay.Rect{X: 10, Y: 5, W: 12, H: 1}},
		{name: "spaces allowed", value: " 0, 0 ,80, 24", want: overlay.Rect{W: 80, H: 24}},
		{name: "negative origin", value: "-3,-2,4,4", want: overlay.Rect{X: -3, Y: -2, W: 4, H: 4}},
		{name: "too few numbers", value: "1,2,3", wantErr: "needs 4 comma-separated numbers"},
		{name: "not a number", value: "1,2,wide,4", wantErr: "'wide' in --ref isn't a whole number"},
		{name: "zero width", value: "1,2,0,4", wantErr: "has no area"},
		{name: "empty", value: "", wantErr: "needs 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRect("ref", tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrOption))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    overlay.Size
		wantErr bool
	}{
		{name: "plain", value: "20,6", want: overlay.Size{W: 20, H: 6}},
		{name: "one number", value: "20", wantErr: true},
		{name: "zero height", value: "20,0", wantErr: true},
		{name: "negative", value: "-1,6", wantErr: true},
		{name: "float", value: "20.5,6", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize("content", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrOption))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOffset(t *testing.T) {
	got, err := ParseOffset("move-by", "")
	require.NoError(t, err)
	assert.Nil(t, got, "blank means no offset")

	got, err = ParseOffset("move-by", "  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOffset("move-by", "-2,1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, overlay.Offset{X: -2, Y: 1}, *got)

	_, err = ParseOffset("move-by", "1,2,3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--move-by")
}
