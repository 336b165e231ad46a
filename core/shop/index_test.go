package shop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchshop/core/catalog"
	"switchshop/core/shop"
)

func TestEncodePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "SpacesAndBrackets",
			in:   "Super Game [0100ABCDEF123456][v0].nsp",
			want: "Super%20Game%20%5B0100ABCDEF123456%5D%5Bv0%5D%2Ensp",
		},
		{
			name: "SlashesPreserved",
			in:   "sub dir/game.nsp",
			want: "sub%20dir/game%2Ensp",
		},
		{
			name: "Alphanumeric",
			in:   "abcXYZ019",
			want: "abcXYZ019",
		},
		{
			name: "Empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shop.EncodePath(tt.in))
		})
	}
}

func TestBuildIndex(t *testing.T) {
	entries := []catalog.Entry{
		{RelativePath: "Game A [0100ABCDEF123456][v0].nsp", Size: 5},
		{RelativePath: "sub/Game B.xci", Size: 9},
	}

	index := shop.BuildIndex(entries, "http://10.0.0.2:3000")

	require.Len(t, index.Files, 2)
	assert.Equal(t, "http://10.0.0.2:3000/files/Game%20A%20%5B0100ABCDEF123456%5D%5Bv0%5D%2Ensp", index.Files[0].URL)
	assert.Equal(t, uint64(5), index.Files[0].Size)
	assert.Equal(t, "http://10.0.0.2:3000/files/sub/Game%20B%2Exci", index.Files[1].URL)
	assert.Equal(t, "The index was generated successfully.", index.Success)
}

func TestBuildIndex_EmptyCatalog(t *testing.T) {
	index := shop.BuildIndex(nil, "http://localhost:3000")

	assert.NotNil(t, index.Files)
	assert.Empty(t, index.Files)
	assert.NotEmpty(t, index.Success)
}
