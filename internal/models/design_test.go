package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDesign_BlocksInRenderOrder(t *testing.T) {
	t.Parallel()

	d := Design{Blocks: []Block{
		{ID: "c", Type: BlockTypeFooter, Order: 5},
		{ID: "a", Type: BlockTypeHero, Order: 0},
		{ID: "b1", Type: BlockTypeMessage, Order: 2},
		{ID: "b2", Type: BlockTypeVenue, Order: 2},
	}}

	ordered := d.BlocksInRenderOrder()

	assert.Equal(t, []string{"a", "b1", "b2", "c"},
		[]string{ordered[0].ID, ordered[1].ID, ordered[2].ID, ordered[3].ID},
		"сортировка по Order должна быть стабильной при равных значениях")
	// исходный массив не трогаем
	assert.Equal(t, "c", d.Blocks[0].ID)
}

func TestDesign_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		design  Design
		wantErr string
	}{
		{
			name:   "empty design is valid",
			design: NewDesign(),
		},
		{
			name: "duplicate block ids rejected",
			design: Design{Blocks: []Block{
				{ID: "x", Type: BlockTypeHero},
				{ID: "x", Type: BlockTypeFooter},
			}},
			wantErr: "duplicate id",
		},
		{
			name: "unknown block type rejected",
			design: Design{Blocks: []Block{
				{ID: "x", Type: BlockType("carousel")},
			}},
			wantErr: "unknown type",
		},
		{
			name: "missing block id rejected",
			design: Design{Blocks: []Block{
				{Type: BlockTypeHero},
			}},
			wantErr: "id is required",
		},
		{
			name: "youtube block requires videoUrl",
			design: Design{Blocks: []Block{
				{ID: "y", Type: BlockTypeYoutube, Content: datatypes.JSONMap{}},
			}},
			wantErr: `"videoUrl" is required`,
		},
		{
			name: "youtube block with videoUrl passes",
			design: Design{Blocks: []Block{
				{ID: "y", Type: BlockTypeYoutube, Content: datatypes.JSONMap{"videoUrl": "https://youtu.be/x"}},
			}},
		},
		{
			name: "hero accepts arbitrary content",
			design: Design{Blocks: []Block{
				{ID: "h", Type: BlockTypeHero, Content: datatypes.JSONMap{"anything": true}},
			}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.design.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBlockContent_RequiredKeys(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateBlockContent(BlockTypeGallery, datatypes.JSONMap{}))
	assert.NoError(t, ValidateBlockContent(BlockTypeGallery, datatypes.JSONMap{"images": []any{}}))
	assert.Error(t, ValidateBlockContent(BlockTypePDF, nil))
	assert.NoError(t, ValidateBlockContent(BlockTypeDivider, nil))
}

func TestDefaultTheme_Palette(t *testing.T) {
	t.Parallel()

	th := DefaultTheme()
	assert.Equal(t, "#6366f1", th.Colors.Primary)
	assert.Equal(t, "Playfair Display", th.Fonts.Heading)
	assert.Equal(t, "0.75rem", th.BorderRadius)
}

func TestDefaultBlockSettings(t *testing.T) {
	t.Parallel()

	s := DefaultBlockSettings()
	assert.Equal(t, "auto", s.Height)
	assert.Equal(t, "4rem", s.Padding)
	assert.Equal(t, "fade-up", s.Animation)
	assert.InDelta(t, 0.3, s.OverlayOpacity, 1e-9)
}
