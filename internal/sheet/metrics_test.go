package sheet

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekle/fontsheet/internal/fnt"
	"github.com/ekle/fontsheet/internal/render"
	"github.com/ekle/fontsheet/internal/render/rendertest"
)

func TestComputeMetricsScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	face := &rendertest.Face{Sizes: map[string]rendertest.Size{
		"A": {W: 7.2, H: 12.5},
		"B": {W: 8, H: 11},
	}}
	tokens := []Token{Renderable("A"), Renderable("B"), Placeholder(" ")}
	m := ComputeMetrics(tokens, face)
	assert.Equal(t, CellSize{W: 8, H: 13}, m.Cell)
	assert.Equal(t, []fnt.GlyphMeta{
		{Label: "A", Advance: 9},
		{Label: "B", Advance: 9},
		{Label: "space", Advance: 4},
	}, m.Glyphs)
	assert.Equal(t, []string{"A", "B"}, face.Measured, "placeholders are never measured")
}

func TestPlaceholdersDoNotInfluenceCell(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	face := &rendertest.Face{Default: rendertest.Size{W: 100, H: 100}}
	m := ComputeMetrics([]Token{NewToken("\t"), NewToken("AB"), NewToken("")}, face)
	assert.Equal(t, CellSize{}, m.Cell)
	require.Len(t, m.Glyphs, 3)
	for _, g := range m.Glyphs {
		assert.Equal(t, fnt.GlyphMeta{Label: "space", Advance: 4}, g)
	}
	assert.Empty(t, face.Measured)
}

func TestComputeMetricsKeepsDuplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	face := &rendertest.Face{Default: rendertest.Size{W: 5, H: 9}}
	m := ComputeMetrics(ParseTokens("x x x"), face)
	assert.Len(t, m.Glyphs, 3)
	assert.Equal(t, CellSize{W: 5, H: 9}, m.Cell)
	assert.Equal(t, 6, m.Glyphs[2].Advance)
}

func TestCellGrowsWithPointSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	f, err := render.Resolve("GoRegular", "")
	require.NoError(t, err)
	tokens := ParseTokens("A g W i | @")
	var last CellSize
	for _, size := range []float64{6, 8, 9, 12, 16, 24, 36, 48} {
		face, err := render.NewFace(f.SFNT, f.Name, size, 72)
		require.NoError(t, err)
		cell := ComputeMetrics(tokens, face).Cell
		assert.GreaterOrEqual(t, cell.W, last.W, "width at %gpt", size)
		assert.GreaterOrEqual(t, cell.H, last.H, "height at %gpt", size)
		last = cell
	}
	assert.Greater(t, last.W, 0)
}
