package campus_test

import (
	"testing"

	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	all := campus.All()
	assert.Len(t, all, campus.Count)

	seen := make(map[campus.ID]bool)
	for _, id := range all {
		assert.True(t, id.Valid(), string(id))
		assert.NotEmpty(t, id.Name(), string(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg, input string
		id         campus.ID
		hasErr     bool
	}{
		{"exact", "MTY", campus.MTY, false},
		{"lowercase", "gdl", campus.GDL, false},
		{"padded", " qro ", campus.QRO, false},
		{"unknown", "XXX", "", true},
		{"empty", "", "", true},
	}

	for _, v := range tests {
		id, err := campus.Parse(v.input)
		if v.hasErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.id, id, v.msg)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Monterrey", campus.MTY.Name())
	assert.Equal(t, "Ciudad Juárez", campus.CDJ.Name())
	// Unregistered IDs fall back to the code itself.
	assert.Equal(t, "ZZZ", campus.ID("ZZZ").Name())
}

func TestCategoryFromScore(t *testing.T) {
	tests := []struct {
		score int
		cat   campus.Category
	}{
		{0, campus.Deficiente},
		{75, campus.Deficiente},
		{76, campus.Regular},
		{100, campus.Regular},
		{101, campus.Satisfactorio},
		{120, campus.Satisfactorio},
		{121, campus.Sobresaliente},
		{140, campus.Sobresaliente},
		{141, campus.Excepcional},
		{200, campus.Excepcional},
	}

	for _, v := range tests {
		assert.Equal(t, v.cat, campus.CategoryFromScore(v.score), "score %d", v.score)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := campus.ParseCategory("Sobresaliente")
	require.NoError(t, err)
	assert.Equal(t, campus.Sobresaliente, c)

	_, err = campus.ParseCategory("stellar")
	assert.Error(t, err)
}
