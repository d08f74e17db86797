package tape_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sym string

func (s sym) String() string { return string(s) }

func cells(text string) []domain.Cell[sym] {
	out := make([]domain.Cell[sym], 0, len(text))
	for _, r := range text {
		if r == '_' {
			out = append(out, domain.Blank[sym]())
			continue
		}
		out = append(out, domain.Mark(sym(string(r))))
	}
	return out
}

func TestNew_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		cells   []domain.Cell[sym]
		head    int
		wantErr bool
	}{
		{"first cell", cells("abc"), 0, false},
		{"last cell", cells("abc"), 2, false},
		{"negative", cells("abc"), -1, true},
		{"past end", cells("abc"), 3, true},
		{"empty tape", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := tape.New(tt.cells, tt.head)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrHeadOutOfBounds)
				assert.Nil(t, tp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.head, tp.Head())
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := cells("ab")
	tp, err := tape.New(in, 0)
	require.NoError(t, err)

	in[0] = domain.Mark(sym("z"))
	assert.Equal(t, "ab", tp.Render())
}

func TestReadWrite(t *testing.T) {
	tp, err := tape.New(cells("abc"), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.Mark(sym("b")), tp.Read())
	tp.Write(domain.Blank[sym]())
	assert.True(t, tp.Read().IsBlank())
	assert.Equal(t, "a c", tp.Render())
	assert.Equal(t, "a_c", tp.RenderWith("_"))
}

func TestMove_LeftAtZeroPrependsBlank(t *testing.T) {
	tp, err := tape.New(cells("ab"), 0)
	require.NoError(t, err)

	grew := tp.Move(domain.Left)

	assert.True(t, grew)
	assert.Equal(t, 3, tp.Len())
	assert.Equal(t, 0, tp.Head())
	assert.True(t, tp.Read().IsBlank())
	assert.Equal(t, "_ab", tp.RenderWith("_"))
}

func TestMove_RightAtEndAppendsBlank(t *testing.T) {
	tp, err := tape.New(cells("ab"), 1)
	require.NoError(t, err)

	grew := tp.Move(domain.Right)

	assert.True(t, grew)
	assert.Equal(t, 3, tp.Len())
	assert.Equal(t, 2, tp.Head())
	assert.True(t, tp.Read().IsBlank())
	assert.Equal(t, "ab_", tp.RenderWith("_"))
}

func TestMove_InteriorNeverGrows(t *testing.T) {
	tp, err := tape.New(cells("abcd"), 1)
	require.NoError(t, err)

	steps := []struct {
		dir  domain.Direction
		head int
		read string
	}{
		{domain.Right, 2, "c"},
		{domain.Stay, 2, "c"},
		{domain.Left, 1, "b"},
		{domain.Left, 0, "a"},
		{domain.Right, 1, "b"},
	}
	for _, s := range steps {
		grew := tp.Move(s.dir)
		assert.False(t, grew)
		assert.Equal(t, 4, tp.Len())
		assert.Equal(t, s.head, tp.Head())
		assert.Equal(t, s.read, tp.Read().String())
	}
}

func TestMove_HeadAlwaysValid(t *testing.T) {
	tp, err := tape.New(cells("a"), 0)
	require.NoError(t, err)

	moves := []domain.Direction{
		domain.Left, domain.Left, domain.Right, domain.Right, domain.Right,
		domain.Right, domain.Stay, domain.Left, domain.Left, domain.Left, domain.Left, domain.Left,
	}
	for _, d := range moves {
		tp.Move(d)
		assert.GreaterOrEqual(t, tp.Head(), 0)
		assert.Less(t, tp.Head(), tp.Len())
		assert.Len(t, tp.Cells(), tp.Len())
	}
	assert.Equal(t, "___a__", tp.RenderWith("_"))
}

func TestClone_IsIndependent(t *testing.T) {
	tp, err := tape.New(cells("ab"), 1)
	require.NoError(t, err)

	cp := tp.Clone()
	cp.Write(domain.Mark(sym("z")))
	cp.Move(domain.Right)

	assert.Equal(t, "ab", tp.Render())
	assert.Equal(t, 1, tp.Head())
	assert.Equal(t, "az ", cp.Render())
	assert.Equal(t, 2, cp.Head())
}
