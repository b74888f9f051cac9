package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/minic/lang/types"
)

func TestArithmeticSizes(t *testing.T) {
	cases := []struct {
		name string
		ty   *types.Type
		size int
	}{
		{"char", types.TypeChar, 1},
		{"short", types.TypeShort, 2},
		{"int", types.TypeInt, 4},
		{"long", types.TypeLong, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.size, tc.ty.Size)
			assert.Equal(t, tc.size, tc.ty.Align)
		})
	}
}

func TestPointerAndArray(t *testing.T) {
	p := types.PointerTo(types.TypeInt)
	assert.Equal(t, 8, p.Size)
	assert.Equal(t, 8, p.Align)
	assert.True(t, types.IsPointerLike(p))

	a := types.ArrayOf(types.TypeInt, 3)
	assert.Equal(t, 12, a.Size)
	assert.Equal(t, 4, a.Align)
	assert.True(t, types.IsPointerLike(a))
	assert.Same(t, types.TypeInt, a.Base)
}

func TestCopyTypeIsIndependent(t *testing.T) {
	orig := types.PointerTo(types.TypeInt)
	cp := types.Copy(orig)
	cp.Base = types.TypeChar
	assert.Same(t, types.TypeInt, orig.Base)
	assert.Same(t, types.TypeChar, cp.Base)
}

func TestStructLayout(t *testing.T) {
	// struct T { char a; int b; } — per spec.md §8 invariant 6.
	members := []*types.Member{
		{Name: "a", Type: types.TypeChar},
		{Name: "b", Type: types.TypeInt},
	}
	st := types.NewStruct(members, 0, 0)
	require.Len(t, st.Members, 2)

	// The layout routine itself lives unexported in lang/parser (see its
	// TestParseStructMemberLayout); here the offsets are computed with the
	// same rule, the running size aligned up to each member's alignment.
	a, b := members[0], members[1]
	a.Offset = types.AlignUp(0, a.Type.Align)
	b.Offset = types.AlignUp(a.Offset+a.Type.Size, b.Type.Align) // 1 aligned up to int's 4
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 4, b.Offset)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, types.AlignUp(0, 8))
	assert.Equal(t, 8, types.AlignUp(1, 8))
	assert.Equal(t, 16, types.AlignUp(9, 8))
	assert.Equal(t, 4, types.AlignUp(4, 4))
}

func TestFindMember(t *testing.T) {
	members := []*types.Member{
		{Name: "a", Type: types.TypeChar, Offset: 0},
		{Name: "b", Type: types.TypeInt, Offset: 4},
	}
	st := types.NewStruct(members, 8, 4)
	assert.Same(t, members[1], types.FindMember(st, "b"))
	assert.Nil(t, types.FindMember(st, "missing"))
}
