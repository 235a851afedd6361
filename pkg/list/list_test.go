/*
 * Copyright (C) 2020-2022, IrineSistiana
 *
 * This file is part of slist.
 *
 * slist is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * slist is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package list

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkChain verifies the structural invariants of l.
func checkChain[V comparable](t *testing.T, l *List[V]) {
	t.Helper()
	if l.Len() == 0 {
		require.Nil(t, l.First())
		require.Nil(t, l.Last())
		require.True(t, l.IsEmpty())
		return
	}

	n, visited := l.First(), 0
	for ; n.HasNext(); n = n.Next() {
		visited++
		require.LessOrEqual(t, visited, l.Len(), "chain longer than length")
	}
	visited++
	require.Equal(t, l.Len(), visited)
	require.Same(t, l.Last(), n)
	require.Nil(t, l.Last().Next())
}

func Test_List_New(t *testing.T) {
	checkChain(t, New[int]())
	checkChain(t, New[string]())
	checkChain(t, New[bool]())
}

func Test_List_From(t *testing.T) {
	for _, vs := range [][]int{nil, {0}, {1, 3}, {1, 2, 1, 3, 2}, {5, 4, 3, 2, 1, 0}} {
		l := From(vs...)
		checkChain(t, l)
		require.Equal(t, len(vs), l.Len())
		if len(vs) == 0 {
			continue
		}
		assert.Equal(t, vs[0], l.First().Value)
		assert.Equal(t, vs[len(vs)-1], l.Last().Value)
		assert.Equal(t, vs, l.Values())
	}
}

func Test_List_AddFirst(t *testing.T) {
	l := New[int]()
	n0 := l.AddFirst(0)
	assert.Same(t, n0, l.First())
	assert.Same(t, n0, l.Last())
	assert.Equal(t, 1, l.Len())

	l.AddFirst(1)
	assert.Equal(t, 1, l.First().Value)
	assert.Equal(t, 0, l.First().Next().Value)
	assert.Same(t, n0, l.Last())
	assert.Equal(t, 2, l.Len())
	checkChain(t, l)
}

func Test_List_AddLast(t *testing.T) {
	l := New[int]()
	l.AddLast(0)
	assert.Equal(t, 0, l.First().Value)
	assert.Equal(t, 1, l.Len())

	n1 := l.AddLast(1)
	assert.Equal(t, 0, l.First().Value)
	assert.Equal(t, 1, l.First().Next().Value)
	assert.Same(t, n1, l.Last())
	assert.Equal(t, 2, l.Len())
	checkChain(t, l)
}

func Test_List_AddFirst_RemoveFirst_roundTrip(t *testing.T) {
	l := New[string]()
	l.AddFirst("a")
	require.NoError(t, l.RemoveFirst())
	checkChain(t, l)
}

func Test_List_AddBefore(t *testing.T) {
	tests := []struct {
		name   string
		init   []int
		target func(l *List[int]) *Node[int]
		v      int
		want   []int
	}{
		{"first", []int{2, 3}, func(l *List[int]) *Node[int] { return l.First() }, 1, []int{1, 2, 3}},
		{"middle", []int{1, 2, 1}, func(l *List[int]) *Node[int] { return l.FindLast(1) }, 3, []int{1, 2, 3, 1}},
		{"last", []int{1, 3}, func(l *List[int]) *Node[int] { return l.Find(3) }, 2, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := From(tt.init...)
			target := tt.target(l)
			n, err := l.AddBefore(target, tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.v, n.Value)
			assert.Same(t, target, n.Next())
			assert.Equal(t, tt.want, l.Values())
			checkChain(t, l)
		})
	}
}

func Test_List_AddAfter(t *testing.T) {
	tests := []struct {
		name   string
		init   []int
		target func(l *List[int]) *Node[int]
		v      int
		want   []int
	}{
		{"first", []int{1, 3}, func(l *List[int]) *Node[int] { return l.Find(1) }, 2, []int{1, 2, 3}},
		{"middle", []int{1, 2, 1}, func(l *List[int]) *Node[int] { return l.Find(2) }, 3, []int{1, 2, 3, 1}},
		{"last", []int{1, 2}, func(l *List[int]) *Node[int] { return l.Find(2) }, 3, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := From(tt.init...)
			target := tt.target(l)
			n, err := l.AddAfter(target, tt.v)
			require.NoError(t, err)
			assert.Same(t, n, target.Next())
			assert.Equal(t, tt.want, l.Values())
			checkChain(t, l)
		})
	}
}

func Test_List_AddBefore_AddAfter_errors(t *testing.T) {
	type addFunc func(l *List[int], target *Node[int], v int) (*Node[int], error)
	funcs := map[string]addFunc{
		"AddBefore": (*List[int]).AddBefore,
		"AddAfter":  (*List[int]).AddAfter,
	}

	for name, add := range funcs {
		t.Run(name, func(t *testing.T) {
			// nil target, on both empty and non-empty lists
			_, err := add(New[int](), nil, 22)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			_, err = add(From(1, 2), nil, 22)
			assert.ErrorIs(t, err, ErrInvalidArgument)

			// stale node from a cleared list
			l := From(0)
			stale := l.First()
			l.Clear()
			_, err = add(l, stale, 22)
			assert.ErrorIs(t, err, ErrInvalidState)
			checkChain(t, l)

			// node of another list
			l0 := From(1, 2, 3)
			l1 := From(0)
			_, err = add(l0, l1.First(), 22)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []int{1, 2, 3}, l0.Values())
			assert.Equal(t, []int{0}, l1.Values())

			// node removed from the same list
			l = From(1, 2, 3)
			removed := l.Find(2)
			require.NoError(t, l.RemoveNode(removed))
			_, err = add(l, removed, 22)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []int{1, 3}, l.Values())
			checkChain(t, l)
		})
	}
}

func Test_List_RemoveFirst(t *testing.T) {
	l := From(0)
	require.NoError(t, l.RemoveFirst())
	checkChain(t, l)

	l = From(1, 2, 3)
	first := l.First()
	require.NoError(t, l.RemoveFirst())
	assert.Equal(t, []int{2, 3}, l.Values())
	assert.Nil(t, first.Next())
	require.NoError(t, l.RemoveFirst())
	assert.Equal(t, []int{3}, l.Values())
	assert.Same(t, l.First(), l.Last())
	assert.Nil(t, l.Last().Next())
	checkChain(t, l)

	assert.ErrorIs(t, New[int]().RemoveFirst(), ErrInvalidState)
}

func Test_List_RemoveLast(t *testing.T) {
	l := From(0)
	require.NoError(t, l.RemoveLast())
	checkChain(t, l)

	l = From(1, 2, 3)
	require.NoError(t, l.RemoveLast())
	assert.Equal(t, 1, l.First().Value)
	assert.Equal(t, 2, l.Last().Value)
	assert.Nil(t, l.Last().Next())
	require.NoError(t, l.RemoveFirst())
	assert.Same(t, l.First(), l.Last())
	checkChain(t, l)

	assert.ErrorIs(t, New[int]().RemoveLast(), ErrInvalidState)
}

func Test_List_Remove(t *testing.T) {
	l := From(1, 2, 3, 4)
	require.NoError(t, l.Remove(1))
	require.NoError(t, l.Remove(4))
	require.NoError(t, l.Remove(3))
	assert.Equal(t, []int{2}, l.Values())
	checkChain(t, l)
	require.NoError(t, l.Remove(2))
	checkChain(t, l)

	assert.ErrorIs(t, l.Remove(2), ErrInvalidState)
	assert.ErrorIs(t, From(1, 2).Remove(5), ErrInvalidArgument)
}

func Test_List_Remove_oldestDuplicate(t *testing.T) {
	// positional order [1(new) 2 1(old)]
	l := New[int]()
	oldest := l.AddLast(1)
	l.AddFirst(2)
	newest := l.AddFirst(1)
	require.Less(t, oldest.Seq(), newest.Seq())

	require.NoError(t, l.Remove(1))
	assert.Equal(t, []int{1, 2}, l.Values())
	assert.Same(t, newest, l.First())
	assert.Equal(t, 2, l.Last().Value)
	checkChain(t, l)

	// a spliced duplicate is newer than the one already there
	l = From(5, 7)
	mid, err := l.AddAfter(l.First(), 7)
	require.NoError(t, err)
	require.NoError(t, l.Remove(7))
	assert.Equal(t, []int{5, 7}, l.Values())
	assert.Same(t, mid, l.Last())
	checkChain(t, l)
}

func Test_List_RemoveNode(t *testing.T) {
	l := From(1, 2, 1, 3, 2)
	require.NoError(t, l.RemoveNode(l.FindLast(1)))
	assert.Equal(t, []int{1, 2, 3, 2}, l.Values())
	require.NoError(t, l.RemoveNode(l.First()))
	assert.Equal(t, []int{2, 3, 2}, l.Values())
	require.NoError(t, l.RemoveNode(l.Last()))
	assert.Equal(t, []int{2, 3}, l.Values())
	checkChain(t, l)

	other := From(2, 3)
	assert.ErrorIs(t, l.RemoveNode(other.First()), ErrInvalidArgument)
	assert.ErrorIs(t, l.RemoveNode(nil), ErrInvalidArgument)
	assert.Equal(t, []int{2, 3}, l.Values())

	assert.ErrorIs(t, New[int]().RemoveNode(nil), ErrInvalidState)
}

func Test_List_Find(t *testing.T) {
	l := From(1, 2, 1, 3, 2)
	assert.Same(t, l.First(), l.Find(1))
	assert.Same(t, l.First().Next(), l.Find(2))
	assert.Same(t, l.First().Next().Next(), l.FindLast(1))
	assert.Same(t, l.Last(), l.FindLast(2))
	assert.Same(t, l.Find(3), l.FindLast(3))

	l = From(1, 2, 3)
	for _, v := range []int{-1, 0, 4, 5} {
		assert.Nil(t, l.Find(v))
		assert.Nil(t, l.FindLast(v))
	}
	assert.Nil(t, New[int]().Find(0))
	assert.Nil(t, New[int]().FindLast(0))
}

func Test_List_Contains(t *testing.T) {
	l := From(1, 2, 2, 3, 4)
	for v := -1; v <= 5; v++ {
		want := v >= 1 && v <= 4
		assert.Equal(t, want, l.Contains(v))
		assert.Equal(t, !want, l.Find(v) == nil)
	}
}

func Test_List_Clear(t *testing.T) {
	l := From(1, 2, 3)
	n := l.First()
	l.Clear()
	checkChain(t, l)
	assert.Nil(t, n.Next())
	l.Clear()
	checkChain(t, l)

	l = New[int]()
	l.Clear()
	checkChain(t, l)
}

func Test_List_Clear_longChain(t *testing.T) {
	l := New[int]()
	for i := 0; i < 1_000_000; i++ {
		l.AddLast(i)
	}
	require.Equal(t, 1_000_000, l.Len())
	l.Clear()
	checkChain(t, l)
}

func Test_List_Clone(t *testing.T) {
	l := From(1, 2)
	c := l.Clone()
	assert.NotSame(t, l.First(), c.First())
	assert.NotSame(t, l.Last(), c.Last())
	assert.Equal(t, l.Values(), c.Values())

	c.AddLast(3)
	c.First().Value = 9
	require.NoError(t, c.Remove(2))
	assert.Equal(t, []int{1, 2}, l.Values())
	assert.Equal(t, []int{9, 3}, c.Values())
	checkChain(t, l)
	checkChain(t, c)

	checkChain(t, New[int]().Clone())
}

func Test_List_CopyFrom(t *testing.T) {
	l0 := From(1, 2)
	l1 := From(3, 4)
	l0.CopyFrom(l1)
	assert.Equal(t, []int{3, 4}, l0.Values())
	assert.NotSame(t, l1.First(), l0.First())
	assert.NotSame(t, l1.Last(), l0.Last())
	checkChain(t, l0)

	first := l0.First()
	l0.CopyFrom(l0)
	assert.Same(t, first, l0.First())
	assert.Equal(t, []int{3, 4}, l0.Values())

	l0.CopyFrom(New[int]())
	checkChain(t, l0)
}

func Test_List_MoveFrom(t *testing.T) {
	src := From(1, 2, 3)
	first, last := src.First(), src.Last()

	dst := From(7)
	dst.MoveFrom(src)
	checkChain(t, src)
	checkChain(t, dst)
	assert.Same(t, first, dst.First())
	assert.Same(t, last, dst.Last())
	assert.Equal(t, []int{1, 2, 3}, dst.Values())

	// handles move with the chain
	_, err := dst.AddAfter(first, 9)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9, 2, 3}, dst.Values())

	dst.MoveFrom(dst)
	assert.Equal(t, 4, dst.Len())
}

func Test_List_String(t *testing.T) {
	assert.Equal(t, "[]", New[int]().String())
	assert.Equal(t, "[1 2 3]", From(1, 2, 3).String())
	assert.Equal(t, "[a b]", From("a", "b").String())
}

func Test_Node_Equal(t *testing.T) {
	l := From(1, 1, 2)
	a, b := l.First(), l.First().Next()
	assert.False(t, a.Equal(b), "same value, different successor")
	assert.True(t, a.Equal(a))

	other := From(2)
	c := other.AddFirst(1)
	assert.False(t, b.Equal(c), "successors are compared by identity")

	var nilNode *Node[int]
	assert.True(t, nilNode.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func Test_Node_Seq(t *testing.T) {
	l := New[int]()
	a := l.AddLast(0)
	b := l.AddFirst(0)
	c, err := l.AddAfter(b, 0)
	require.NoError(t, err)
	assert.Less(t, a.Seq(), b.Seq())
	assert.Less(t, b.Seq(), c.Seq())
}

func Test_errors(t *testing.T) {
	assert.False(t, errors.Is(errEmpty, ErrInvalidArgument))
	assert.False(t, errors.Is(errNilNode, ErrInvalidState))
	assert.True(t, errors.Is(errNodeMissing, ErrInvalidArgument))
}

func Test_List_CopyFrom_MoveFrom_nil(t *testing.T) {
	l := From(1, 2)
	n := l.First()
	l.CopyFrom(nil)
	checkChain(t, l)
	assert.Nil(t, n.Next())

	l = From(3)
	l.MoveFrom(nil)
	checkChain(t, l)

	var empty *List[int]
	l = From(4)
	l.CopyFrom(empty)
	checkChain(t, l)
}
