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

import "sync/atomic"

// nodeSeq hands out creation sequence numbers. It is shared by all
// lists of all element types in the process.
var nodeSeq atomic.Uint64

type Node[V comparable] struct {
	Value V

	next *Node[V]
	seq  uint64
}

func newNode[V comparable](v V, next *Node[V]) *Node[V] {
	return &Node[V]{
		Value: v,
		next:  next,
		seq:   nodeSeq.Add(1),
	}
}

func (n *Node[V]) Next() *Node[V] {
	return n.next
}

func (n *Node[V]) HasNext() bool {
	return n.next != nil
}

// Seq returns the creation order of n. A node created later always
// has a greater Seq.
func (n *Node[V]) Seq() uint64 {
	return n.seq
}

// Equal reports whether n and o carry the same value and point to
// the same successor node. Successors are compared by identity, not
// by content.
func (n *Node[V]) Equal(o *Node[V]) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.Value == o.Value && n.next == o.next
}

func (n *Node[V]) setNext(next *Node[V]) {
	n.next = next
}
