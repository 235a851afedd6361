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
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

var (
	errEmpty       = fmt.Errorf("%w: list is empty", ErrInvalidState)
	errNilNode     = fmt.Errorf("%w: node is nil", ErrInvalidArgument)
	errNodeMissing = fmt.Errorf("%w: list does not contain the node", ErrInvalidArgument)
)

// List is a singly linked list. It is not safe for concurrent use.
//
// Nodes returned by First, Last, Find and FindLast are only valid until
// the next mutation of the list.
type List[V comparable] struct {
	first, last *Node[V]
	length      int
}

func New[V comparable]() *List[V] {
	return &List[V]{}
}

// From builds a list holding values in the given order.
func From[V comparable](values ...V) *List[V] {
	l := New[V]()
	for _, v := range values {
		l.AddLast(v)
	}
	return l
}

func (l *List[V]) First() *Node[V] {
	return l.first
}

func (l *List[V]) Last() *Node[V] {
	return l.last
}

func (l *List[V]) Len() int {
	return l.length
}

func (l *List[V]) IsEmpty() bool {
	return l.length == 0
}

func (l *List[V]) AddFirst(v V) *Node[V] {
	n := newNode(v, l.first)
	l.first = n
	if l.last == nil {
		l.last = n
	}
	l.length++
	return n
}

func (l *List[V]) AddLast(v V) *Node[V] {
	n := newNode[V](v, nil)
	if l.last == nil {
		l.first = n
	} else {
		l.last.setNext(n)
	}
	l.last = n
	l.length++
	return n
}

// AddBefore inserts v in front of target. target must be a node of l.
func (l *List[V]) AddBefore(target *Node[V], v V) (*Node[V], error) {
	if target == nil {
		return nil, errNilNode
	}
	if l.IsEmpty() {
		return nil, errEmpty
	}

	if target == l.first {
		return l.AddFirst(v), nil
	}

	prev := l.prevOf(target)
	if prev == nil {
		return nil, errNodeMissing
	}

	n := newNode(v, target)
	prev.setNext(n)
	l.length++
	return n, nil
}

// AddAfter inserts v behind target. target must be a node of l.
func (l *List[V]) AddAfter(target *Node[V], v V) (*Node[V], error) {
	if target == nil {
		return nil, errNilNode
	}
	if l.IsEmpty() {
		return nil, errEmpty
	}

	if target == l.last {
		return l.AddLast(v), nil
	}

	if !l.owns(target) {
		return nil, errNodeMissing
	}

	n := newNode(v, target.next)
	target.setNext(n)
	l.length++
	return n, nil
}

func (l *List[V]) RemoveFirst() error {
	if l.IsEmpty() {
		return errEmpty
	}
	if l.length == 1 {
		l.Clear()
		return nil
	}

	n := l.first
	l.first = n.next
	n.setNext(nil)
	l.length--
	return nil
}

// RemoveLast walks the whole chain to find the new tail.
func (l *List[V]) RemoveLast() error {
	if l.IsEmpty() {
		return errEmpty
	}
	if l.length == 1 {
		l.Clear()
		return nil
	}

	prev := l.prevOf(l.last)
	prev.setNext(nil)
	l.last = prev
	l.length--
	return nil
}

// Remove removes one node carrying v. If several nodes carry v, the
// one created first (smallest Seq) is removed, regardless of its
// position in the list.
func (l *List[V]) Remove(v V) error {
	if l.IsEmpty() {
		return errEmpty
	}

	var victim, victimPrev, prev *Node[V]
	for n := l.first; n != nil; prev, n = n, n.next {
		if n.Value != v {
			continue
		}
		if victim == nil || n.seq < victim.seq {
			victim, victimPrev = n, prev
		}
	}
	if victim == nil {
		return fmt.Errorf("%w: list does not contain %v", ErrInvalidArgument, v)
	}

	l.unlink(victimPrev, victim)
	return nil
}

// RemoveNode removes n by identity.
func (l *List[V]) RemoveNode(n *Node[V]) error {
	if l.IsEmpty() {
		return errEmpty
	}
	if n == nil {
		return errNilNode
	}

	switch n {
	case l.first:
		return l.RemoveFirst()
	case l.last:
		return l.RemoveLast()
	}

	prev := l.prevOf(n)
	if prev == nil {
		return errNodeMissing
	}
	l.unlink(prev, n)
	return nil
}

func (l *List[V]) Find(v V) *Node[V] {
	for n := l.first; n != nil; n = n.next {
		if n.Value == v {
			return n
		}
	}
	return nil
}

func (l *List[V]) FindLast(v V) *Node[V] {
	var found *Node[V]
	for n := l.first; n != nil; n = n.next {
		if n.Value == v {
			found = n
		}
	}
	return found
}

func (l *List[V]) Contains(v V) bool {
	return l.Find(v) != nil
}

// Clear detaches every node. It is a no-op on an empty list.
func (l *List[V]) Clear() {
	n := l.first
	for n != nil {
		next := n.next
		n.setNext(nil)
		n = next
	}
	l.first, l.last = nil, nil
	l.length = 0
}

// Clone returns a deep copy of l. No node is shared between l and the copy.
func (l *List[V]) Clone() *List[V] {
	c := New[V]()
	c.CopyFrom(l)
	return c
}

// CopyFrom replaces the content of l with a deep copy of src.
// A nil src is an empty list.
func (l *List[V]) CopyFrom(src *List[V]) {
	if src == l {
		return
	}
	l.Clear()
	if src == nil {
		return
	}
	for n := src.first; n != nil; n = n.next {
		l.AddLast(n.Value)
	}
}

// MoveFrom hands the chain of src over to l. src is left empty.
// Nodes keep their identity, so handles obtained from src stay valid
// for l. A nil src is an empty list.
func (l *List[V]) MoveFrom(src *List[V]) {
	if src == l {
		return
	}
	l.Clear()
	if src == nil {
		return
	}
	l.first, l.last, l.length = src.first, src.last, src.length
	src.first, src.last, src.length = nil, nil, 0
}

func (l *List[V]) Values() []V {
	vs := make([]V, 0, l.length)
	for n := l.first; n != nil; n = n.next {
		vs = append(vs, n.Value)
	}
	return vs
}

func (l *List[V]) String() string {
	sb := new(strings.Builder)
	sb.WriteByte('[')
	for n := l.first; n != nil; n = n.next {
		if n != l.first {
			sb.WriteByte(' ')
		}
		fmt.Fprint(sb, n.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// prevOf returns the node whose successor is n, or nil.
func (l *List[V]) prevOf(n *Node[V]) *Node[V] {
	for p := l.first; p != nil; p = p.next {
		if p.next == n {
			return p
		}
	}
	return nil
}

func (l *List[V]) owns(n *Node[V]) bool {
	for p := l.first; p != nil; p = p.next {
		if p == n {
			return true
		}
	}
	return false
}

// unlink removes n, whose predecessor is prev (nil if n is first).
func (l *List[V]) unlink(prev, n *Node[V]) {
	if prev == nil {
		l.first = n.next
	} else {
		prev.setNext(n.next)
	}
	if n == l.last {
		l.last = prev
	}
	n.setNext(nil)
	l.length--
}
