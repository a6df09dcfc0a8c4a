// SPDX-License-Identifier: MPL-2.0

package proptree

import (
	"fmt"
	"slices"
)

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindDictionary
	KindSigned
	KindUnsigned
)

type (
	// Kind is the type tag of a Tree node.
	Kind uint8

	// Tree is one PropertyTree node. The zero value is a None node.
	Tree struct {
		kind     Kind
		anyType  bool
		boolean  bool
		number   float64
		str      string
		signed   int64
		unsigned uint64
		list     []Tree
		dict     *Dictionary
	}
)

var kindNames = [...]string{
	KindNone:       "none",
	KindBool:       "bool",
	KindNumber:     "number",
	KindString:     "string",
	KindList:       "list",
	KindDictionary: "dictionary",
	KindSigned:     "signed",
	KindUnsigned:   "unsigned",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// None returns an empty node.
func None() Tree { return Tree{} }

// Bool returns a boolean node.
func Bool(v bool) Tree { return Tree{kind: KindBool, boolean: v} }

// Number returns a double-precision number node.
func Number(v float64) Tree { return Tree{kind: KindNumber, number: v} }

// String returns a string node.
func String(v string) Tree { return Tree{kind: KindString, str: v} }

// Signed returns a 64-bit signed integer node.
func Signed(v int64) Tree { return Tree{kind: KindSigned, signed: v} }

// Unsigned returns a 64-bit unsigned integer node.
func Unsigned(v uint64) Tree { return Tree{kind: KindUnsigned, unsigned: v} }

// List returns a list node holding items.
func List(items ...Tree) Tree { return Tree{kind: KindList, list: items} }

// Dict returns a dictionary node backed by d. A nil d yields an empty dictionary.
func Dict(d *Dictionary) Tree {
	if d == nil {
		d = NewDictionary()
	}
	return Tree{kind: KindDictionary, dict: d}
}

// Kind reports the node's type.
func (t Tree) Kind() Kind { return t.kind }

// AnyType reports the node's any-type flag as read from disk.
func (t Tree) AnyType() bool { return t.anyType }

func (t Tree) AsBool() (bool, bool) { return t.boolean, t.kind == KindBool }

func (t Tree) AsNumber() (float64, bool) { return t.number, t.kind == KindNumber }

func (t Tree) AsString() (string, bool) { return t.str, t.kind == KindString }

func (t Tree) AsSigned() (int64, bool) { return t.signed, t.kind == KindSigned }

func (t Tree) AsUnsigned() (uint64, bool) { return t.unsigned, t.kind == KindUnsigned }

// AsList returns the list items. The slice is shared with the node.
func (t Tree) AsList() ([]Tree, bool) {
	if t.kind != KindList {
		return nil, false
	}
	return t.list, true
}

// AsDictionary returns the dictionary. Mutations through the returned value
// are visible to every copy of the node.
func (t Tree) AsDictionary() (*Dictionary, bool) {
	if t.kind != KindDictionary {
		return nil, false
	}
	return t.dict, true
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	out := t
	switch t.kind {
	case KindList:
		out.list = make([]Tree, len(t.list))
		for i, item := range t.list {
			out.list[i] = item.Clone()
		}
	case KindDictionary:
		out.dict = t.dict.Clone()
	}
	return out
}

// Equal reports whether t and other hold the same value. The any-type flag
// is ignored.
func (t Tree) Equal(other Tree) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindNone:
		return true
	case KindBool:
		return t.boolean == other.boolean
	case KindNumber:
		return t.number == other.number
	case KindString:
		return t.str == other.str
	case KindSigned:
		return t.signed == other.signed
	case KindUnsigned:
		return t.unsigned == other.unsigned
	case KindList:
		return slices.EqualFunc(t.list, other.list, Tree.Equal)
	case KindDictionary:
		return t.dict.Equal(other.dict)
	default:
		return false
	}
}

// Interface converts t to plain Go values: nil, bool, float64, string, int64,
// uint64, []any and an insertion-ordered []KeyValue for dictionaries.
func (t Tree) Interface() any {
	switch t.kind {
	case KindBool:
		return t.boolean
	case KindNumber:
		return t.number
	case KindString:
		return t.str
	case KindSigned:
		return t.signed
	case KindUnsigned:
		return t.unsigned
	case KindList:
		out := make([]any, len(t.list))
		for i, item := range t.list {
			out[i] = item.Interface()
		}
		return out
	case KindDictionary:
		out := make([]KeyValue, 0, t.dict.Len())
		for key, value := range t.dict.All() {
			out = append(out, KeyValue{Key: key, Value: value.Interface()})
		}
		return out
	default:
		return nil
	}
}
