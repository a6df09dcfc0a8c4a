// SPDX-License-Identifier: MPL-2.0

package proptree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fmm-go/fmm/internal/binio"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

// maxPrealloc caps the capacity reserved from an untrusted element count.
const maxPrealloc = 1024

// ErrMalformed is returned when bytes do not form a valid PropertyTree.
var ErrMalformed = errors.New("malformed property tree")

type (
	// Header is the version block that precedes a PropertyTree document.
	Header struct {
		Major uint16
		Minor uint16
		Patch uint16
		Build uint16
	}

	// DecodeError locates a decoding failure inside the tree.
	DecodeError struct {
		// Path is the dotted key path to the failing node; empty for the root.
		Path string
		Err  error
	}

	decoder struct {
		r io.Reader
	}
)

func (h Header) String() string {
	return fmt.Sprintf("%d.%d.%d-%d", h.Major, h.Minor, h.Patch, h.Build)
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrMalformed, e.Err)
	}
	return fmt.Sprintf("%s at %q: %v", ErrMalformed, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// Decode reads one node from r.
func Decode(r io.Reader) (Tree, error) {
	d := decoder{r: r}
	return d.node("", 0)
}

// DecodeDocument reads a version header, the reserved flag byte and the root node.
func DecodeDocument(r io.Reader) (Header, Tree, error) {
	var h Header
	for _, field := range []*uint16{&h.Major, &h.Minor, &h.Patch, &h.Build} {
		v, err := binio.Read[uint16](r)
		if err != nil {
			return Header{}, Tree{}, &DecodeError{Err: fmt.Errorf("header: %w", err)}
		}
		*field = v
	}
	if err := binio.Skip(r, 1); err != nil {
		return Header{}, Tree{}, &DecodeError{Err: fmt.Errorf("header: %w", err)}
	}

	tree, err := Decode(r)
	if err != nil {
		return Header{}, Tree{}, err
	}
	return h, tree, nil
}

func (d *decoder) node(path string, depth int) (Tree, error) {
	if depth > maxDepth {
		return Tree{}, &DecodeError{Path: path, Err: fmt.Errorf("nesting deeper than %d", maxDepth)}
	}

	kind, err := binio.Read[uint8](d.r)
	if err != nil {
		return Tree{}, &DecodeError{Path: path, Err: err}
	}
	anyType, err := binio.Read[uint8](d.r)
	if err != nil {
		return Tree{}, &DecodeError{Path: path, Err: err}
	}

	t := Tree{kind: Kind(kind), anyType: anyType != 0}
	switch t.kind {
	case KindNone:
	case KindBool:
		var b uint8
		b, err = binio.Read[uint8](d.r)
		t.boolean = b != 0
	case KindNumber:
		t.number, err = binio.Read[float64](d.r)
	case KindString:
		t.str, err = d.string()
	case KindSigned:
		t.signed, err = binio.Read[int64](d.r)
	case KindUnsigned:
		t.unsigned, err = binio.Read[uint64](d.r)
	case KindList:
		t.list, err = d.list(path, depth)
	case KindDictionary:
		t.dict, err = d.dictionary(path, depth)
	default:
		return Tree{}, &DecodeError{Path: path, Err: fmt.Errorf("unknown node type %d", kind)}
	}
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return Tree{}, err
		}
		return Tree{}, &DecodeError{Path: path, Err: err}
	}
	return t, nil
}

func (d *decoder) string() (string, error) {
	empty, err := binio.Read[uint8](d.r)
	if err != nil {
		return "", err
	}
	if empty != 0 {
		return "", nil
	}
	n, err := binio.ReadSpaceOptimized(d.r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.CopyN(&sb, d.r, int64(n)); err != nil {
		return "", io.ErrUnexpectedEOF
	}
	return strings.ToValidUTF8(sb.String(), "\uFFFD"), nil
}

func (d *decoder) list(path string, depth int) ([]Tree, error) {
	count, err := binio.Read[uint32](d.r)
	if err != nil {
		return nil, err
	}
	items := make([]Tree, 0, min(int(count), maxPrealloc))
	for i := range count {
		// List items carry a key like dictionary entries; it is always empty.
		if _, err := d.string(); err != nil {
			return nil, err
		}
		item, err := d.node(fmt.Sprintf("%s[%d]", path, i), depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) dictionary(path string, depth int) (*Dictionary, error) {
	count, err := binio.Read[uint32](d.r)
	if err != nil {
		return nil, err
	}
	dict := NewDictionary()
	for range count {
		key, err := d.string()
		if err != nil {
			return nil, err
		}
		value, err := d.node(joinPath(path, key), depth+1)
		if err != nil {
			return nil, err
		}
		dict.Set(key, value)
	}
	return dict, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Encode writes t to w.
func Encode(w io.Writer, t Tree) error {
	bw := bufio.NewWriter(w)
	if err := encodeNode(bw, t); err != nil {
		return err
	}
	return bw.Flush()
}

// EncodeDocument writes h, a zero flag byte and the root node t.
func EncodeDocument(w io.Writer, h Header, t Tree) error {
	bw := bufio.NewWriter(w)
	for _, v := range []uint16{h.Major, h.Minor, h.Patch, h.Build} {
		if err := binio.Write(bw, v); err != nil {
			return err
		}
	}
	if err := binio.Write(bw, uint8(0)); err != nil {
		return err
	}
	if err := encodeNode(bw, t); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeNode(w *bufio.Writer, t Tree) error {
	var anyType uint8
	if t.anyType {
		anyType = 1
	}
	if err := w.WriteByte(byte(t.kind)); err != nil {
		return err
	}
	if err := w.WriteByte(anyType); err != nil {
		return err
	}

	switch t.kind {
	case KindNone:
		return nil
	case KindBool:
		var b uint8
		if t.boolean {
			b = 1
		}
		return w.WriteByte(b)
	case KindNumber:
		return binio.Write(w, t.number)
	case KindString:
		return encodeString(w, t.str)
	case KindSigned:
		return binio.Write(w, t.signed)
	case KindUnsigned:
		return binio.Write(w, t.unsigned)
	case KindList:
		if err := encodeCount(w, len(t.list)); err != nil {
			return err
		}
		for _, item := range t.list {
			if err := encodeString(w, ""); err != nil {
				return err
			}
			if err := encodeNode(w, item); err != nil {
				return err
			}
		}
		return nil
	case KindDictionary:
		if err := encodeCount(w, t.dict.Len()); err != nil {
			return err
		}
		for key, value := range t.dict.All() {
			if err := encodeString(w, key); err != nil {
				return err
			}
			if err := encodeNode(w, value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("cannot encode node of %s", t.kind)
	}
}

func encodeString(w *bufio.Writer, s string) error {
	if s == "" {
		return w.WriteByte(1)
	}
	if err := encodeLength(len(s)); err != nil {
		return err
	}
	if err := w.WriteByte(0); err != nil {
		return err
	}
	if err := binio.WriteSpaceOptimized(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func encodeCount(w *bufio.Writer, n int) error {
	if err := encodeLength(n); err != nil {
		return err
	}
	return binio.Write(w, uint32(n))
}

func encodeLength(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("length %d does not fit in 32 bits", n)
	}
	return nil
}
