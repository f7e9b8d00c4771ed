// Package streamtree is the optional higher-level converter mentioned in
// spec.md §6: it drains a streamjson.Parser's event stream and assembles
// a general tagged value tree, for parity testing against third-party
// JSON libraries. It is deliberately kept out of the core parser package
// (streamjson) so the automaton itself never pays for tree allocation.
//
// The tagged value surface here is a direct descendant of the teacher
// library's Value/Type API (_examples/mcvoid-json/json.go), rebuilt to
// consume events instead of being assembled inline by the automaton.
package streamtree

import (
	"fmt"

	"github.com/hkruse/streamjson"
	"github.com/hkruse/streamjson/streamio"
)

// Type identifies the kind of a tagged Value.
type Type int

const (
	Null Type = iota
	Int
	Float
	String
	Bool
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Null:
		return "<null>"
	case Int:
		return "<int>"
	case Float:
		return "<float>"
	case String:
		return "<string>"
	case Bool:
		return "<bool>"
	case Array:
		return "<array>"
	case Object:
		return "<object>"
	}
	return "<unknown>"
}

// ErrType is returned when a Value is accessed through an As* method
// that doesn't match its Type.
var ErrType = fmt.Errorf("streamtree: type error")

// pair preserves object field insertion order, matching RFC 8259's
// silence on ordering by default preserving document order rather than
// imposing a map's undefined iteration order.
type pair struct {
	key string
	val *Value
}

// Value is a tagged JSON value assembled from a streamjson event
// sequence.
type Value struct {
	typ Type
	i   int64
	f   float64
	s   string
	b   bool
	arr []*Value
	obj []pair
}

func (v *Value) Type() Type { return v.typ }

func (v *Value) AsNull() error {
	if v.typ != Null {
		return fmt.Errorf("%w: value is %v, not null", ErrType, v.typ)
	}
	return nil
}

func (v *Value) AsInt() (int64, error) {
	if v.typ != Int {
		return 0, fmt.Errorf("%w: value is %v, not int", ErrType, v.typ)
	}
	return v.i, nil
}

// AsNumber returns the value as a float64 whether it was parsed as an
// int or a float lexeme, mirroring the teacher's AsNumber widening.
func (v *Value) AsNumber() (float64, error) {
	switch v.typ {
	case Int:
		return float64(v.i), nil
	case Float:
		return v.f, nil
	}
	return 0, fmt.Errorf("%w: value is %v, not a number", ErrType, v.typ)
}

func (v *Value) AsString() (string, error) {
	if v.typ != String {
		return "", fmt.Errorf("%w: value is %v, not a string", ErrType, v.typ)
	}
	return v.s, nil
}

func (v *Value) AsBool() (bool, error) {
	if v.typ != Bool {
		return false, fmt.Errorf("%w: value is %v, not a bool", ErrType, v.typ)
	}
	return v.b, nil
}

func (v *Value) AsArray() ([]*Value, error) {
	if v.typ != Array {
		return nil, fmt.Errorf("%w: value is %v, not an array", ErrType, v.typ)
	}
	return v.arr, nil
}

func (v *Value) AsObject() (map[string]*Value, error) {
	if v.typ != Object {
		return nil, fmt.Errorf("%w: value is %v, not an object", ErrType, v.typ)
	}
	m := make(map[string]*Value, len(v.obj))
	for _, p := range v.obj {
		m[p.key] = p.val
	}
	return m, nil
}

// Index is a fluent accessor returning a null Value instead of an error
// for out-of-range or non-array access, matching the teacher's drill-down
// ergonomics.
func (v *Value) Index(i int) *Value {
	if v.typ != Array || i < 0 || i >= len(v.arr) {
		return &Value{}
	}
	return v.arr[i]
}

// Key is a fluent accessor returning a null Value instead of an error for
// a missing key or non-object access.
func (v *Value) Key(k string) *Value {
	if v.typ != Object {
		return &Value{}
	}
	for _, p := range v.obj {
		if p.key == k {
			return p.val
		}
	}
	return &Value{}
}

type frame struct {
	obj    *Value // non-nil while building an object
	arr    *Value // non-nil while building an array
	curKey string
}

// Build drains p by calling Advance until the top-level value is
// complete (EndOfStream) and returns the assembled tree. It returns
// streamjson.NeedMoreInput-shaped callers an error instead of blocking:
// Build assumes the caller has already fed p all of its input (e.g. via
// a streamio adapter or a fully-pushed in-memory feeder) and will surface
// an error if Advance ever yields NeedMoreInput, since a blocking tree
// build defeats the parser's non-blocking contract.
func Build(p *streamjson.Parser) (*Value, error) {
	var stack []frame
	var root *Value
	var pendingKey string

	attach := func(v *Value) error {
		if len(stack) == 0 {
			if root != nil {
				return fmt.Errorf("streamtree: multiple top-level values")
			}
			root = v
			return nil
		}
		top := &stack[len(stack)-1]
		switch {
		case top.arr != nil:
			top.arr.arr = append(top.arr.arr, v)
		case top.obj != nil:
			top.obj.obj = append(top.obj.obj, pair{key: pendingKey, val: v})
		}
		return nil
	}

	for {
		ev, err := p.Advance()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case streamjson.NeedMoreInput:
			return nil, fmt.Errorf("streamtree: parser needs more input mid-build; feed all bytes before calling Build")
		case streamjson.EndOfStream:
			return root, nil
		case streamjson.StartObject:
			v := &Value{typ: Object}
			if err := attach(v); err != nil {
				return nil, err
			}
			stack = append(stack, frame{obj: v})
		case streamjson.EndObject:
			stack = stack[:len(stack)-1]
		case streamjson.StartArray:
			v := &Value{typ: Array, arr: []*Value{}}
			if err := attach(v); err != nil {
				return nil, err
			}
			stack = append(stack, frame{arr: v})
		case streamjson.EndArray:
			stack = stack[:len(stack)-1]
		case streamjson.FieldName:
			name, err := p.AsString()
			if err != nil {
				return nil, err
			}
			pendingKey = name
		case streamjson.ValueString:
			s, err := p.AsString()
			if err != nil {
				return nil, err
			}
			if err := attach(&Value{typ: String, s: s}); err != nil {
				return nil, err
			}
		case streamjson.ValueInt:
			n, err := p.AsInt(64)
			if err != nil {
				return nil, err
			}
			if err := attach(&Value{typ: Int, i: n}); err != nil {
				return nil, err
			}
		case streamjson.ValueFloat:
			f, err := p.AsFloat64()
			if err != nil {
				return nil, err
			}
			if err := attach(&Value{typ: Float, f: f}); err != nil {
				return nil, err
			}
		case streamjson.ValueTrue:
			if err := attach(&Value{typ: Bool, b: true}); err != nil {
				return nil, err
			}
		case streamjson.ValueFalse:
			if err := attach(&Value{typ: Bool, b: false}); err != nil {
				return nil, err
			}
		case streamjson.ValueNull:
			if err := attach(&Value{typ: Null}); err != nil {
				return nil, err
			}
		}
	}
}

// ParseBytes parses a complete in-memory document into a tagged value
// tree in one call, the streamtree equivalent of the teacher's
// json.ParseBytes.
func ParseBytes(data []byte) (*Value, error) {
	feeder := streamio.NewSliceFeeder(data)
	return Build(streamjson.New(feeder))
}

// ParseString is ParseBytes for a string.
func ParseString(s string) (*Value, error) {
	return ParseBytes([]byte(s))
}
