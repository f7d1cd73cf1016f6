package packet

import (
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the closed set of scalar types a decoded field value
// may hold.
type Kind int

// The three value kinds a dissector may produce.
const (
	String Kind = iota
	Int
	Bool
)

// Value is a single decoded field value.  Every value has a canonical text
// form; integer values additionally carry their numeric form, and text
// values offer a numeric reading on demand when the text parses as an
// integer.
type Value struct {
	kind Kind
	text string
	num  int64
	flag bool
}

// StringValue wraps text as a Value.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// IntValue wraps an integer as a Value.
func IntValue(n int64) Value { return Value{kind: Int, num: n} }

// BoolValue wraps a boolean as a Value.
func BoolValue(b bool) Value { return Value{kind: Bool, flag: b} }

// Kind returns which member of the closed scalar set this value holds.
func (v Value) Kind() Kind { return v.kind }

// Text returns the canonical string form of the value.
func (v Value) Text() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.num, 10)
	case Bool:
		if v.flag {
			return "true"
		}
		return "false"
	}
	return v.text
}

// Int returns the numeric reading of the value.  Integer values always
// have one; text values have one when their text parses as a base-10
// integer; booleans never do.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case Int:
		return v.num, true
	case String:
		n, err := strconv.ParseInt(v.text, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Layer is one named protocol layer of a decoded packet: a field-name to
// value mapping.  Field lookups are case-insensitive.  A layer with no
// fields is still present; presence and content are distinct.
type Layer struct {
	name   string
	fields map[string]Value
}

// NewLayer builds a Layer from a protocol name and its decoded fields.
// The fields map is copied; the Layer does not alias it.
func NewLayer(name string, fields map[string]Value) Layer {
	l := Layer{name: name, fields: make(map[string]Value, len(fields))}
	for k, v := range fields {
		l.fields[strings.ToLower(k)] = v
	}
	return l
}

// Name returns the protocol name the layer was created with.
func (l Layer) Name() string { return l.name }

// Field looks up a decoded field by name, case-insensitively.  The second
// return distinguishes an absent field from a present-but-empty one.
func (l Layer) Field(name string) (Value, bool) {
	v, ok := l.fields[strings.ToLower(name)]
	return v, ok
}

// View is the read-only decoded form of one packet: an ordered collection
// of protocol layers.  Views are created once by the decoder and never
// modified afterward, so they may be read concurrently without locking.
//
// Number, Time and Length describe the captured frame and are set by the
// decoder before the view is shared.
type View struct {
	Number int
	Time   time.Time
	Length int

	layers []Layer
	index  map[string]int
}

// NewView builds a View from decoded layers, in wire order.  Duplicate
// layer names keep the first occurrence for lookup purposes.
func NewView(layers ...Layer) *View {
	v := &View{layers: layers, index: make(map[string]int, len(layers))}
	for i, l := range layers {
		key := strings.ToLower(l.name)
		if _, dup := v.index[key]; !dup {
			v.index[key] = i
		}
	}
	return v
}

// Layer looks up a protocol layer by name, case-insensitively.
func (v *View) Layer(name string) (Layer, bool) {
	i, ok := v.index[strings.ToLower(name)]
	if !ok {
		return Layer{}, false
	}
	return v.layers[i], true
}

// HasLayer reports whether a protocol layer with the given name is present.
func (v *View) HasLayer(name string) bool {
	_, ok := v.index[strings.ToLower(name)]
	return ok
}

// Field looks up a field within a named layer.  It returns false if either
// the layer or the field is absent.
func (v *View) Field(proto, field string) (Value, bool) {
	l, ok := v.Layer(proto)
	if !ok {
		return Value{}, false
	}
	return l.Field(field)
}

// Layers returns the decoded layers in wire order.  Callers must not
// modify the returned slice.
func (v *View) Layers() []Layer { return v.layers }
