package bundle

import "strconv"

type valueKind uint8

const (
	kindString valueKind = iota
	kindNumber
)

// Value is the runtime argument type the formatter consumes. It is either
// a string or a number; numbers additionally participate in plural
// selection.
type Value struct {
	kind valueKind
	str  string
	num  float64
}

// String wraps a string argument.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// Number wraps a numeric argument.
func Number(n float64) Value {
	return Value{kind: kindNumber, num: n}
}

// IntoValue enumerates the Go types accepted as localization arguments.
type IntoValue interface {
	string | int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | Value
}

// From converts any accepted argument type into a Value.
func From[T IntoValue](v T) Value {
	switch v := any(v).(type) {
	case Value:
		return v
	case string:
		return String(v)
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	}
	return Value{}
}

// String renders the value the way it appears in formatted output.
func (v Value) String() string {
	if v.kind == kindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v Value) isNumber() bool { return v.kind == kindNumber }

// Args carries the named arguments for one formatting call.
type Args struct {
	values map[string]Value
}

// NewArgs returns an empty argument set.
func NewArgs() *Args {
	return &Args{values: make(map[string]Value)}
}

// Set stores an argument under its variable name.
func (a *Args) Set(name string, v Value) {
	a.values[name] = v
}

func (a *Args) get(name string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.values[name]
	return v, ok
}
