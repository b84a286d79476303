package rxport

import (
	"fmt"
	"reflect"
)

// Notice is the constraint satisfied by notice enums.
// Any integer-kinded named type works:
//
//	type GameNotice uint8
//
//	const (
//	    RoundStarted GameNotice = iota
//	    ScoreChanged
//	)
type Notice interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Unit is the payload of channels that carry no data.
type Unit struct{}

// channelKey identifies one channel on a bus.
// notice keeps its dynamic type, so two enums sharing an underlying value
// never collide.
type channelKey struct {
	notice  any
	payload reflect.Type
}

func keyOf[P any, N Notice](n N) channelKey {
	return channelKey{notice: n, payload: reflect.TypeFor[P]()}
}

// String returns a readable form of the key for logging.
func (k channelKey) String() string {
	if s, ok := k.notice.(fmt.Stringer); ok {
		return s.String() + "/" + k.payload.String()
	}
	return fmt.Sprintf("%T(%v)/%s", k.notice, k.notice, k.payload)
}

// isNil reports whether v is nil or a nil value of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
