package cache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key derives the cache key for a read function invocation. The key is the
// function name followed by ':' and a canonical JSON array of the
// arguments, so `Key("getAllMeals")` yields "getAllMeals:[]" and two
// equivalent argument records always produce the same key regardless of
// field order.
func Key(name string, args ...any) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteByte('[')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(canonicalize(arg))
	}
	b.WriteByte(']')
	return b.String()
}

// canonicalize serializes a single argument deterministically. Arguments
// are constrained to primitives, arrays, and flat records; anything is
// round-tripped through encoding/json so that map keys and struct fields
// alike come out in sorted order. Values that cannot be marshaled fall
// back to their Go string form, keeping the function total.
func canonicalize(v any) string {
	if v == nil {
		return "null"
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
	}
	// Struct fields serialize in declaration order, so normalize through a
	// generic value where objects become maps with sorted keys.
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(norm)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
