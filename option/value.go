package option

// Opt is the result of resolving an Optional type: either None or a resolved
// value.
type Opt struct {
	value any
	ok    bool
}

// None is the value of an optional option the user left out.
var None = Opt{}

func Some(v any) Opt {
	return Opt{value: v, ok: true}
}

func (o Opt) Get() (any, bool) {
	return o.value, o.ok
}

func (o Opt) IsNone() bool {
	return !o.ok
}

// OptAs returns the value of o as T. It reports false for None and for a value
// of another type.
func OptAs[T any](o Opt) (T, bool) {
	v, ok := o.value.(T)
	return v, ok && o.ok
}

// Focused is the result of resolving a Focusable type. During an autocomplete
// request the option being typed in has HasFocus set and only Partial is
// meaningful; every other option carries its resolved Value.
type Focused struct {
	Value    any
	Partial  string
	HasFocus bool
}
