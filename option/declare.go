package option

import (
	"reflect"
	"time"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/internal/parse"
)

var declaredTypes = map[string]reflect.Type{
	"":            reflect.TypeOf(""),
	"string":      reflect.TypeOf(""),
	"integer":     reflect.TypeOf(int64(0)),
	"number":      reflect.TypeOf(float64(0)),
	"boolean":     reflect.TypeOf(false),
	"timestamp":   reflect.TypeOf(time.Time{}),
	"user":        reflect.TypeOf(User{}),
	"member":      reflect.TypeOf(Member{}),
	"role":        reflect.TypeOf(Role{}),
	"channel":     reflect.TypeOf(Channel{}),
	"mentionable": reflect.TypeOf(Mentionable{}),
	"attachment":  reflect.TypeOf(Attachment{}),
}

// ParseParam declares a parameter from a tag in the struct tag grammar, for
// callers that have no struct to declare it with. The type attribute names
// the value type and defaults to string:
//
//	ParseParam("count", "type:integer;min:1;max:10;optional:true")
func ParseParam(name, tag string, configs ...ConfigureBindFunc) (Param, error) {
	b, err := newBinder(configs)
	if err != nil {
		return Param{}, err
	}

	cfg, err := parse.UnmarshalTagFormat(tag, name)
	if err != nil {
		return Param{}, err
	}
	ft, ok := declaredTypes[cfg.Type]
	if !ok {
		return Param{}, errs.ErrInvalidTagAttribute.WithArgs(cfg.Type, "type", name)
	}
	if cfg.Name != "" {
		name = cfg.Name
	}

	t, err := b.typeOf(reflect.StructField{Name: name, Type: ft}, cfg)
	if err != nil {
		return Param{}, err
	}

	return NewParam(name, t), nil
}
