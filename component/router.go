// Package component routes interactions with message components, such as
// buttons and select menus, back to typed handlers.
//
// A component's custom id carries the tag of its payload type and the payload
// itself as an opaque token:
//
//	5f1c6e9a0b2d4c7e8f9a1b2c3d4e5f60 CAAAAAAA#T.JFAAAAAAAA
//
// Handlers are registered before the router serves interactions; dispatch only
// reads the router.
package component

import (
	"context"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/token"
)

// MaxCustomIDLength is the longest custom id the platform accepts.
const MaxCustomIDLength = 100

// Namespace derives name-based tags.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/napalu/slashopt/component"))

// TagOf returns the stable tag of the payload type called name.
func TagOf(name string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(name))
}

// Interaction is a component interaction as delivered by the platform.
type Interaction struct {
	CustomID string
	// Values holds the selected values of a select menu.
	Values []string
	Locale string
}

// Router dispatches interactions to the handler registered for the tag in
// their custom id.
type Router struct {
	routes map[uuid.UUID]*route
}

type route struct {
	payload reflect.Type
	handle  func(ctx context.Context, state string, i *Interaction) error
}

func NewRouter() *Router {
	return &Router{routes: map[uuid.UUID]*route{}}
}

// Kind builds custom ids for one registered payload type.
type Kind[T any] struct {
	tag uuid.UUID
}

// Tag returns the tag of the kind.
func (k *Kind[T]) Tag() uuid.UUID {
	return k.tag
}

// CustomID encodes payload into a custom id. Ids longer than
// MaxCustomIDLength are rejected with errs.ErrCustomIDTooLong.
func (k *Kind[T]) CustomID(payload T) (string, error) {
	tok, err := token.Encode(payload)
	if err != nil {
		return "", err
	}

	id := simple(k.tag) + " " + tok
	if n := utf8.RuneCountInString(id); n > MaxCustomIDLength {
		return "", errs.ErrCustomIDTooLong.WithArgs(n, MaxCustomIDLength)
	}

	return id, nil
}

// Register binds the tag of name to fn; see RegisterTag.
func Register[T any](r *Router, name string, fn func(ctx context.Context, payload T, i *Interaction) error) (*Kind[T], error) {
	return RegisterTag(r, TagOf(name), fn)
}

// RegisterTag binds tag to fn, which receives the payload decoded from the
// custom id. A tag can be registered once.
func RegisterTag[T any](r *Router, tag uuid.UUID, fn func(ctx context.Context, payload T, i *Interaction) error) (*Kind[T], error) {
	if _, exists := r.routes[tag]; exists {
		return nil, errs.ErrDuplicateTag.WithArgs(simple(tag))
	}

	r.routes[tag] = &route{
		payload: reflect.TypeOf((*T)(nil)).Elem(),
		handle: func(ctx context.Context, state string, i *Interaction) error {
			var payload T
			if err := token.Decode(state, &payload); err != nil {
				return err
			}
			return fn(ctx, payload, i)
		},
	}

	return &Kind[T]{tag: tag}, nil
}

// Lookup returns the kind registered under name. It fails with
// errs.ErrHandlerTypeMismatch when the handler expects a payload other
// than T.
func Lookup[T any](r *Router, name string) (*Kind[T], error) {
	tag := TagOf(name)
	rt, ok := r.routes[tag]
	if !ok {
		return nil, errs.ErrUnknownTag.WithArgs(simple(tag))
	}
	if want := reflect.TypeOf((*T)(nil)).Elem(); rt.payload != want {
		return nil, errs.ErrHandlerTypeMismatch.WithArgs(simple(tag), rt.payload.String())
	}

	return &Kind[T]{tag: tag}, nil
}

// Dispatch decodes the custom id of i and runs the handler of its tag.
func (r *Router) Dispatch(ctx context.Context, i *Interaction) error {
	tag, state, err := Split(i.CustomID)
	if err != nil {
		return err
	}

	rt, ok := r.routes[tag]
	if !ok {
		return errs.ErrUnknownTag.WithArgs(simple(tag))
	}

	return rt.handle(ctx, state, i)
}

// Split separates a custom id into its tag and token.
func Split(customID string) (uuid.UUID, string, error) {
	head, state, ok := strings.Cut(customID, " ")
	if !ok || len(head) != 32 || state == "" {
		return uuid.Nil, "", errs.ErrInvalidCustomID.WithArgs(customID)
	}

	tag, err := uuid.Parse(head)
	if err != nil {
		return uuid.Nil, "", errs.ErrInvalidCustomID.WithArgs(customID).Wrap(err)
	}

	return tag, state, nil
}

// simple renders tag as 32 hex digits without dashes.
func simple(tag uuid.UUID) string {
	return strings.ReplaceAll(tag.String(), "-", "")
}
