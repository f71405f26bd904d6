package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los fallos que la capa de presentación debe distinguir.
// Es un conjunto cerrado: cualquier error no clasificado se reporta como KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindStoreUnavailable
	KindRenderFailure
)

// Errores centinela, uno por Kind. errors.Is(err, ErrNotFound) funciona sobre *Error.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
	ErrRenderFailure    = errors.New("fallo al generar el documento")
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindRenderFailure:
		return "render_failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindStoreUnavailable:
		return ErrStoreUnavailable
	case KindRenderFailure:
		return ErrRenderFailure
	default:
		return nil
	}
}

// Error envuelve la causa original con su clasificación y la operación que falló.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E construye un *Error. Op suele ser "load", "export", "get bill", etc.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite comparar contra los centinelas sin perder la causa original.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf devuelve la clasificación de err; KindUnknown si no hay ninguna.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrRenderFailure):
		return KindRenderFailure
	}
	return KindUnknown
}
