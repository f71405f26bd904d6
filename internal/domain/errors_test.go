package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bill-detail/internal/domain"
)

func TestKindOf_ClasificaErroresEnvueltos(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load bill 7: %w", domain.E(domain.KindStoreUnavailable, "get bill", cause))

	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause, "la causa original debe seguir accesible")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestKindOf_Centinelas(t *testing.T) {
	cases := map[error]domain.Kind{
		domain.ErrNotFound:                              domain.KindNotFound,
		fmt.Errorf("x: %w", domain.ErrRenderFailure):    domain.KindRenderFailure,
		fmt.Errorf("x: %w", domain.ErrStoreUnavailable): domain.KindStoreUnavailable,
		errors.New("otro"):                              domain.KindUnknown,
		nil:                                             domain.KindUnknown,
	}
	for err, want := range cases {
		assert.Equal(t, want, domain.KindOf(err), "err=%v", err)
	}
}

func TestError_MensajeSinCausa(t *testing.T) {
	err := domain.E(domain.KindNotFound, "get shop profile 3", nil)
	assert.Equal(t, "get shop profile 3: recurso no encontrado", err.Error())
	assert.Equal(t, "not_found", domain.KindNotFound.String())
}
