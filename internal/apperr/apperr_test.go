package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"starborg-web/internal/apperr"
)

func TestError(t *testing.T) {
	t.Run("matches sentinel by code", func(t *testing.T) {
		err := apperr.New(apperr.CodeNotFound, "character 7 not found")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.NotErrorIs(t, err, apperr.ErrForbidden)
	})
	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("get character: %w", apperr.New(apperr.CodeConflict, "taken"))
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
		assert.Equal(t, "taken", apperr.MessageOf(err))
	})
	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := apperr.Wrap(apperr.CodeInvalidInput, "bad dice", cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "bad dice: boom", err.Error())
	})
	t.Run("plain errors are internal", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
		assert.Equal(t, "internal error", apperr.MessageOf(err))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.ErrInvalidInput, http.StatusBadRequest},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, apperr.HTTPStatus(tc.err))
		})
	}
}
