package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAsThroughWrap(t *testing.T) {
	err := errors.Wrap(Conflict("Anda sudah check-in"), "absensi")

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Anda sudah check-in", appErr.Message)
	assert.Equal(t, http.StatusConflict, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, CodeOf(errors.New("boom")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := Internal("Gagal menyimpan data", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Gagal menyimpan data: db down", err.Error())
}

func TestField(t *testing.T) {
	err := Field("email", "email sudah digunakan")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, map[string]string{"email": "email sudah digunakan"}, err.Fields)
}
