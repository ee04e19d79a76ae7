package validator

import (
	"testing"

	validatorengine "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMustRegister_TagVacioEntraEnPanico(t *testing.T) {
	ok := func(validatorengine.FieldLevel) bool { return true }

	assert.Panics(t, func() { mustRegister(validatorengine.New(), "", ok) })
	assert.NotPanics(t, func() { mustRegister(validatorengine.New(), "siempre", ok) })
}
