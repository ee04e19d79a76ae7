package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Visitas-api/pkg/validator"
)

type sample struct {
	Name   string `json:"name" validate:"required,max=100" msg:"required=Name is required;max=Name must be less than 100 characters"`
	Mobile string `json:"mobile" validate:"mobile" msg:"mobile=Please enter a valid 10-digit mobile number"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=3"`
}

func TestStruct_Valido(t *testing.T) {
	v := validator.New()
	assert.NoError(t, v.Struct(sample{Name: "Asha Rao", Mobile: "9876543210"}))
	assert.NoError(t, v.Struct(&sample{Name: strings.Repeat("ñ", 100), Mobile: "0000000000"}))
}

func TestStruct_Mobile(t *testing.T) {
	v := validator.New()
	cases := []string{"", "12345", "12345678901", "12345abcde", "98765 43210", "+987654321", "-987654321", "９８７６５４３２１０"}
	for _, mobile := range cases {
		t.Run(mobile, func(t *testing.T) {
			err := v.Struct(sample{Name: "Asha", Mobile: mobile})
			var vErr *validator.ValidationError
			require.True(t, errors.As(err, &vErr))
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, "mobile", vErr.Fields[0].Field)
			assert.Equal(t, "Please enter a valid 10-digit mobile number", vErr.Fields[0].Message)
		})
	}
}

func TestStruct_TodosLosCampos(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{Name: "", Mobile: "123"})

	var vErr *validator.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 2)
	assert.True(t, vErr.Has("name"))
	assert.True(t, vErr.Has("mobile"))
	assert.Equal(t, "Name is required", vErr.Fields[0].Message)
	assert.Contains(t, err.Error(), "name: Name is required")
}

func TestStruct_NombreLargo(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{Name: strings.Repeat("a", 101), Mobile: "9876543210"})

	var vErr *validator.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "max", vErr.Fields[0].Tag)
	assert.Equal(t, "Name must be less than 100 characters", vErr.Fields[0].Message)
}

func TestStruct_MensajePorDefecto(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{Name: "a", Mobile: "9876543210", Note: "abcd"})

	var vErr *validator.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "note failed on max=3", vErr.Fields[0].Message)
}
