package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nearbyQuery struct {
	Lat    *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Radius int      `query:"radius" validate:"omitempty,gt=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	lat := 22.97
	assert.NoError(t, v.Validate(&nearbyQuery{Lat: &lat}))

	err := v.Validate(&nearbyQuery{})
	assert.EqualError(t, err, "lat is required")

	bad := 91.0
	err = v.Validate(&nearbyQuery{Lat: &bad, Radius: -1})
	assert.ErrorContains(t, err, "lat must satisfy lte=90")
	assert.ErrorContains(t, err, "radius must satisfy gt=0")
}
