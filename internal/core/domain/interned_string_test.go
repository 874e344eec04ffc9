package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestInternedString_SharesHandle(t *testing.T) {
	a := domain.NewInternedString("org.junit")
	b := domain.NewInternedString("org.junit")

	assert.Equal(t, a.Value(), b.Value())
	assert.Equal(t, "org.junit", a.String())
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString

	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())

	data, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(data))
}

func TestInternedString_JSONInStruct(t *testing.T) {
	type holder struct {
		Publisher domain.InternedString `json:"publisher"`
	}

	data, err := json.Marshal(holder{Publisher: domain.NewInternedString("qub")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"publisher":"qub"}`, string(data))

	var decoded holder
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.NewInternedString("qub"), decoded.Publisher)
}
