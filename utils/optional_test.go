package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentNullValue(t *testing.T) {
	type payload struct {
		Description Optional[string] `json:"description"`
		Cap         Optional[int]    `json:"cap"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Description.Present)
	_, ok := absent.Description.Get()
	assert.False(t, ok)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "cap": null}`), &null))
	assert.True(t, null.Description.Present)
	assert.True(t, null.Description.Null)
	_, ok = null.Cap.Get()
	assert.False(t, ok)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"description": "evening offer", "cap": 3}`), &set))
	assert.True(t, set.Description.Present)
	assert.False(t, set.Description.Null)
	v, ok := set.Description.Get()
	assert.True(t, ok)
	assert.Equal(t, "evening offer", v)
	n, ok := set.Cap.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestOptional_Constructors(t *testing.T) {
	set := Set(42)
	v, ok := set.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	cleared := Clear[int]()
	assert.True(t, cleared.Present)
	assert.True(t, cleared.Null)
	_, ok = cleared.Get()
	assert.False(t, ok)
}

func TestOptional_MarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(Set("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `"hello"`, string(out))

	out, err = json.Marshal(Clear[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(Optional[string]{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
