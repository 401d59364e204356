package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDMarshalJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"42", `{"id":42}`},
		{"-3", `{"id":-3}`},
		{"007", `{"id":"007"}`},
		{"+5", `{"id":"+5"}`},
		{"b-2", `{"id":"b-2"}`},
		{"99999999999999999999", `{"id":"99999999999999999999"}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			out, err := json.Marshal(struct {
				ID ID `json:"id"`
			}{tt.id})
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))

			var back struct {
				ID ID `json:"id"`
			}
			require.NoError(t, json.Unmarshal(out, &back))
			assert.Equal(t, tt.id, back.ID)
		})
	}
}

func TestIDUnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":7,"b":"x-1","c":null}`), &v))
	assert.Equal(t, ID("7"), v.A)
	assert.Equal(t, ID("x-1"), v.B)
	assert.Equal(t, ID(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
