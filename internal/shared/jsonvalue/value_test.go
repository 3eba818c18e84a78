package jsonvalue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"zero value is null", Value{}, `null`},
		{"string", String("security"), `"security"`},
		{"integer number", Int(4), `4`},
		{"fraction", Number(0.8), `0.8`},
		{"bool", Bool(true), `true`},
		{"nil optional string", OptionalString(nil), `null`},
		{"time is utc rfc3339", Time(time.Date(2025, 1, 1, 4, 0, 0, 0, time.UTC)), `"2025-01-01T04:00:00Z"`},
		{"empty array", Array(), `[]`},
		{"string list", Strings([]string{"fraud", "bribe"}), `["fraud","bribe"]`},
		{"empty object", FromObject(nil), `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestParseObject_Nested(t *testing.T) {
	obj, err := ParseObject([]byte(`{"rule":{"id":"r1","priority":1},"fields":["urgency"],"assignable":false,"team":null}`))
	require.NoError(t, err)

	rule, ok := obj.Get("rule").AsObject()
	require.True(t, ok)
	id, ok := rule.GetString("id")
	require.True(t, ok)
	assert.Equal(t, "r1", id)

	priority, ok := rule.Get("priority").AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(1), priority)

	fields, ok := obj.Get("fields").AsArray()
	require.True(t, ok)
	require.Len(t, fields, 1)

	assignable, ok := obj.Get("assignable").AsBool()
	require.True(t, ok)
	assert.False(t, assignable)

	assert.True(t, obj.Get("team").IsNull())
	assert.True(t, obj.Get("missing").IsNull())
}

func TestParseObject_RejectsNonObject(t *testing.T) {
	_, err := ParseObject([]byte(`[1,2]`))
	assert.Error(t, err)

	obj, err := ParseObject(nil)
	require.NoError(t, err)
	assert.Empty(t, obj)
}

func TestObject_RoundTrip(t *testing.T) {
	in := Object{
		"hours":    Int(4),
		"deadline": Time(time.Date(2025, 1, 1, 4, 0, 0, 0, time.UTC)),
		"nested":   FromObject(Object{"ok": Bool(true)}),
	}
	data, err := in.Marshal()
	require.NoError(t, err)

	out, err := ParseObject(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
