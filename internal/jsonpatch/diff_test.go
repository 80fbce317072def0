package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDiff(t *testing.T) {
	a := decode(t, `{"levers":{"ticket_price_pct":0,"total_fare_free":null},"selections":[{"id":"x"},{"id":"y"}],"gone":1}`)
	b := decode(t, `{"levers":{"ticket_price_pct":10,"total_fare_free":"both"},"selections":[{"id":"x"}],"new/key":true}`)

	ops := Diff(a, b, "")
	require.Equal(t, []Op{
		{Op: "remove", Path: "/gone"},
		{Op: "replace", Path: "/levers/ticket_price_pct", Value: float64(10)},
		{Op: "replace", Path: "/levers/total_fare_free", Value: "both"},
		{Op: "add", Path: "/new~1key", Value: true},
		{Op: "remove", Path: "/selections/1"},
	}, ops)
}

func TestDiff_TypeChange(t *testing.T) {
	ops := Diff(decode(t, `{"a":[1]}`), decode(t, `{"a":{"b":1}}`), "")
	require.Len(t, ops, 1)
	require.Equal(t, "replace", ops[0].Op)
	require.Equal(t, "/a", ops[0].Path)
}

func TestBetween(t *testing.T) {
	type doc struct {
		Name  string  `json:"name"`
		Value *string `json:"value"`
	}
	v := "x"

	raw, err := Between(doc{Name: "a"}, doc{Name: "a"})
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))

	raw, err = Between(doc{Name: "a", Value: &v}, doc{Name: "b"})
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"op":"replace","path":"/name","value":"b"},
		{"op":"replace","path":"/value","value":null}
	]`, string(raw))
}
