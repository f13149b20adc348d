package llm

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type activityItem struct {
	Activity string  `json:"activity" description:"one of the tracked categories"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

type activityList struct {
	Activities []activityItem `json:"activities"`
}

func TestGenerateSchema(t *testing.T) {
	t.Run("struct with nested slice", func(t *testing.T) {
		schema, err := GenerateSchema(activityList{})
		require.NoError(t, err)
		require.Equal(t, "object", schema["type"])
		require.Equal(t, []string{"activities"}, schema["required"])

		props := schema["properties"].(map[string]interface{})
		activities := props["activities"].(map[string]interface{})
		require.Equal(t, "array", activities["type"])

		item := activities["items"].(map[string]interface{})
		require.Equal(t, "object", item["type"])
		// unit is omitempty, so only activity and quantity are required
		require.ElementsMatch(t, []string{"activity", "quantity"}, item["required"])

		itemProps := item["properties"].(map[string]interface{})
		activity := itemProps["activity"].(map[string]interface{})
		require.Equal(t, "one of the tracked categories", activity["description"])
	})

	t.Run("pointer to struct", func(t *testing.T) {
		schema, err := GenerateSchema(&activityItem{})
		require.NoError(t, err)
		require.Equal(t, "object", schema["type"])
	})

	t.Run("nil value", func(t *testing.T) {
		_, err := GenerateSchema(nil)
		require.Error(t, err)
	})

	t.Run("non-struct", func(t *testing.T) {
		_, err := GenerateSchema("not a struct")
		require.Error(t, err)
	})

	t.Run("unexported and skipped fields", func(t *testing.T) {
		type withHidden struct {
			Visible string `json:"visible"`
			Skipped string `json:"-"`
			hidden  string
		}
		_ = withHidden{hidden: ""}
		schema, err := GenerateSchema(withHidden{})
		require.NoError(t, err)
		props := schema["properties"].(map[string]interface{})
		require.Len(t, props, 1)
		require.Contains(t, props, "visible")
	})
}

func TestTypeSchema(t *testing.T) {
	cases := []struct {
		value    interface{}
		wantType string
	}{
		{true, "boolean"},
		{"", "string"},
		{int(0), "integer"},
		{int64(0), "integer"},
		{uint8(0), "integer"},
		{float32(0), "number"},
		{float64(0), "number"},
		{[]string{}, "array"},
		{[2]int{}, "array"},
		{map[string]int{}, "object"},
		{make(chan int), "string"}, // no JSON shape, falls back
	}
	for _, tc := range cases {
		schema := typeSchema(reflect.TypeOf(tc.value))
		require.Equal(t, tc.wantType, schema["type"], "value %T", tc.value)
	}

	t.Run("map values recurse", func(t *testing.T) {
		schema := typeSchema(reflect.TypeOf(map[string][]string{}))
		inner := schema["additionalProperties"].(map[string]interface{})
		require.Equal(t, "array", inner["type"])
	})
}

func TestFieldJSONName(t *testing.T) {
	type tagged struct {
		A string `json:"a"`
		B string `json:"b,omitempty"`
		C string
	}
	typ := reflect.TypeOf(tagged{})

	name, omit := fieldJSONName(typ.Field(0))
	require.Equal(t, "a", name)
	require.False(t, omit)

	name, omit = fieldJSONName(typ.Field(1))
	require.Equal(t, "b", name)
	require.True(t, omit)

	name, _ = fieldJSONName(typ.Field(2))
	require.Empty(t, name)
}

func TestParseStructured(t *testing.T) {
	t.Run("decodes into target", func(t *testing.T) {
		var out activityList
		err := ParseStructured(`{"activities":[{"activity":"Water","quantity":500,"unit":"ml"}]}`, &out)
		require.NoError(t, err)
		require.Len(t, out.Activities, 1)
		require.Equal(t, "Water", out.Activities[0].Activity)
	})

	t.Run("nil target", func(t *testing.T) {
		require.Error(t, ParseStructured(`{}`, nil))
	})

	t.Run("non-pointer target", func(t *testing.T) {
		require.Error(t, ParseStructured(`{}`, activityList{}))
	})

	t.Run("malformed json", func(t *testing.T) {
		var out activityList
		require.Error(t, ParseStructured(`{"activities":`, &out))
	})
}
