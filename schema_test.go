package emitorcsv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		inGroup bool
		want    TagKind
	}{
		{"emitor", false, KindEmitor},
		{"emitor", true, KindEmitor},
		{"status", false, KindGroup},
		{"parametr", false, KindGroup},
		{"stezenie", false, KindGroup},
		{"status", true, KindLeaf},
		{"auto", true, KindLeaf},
		{"reka", true, KindLeaf},
		{"wartosc", true, KindLeaf},
		{"niepewnosc", true, KindLeaf},
		{"standard", true, KindLeaf},
		{"auto", false, KindUnknown},
		{"parametr", true, KindUnknown},
		{"pomiar", true, KindUnknown},
		{"dokument", false, KindUnknown},
	}
	for _, tc := range cases {
		got := Classify(tc.name, tc.inGroup)
		require.Equalf(t, tc.want, got, "Classify(%q, inGroup=%v)", tc.name, tc.inGroup)
	}
}

func TestTagKindString(t *testing.T) {
	require.Equal(t, "emitor", KindEmitor.String())
	require.Equal(t, "group", KindGroup.String())
	require.Equal(t, "leaf", KindLeaf.String())
	require.Equal(t, "unknown", KindUnknown.String())
}

func TestAttrValue(t *testing.T) {
	attrs := []Attr{
		{Name: "typ", Value: "first"},
		{Name: "typ", Value: "second"},
	}
	v, ok := attrValue(attrs, "typ")
	require.True(t, ok)
	require.Equal(t, "first", v, "first occurrence wins")

	_, ok = attrValue(attrs, "nazwa")
	require.False(t, ok)
}
