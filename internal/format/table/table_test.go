package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	got := Format([][]string{
		{"latest", "2 days", "4"},
		{"1.25.3-alpine", "1 year", "12"},
	}, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"latest         2 days   4",
		"1.25.3-alpine  1 year  12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "b"}, {"ccc"}}, nil)
	want := []string{"a    b", "ccc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatal("expected nil for no rows")
	}
}

func TestRenderAddsRule(t *testing.T) {
	got := Render([]string{"TAG", "AGE"}, [][]string{{"latest", "1 day"}}, nil)
	want := "TAG     AGE\n─────────────\nlatest  1 day\n"
	if got != want {
		t.Fatalf("unexpected render %q", got)
	}
}
