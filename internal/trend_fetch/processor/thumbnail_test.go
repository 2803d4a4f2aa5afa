package processor

import (
	"reflect"
	"testing"
)

func TestParseThumbnail(t *testing.T) {
	t.Run("map passes through unchanged", func(t *testing.T) {
		in := map[string]any{"static": "s.jpg", "rich": "r.jpg"}
		got := ParseThumbnail(in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("got %v, want %v", got, in)
		}
	})

	t.Run("json string is parsed", func(t *testing.T) {
		got := ParseThumbnail(`{"static": "s.jpg", "rich": "r.jpg"}`)
		want := map[string]any{"static": "s.jpg", "rich": "r.jpg"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("single quoted dict repr is parsed", func(t *testing.T) {
		got := ParseThumbnail(`{'static': 's.jpg', 'rich': 'r.jpg'}`)
		want := map[string]any{"static": "s.jpg", "rich": "r.jpg"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("bare url wraps", func(t *testing.T) {
		got := ParseThumbnail("https://example.com/t.jpg")
		want := map[string]any{"static": "https://example.com/t.jpg", "rich": "https://example.com/t.jpg"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("unparseable braces wrap as-is", func(t *testing.T) {
		got := ParseThumbnail("{not a dict")
		want := map[string]any{"static": "{not a dict", "rich": "{not a dict"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("scalar wraps", func(t *testing.T) {
		got := ParseThumbnail(7.0)
		want := map[string]any{"static": 7.0, "rich": 7.0}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("output is always a map", func(t *testing.T) {
		for _, in := range []any{nil, 3, true, "x", []any{"a"}, map[string]any{}} {
			if got := ParseThumbnail(in); got == nil {
				t.Errorf("ParseThumbnail(%v) returned nil", in)
			}
		}
	})
}
