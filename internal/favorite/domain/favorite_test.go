package domain

import (
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestMerge(t *testing.T) {
	testCases := []struct {
		name      string
		existing  []string
		input     []string
		wantAll   []string
		wantAdded []string
	}{
		{"IntoEmpty", nil, []string{"a", "b", "a", "c"}, []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"KeepsExistingOrder", []string{"D1", "D2"}, []string{"D2", "D3"}, []string{"D1", "D2", "D3"}, []string{"D3"}},
		{"AllPresent", []string{"x", "y"}, []string{"y", "x"}, []string{"x", "y"}, nil},
		{"EmptyInput", []string{"x"}, nil, []string{"x"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fav := &Favorites{Dishes: pq.StringArray(tc.existing)}
			added := fav.Merge(tc.input)

			if !reflect.DeepEqual([]string(fav.Dishes), tc.wantAll) {
				t.Errorf("Expected dishes %v, got %v", tc.wantAll, fav.Dishes)
			}
			if !reflect.DeepEqual(added, tc.wantAdded) {
				t.Errorf("Expected added %v, got %v", tc.wantAdded, added)
			}
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	fav := &Favorites{}
	input := []string{"D1", "D2", "D3"}

	fav.Merge(input)
	first := append([]string{}, fav.Dishes...)
	if added := fav.Merge(input); len(added) != 0 {
		t.Errorf("Expected nothing added on second merge, got %v", added)
	}
	if !reflect.DeepEqual(first, []string(fav.Dishes)) {
		t.Errorf("Second merge changed dishes: %v -> %v", first, fav.Dishes)
	}
}

func TestRemove(t *testing.T) {
	fav := &Favorites{Dishes: pq.StringArray{"D1", "D2", "D3", "D4"}}

	if fav.Remove("D9") {
		t.Error("Expected Remove of absent dish to report false")
	}
	if len(fav.Dishes) != 4 {
		t.Errorf("Absent remove changed dishes: %v", fav.Dishes)
	}

	if !fav.Remove("D2") {
		t.Fatal("Expected Remove of present dish to report true")
	}
	want := []string{"D1", "D3", "D4"}
	if !reflect.DeepEqual([]string(fav.Dishes), want) {
		t.Errorf("Expected %v, got %v", want, fav.Dishes)
	}

	fav.Remove("D1")
	fav.Remove("D3")
	fav.Remove("D4")
	if fav.Dishes == nil || len(fav.Dishes) != 0 {
		t.Errorf("Expected empty non-nil dishes, got %#v", fav.Dishes)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := Dedupe(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}
