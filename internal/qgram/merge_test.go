package qgram_test

import (
	"reflect"
	"testing"

	"github.com/MrWong99/glyphoxa/internal/qgram"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("spec example", func(t *testing.T) {
		t.Parallel()
		lists := []qgram.PostingList{
			{{NameID: 1, Frequency: 2}, {NameID: 3, Frequency: 1}, {NameID: 5, Frequency: 1}},
			{{NameID: 2, Frequency: 1}, {NameID: 3, Frequency: 2}, {NameID: 9, Frequency: 2}},
		}
		got, stats := qgram.Merge(lists)
		want := qgram.PostingList{
			{NameID: 1, Frequency: 2},
			{NameID: 2, Frequency: 1},
			{NameID: 3, Frequency: 3},
			{NameID: 5, Frequency: 1},
			{NameID: 9, Frequency: 2},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Merge = %v, want %v", got, want)
		}
		if stats.ListsMerged != 2 || stats.ElementsMerged != 6 {
			t.Fatalf("Merge stats = %+v, want ListsMerged=2 ElementsMerged=6", stats)
		}
	})

	t.Run("one empty list is ignored", func(t *testing.T) {
		t.Parallel()
		lists := []qgram.PostingList{
			{{NameID: 1, Frequency: 2}, {NameID: 3, Frequency: 1}, {NameID: 5, Frequency: 1}},
			{},
		}
		got, _ := qgram.Merge(lists)
		want := qgram.PostingList{{NameID: 1, Frequency: 2}, {NameID: 3, Frequency: 1}, {NameID: 5, Frequency: 1}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Merge = %v, want %v", got, want)
		}
	})

	t.Run("all empty yields empty", func(t *testing.T) {
		t.Parallel()
		got, _ := qgram.Merge([]qgram.PostingList{{}, {}})
		if len(got) != 0 {
			t.Fatalf("Merge = %v, want empty", got)
		}
	})

	t.Run("no input lists yields empty", func(t *testing.T) {
		t.Parallel()
		got, stats := qgram.Merge(nil)
		if len(got) != 0 {
			t.Fatalf("Merge = %v, want empty", got)
		}
		if stats.ListsMerged != 0 {
			t.Fatalf("stats.ListsMerged = %d, want 0", stats.ListsMerged)
		}
	})
}
