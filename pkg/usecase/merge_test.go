package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
)

func TestMergePreferences(t *testing.T) {
	t.Run("adds only new interests", func(t *testing.T) {
		merged, added := usecase.MergePreferences(
			[]string{"hiking", "coffee"},
			[]string{"coffee", "pottery"},
		)
		gt.Value(t, merged).Equal([]string{"hiking", "coffee", "pottery"})
		gt.Value(t, added).Equal([]string{"pottery"})
	})

	t.Run("comparison is case-insensitive and trimmed", func(t *testing.T) {
		merged, added := usecase.MergePreferences(
			[]string{"Hiking"},
			[]string{" hiking ", "HIKING", "Coffee"},
		)
		gt.Value(t, merged).Equal([]string{"Hiking", "Coffee"})
		gt.Value(t, added).Equal([]string{"Coffee"})
	})

	t.Run("blank interests are dropped", func(t *testing.T) {
		merged, added := usecase.MergePreferences(nil, []string{"", "   ", "tea"})
		gt.Value(t, merged).Equal([]string{"tea"})
		gt.Value(t, added).Equal([]string{"tea"})
	})

	t.Run("existing order is preserved", func(t *testing.T) {
		merged, _ := usecase.MergePreferences(
			[]string{"c", "a", "b"},
			[]string{"a"},
		)
		gt.Value(t, merged).Equal([]string{"c", "a", "b"})
	})

	t.Run("no growth yields empty added", func(t *testing.T) {
		_, added := usecase.MergePreferences([]string{"vinyl"}, []string{"vinyl"})
		gt.Array(t, added).Length(0)
	})

	t.Run("duplicates within the interests collapse", func(t *testing.T) {
		merged, added := usecase.MergePreferences(nil, []string{"tea", "Tea", "tea "})
		gt.Value(t, merged).Equal([]string{"tea"})
		gt.Value(t, added).Equal([]string{"tea"})
	})
}
