package match_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/match"
)

func persons(names ...string) []*model.Person {
	result := make([]*model.Person, len(names))
	for i, name := range names {
		result[i] = &model.Person{ID: types.PersonID(i + 1), Name: name}
	}
	return result
}

func insight(contactName string) *model.Insight {
	return &model.Insight{ContactName: contactName, PhoneNumber: "5551234567", Confidence: 0.9}
}

func TestPerson(t *testing.T) {
	t.Run("exact match is case-insensitive", func(t *testing.T) {
		got := match.Person(insight("robert smith"), persons("Alice Jones", "Robert Smith"))
		gt.Bool(t, got != nil).True()
		gt.Value(t, got.Name).Equal("Robert Smith")
	})

	t.Run("exact match wins over fuzzy candidates", func(t *testing.T) {
		got := match.Person(insight("Rob"), persons("Robert Smith", "Rob"))
		gt.Bool(t, got != nil).True()
		gt.Value(t, got.Name).Equal("Rob")
	})

	t.Run("prefix token matches", func(t *testing.T) {
		got := match.Person(insight("Rob Smith"), persons("Alice Jones", "Robert Smith"))
		gt.Bool(t, got != nil).True()
		gt.Value(t, got.Name).Equal("Robert Smith")
	})

	t.Run("short tokens never match", func(t *testing.T) {
		got := match.Person(insight("Al"), persons("Albert Brooks"))
		gt.Bool(t, got == nil).True()
	})

	t.Run("hyphen and period are token separators", func(t *testing.T) {
		got := match.Person(insight("mary-jane w."), persons("Maryjane Watson", "Mary-Jane Watson"))
		gt.Bool(t, got != nil).True()
		// "mary" prefixes "maryjane", so the first candidate wins.
		gt.Value(t, got.Name).Equal("Maryjane Watson")
	})

	t.Run("no contact name drops the insight", func(t *testing.T) {
		got := match.Person(insight(""), persons("Robert Smith"))
		gt.Bool(t, got == nil).True()
	})

	t.Run("no candidates", func(t *testing.T) {
		got := match.Person(insight("Robert Smith"), nil)
		gt.Bool(t, got == nil).True()
	})

	t.Run("unrelated names do not match", func(t *testing.T) {
		got := match.Person(insight("Robert Smith"), persons("Alice Jones", "Carol King"))
		gt.Bool(t, got == nil).True()
	})
}

func TestTokensMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Rob Smith", "Robert Smith", true},
		{"robert smith", "Robert Smith", true},
		{"Al", "Albert", false},
		{"J. R. Tolkien", "John Tolkien", true},
		{"Sam", "Samantha Carter", true},
		{"Kate", "Katherine", false},
		{"Bob", "Robert", false},
	}

	for _, tc := range cases {
		got := match.TokensMatch(match.Tokenize(tc.a), match.Tokenize(tc.b))
		gt.Value(t, got).Equal(tc.want)
	}
}
