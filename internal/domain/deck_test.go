package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyDecks(t *testing.T) {
	t.Parallel()

	c := StudyDecks()
	assert.Equal(t, []string{"dbms", "cn", "gs"}, c.Keys())
	assert.Equal(t, DefaultDeckKey, c.Default().Key())

	for _, d := range c.Decks() {
		assert.Equal(t, 4, d.Len(), d.Key())
		assert.NotEmpty(t, d.Title())
		for i := 0; i < d.Len(); i++ {
			card, ok := d.Card(i)
			require.True(t, ok)
			assert.NotEmpty(t, card.Question)
			assert.NotEmpty(t, card.Answer)
		}
		_, ok := d.Card(d.Len())
		assert.False(t, ok)
	}

	_, ok := c.Lookup("physics")
	assert.False(t, ok)
}

func TestDeckIsImmutable(t *testing.T) {
	t.Parallel()

	c := StudyDecks()
	d, _ := c.Lookup("cn")
	cards := d.Cards()
	cards[0].Question = "tampered"

	again, _ := c.Lookup("cn")
	first, _ := again.Card(0)
	assert.Equal(t, "TCP vs UDP — key differences", first.Question)
}

func TestNewCatalogRejectsBadDecks(t *testing.T) {
	t.Parallel()

	card := Card{Question: "q", Answer: "a"}
	_, err := NewCatalog()
	assert.Error(t, err)
	_, err = NewCatalog(NewDeck("", "x", card))
	assert.Error(t, err)
	_, err = NewCatalog(NewDeck("x", "x"))
	assert.Error(t, err)
	_, err = NewCatalog(NewDeck("x", "x", card), NewDeck("x", "y", card))
	assert.Error(t, err)
}

func TestDeckCursorCyclic(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		for start := 0; start < n; start++ {
			cur := DeckCursor{Deck: "d", Index: start}
			for i := 0; i < n; i++ {
				cur = cur.Next(n)
				require.GreaterOrEqual(t, cur.Index, 0)
				require.Less(t, cur.Index, n)
			}
			assert.Equal(t, start, cur.Index, "n=%d start=%d", n, start)

			back := DeckCursor{Deck: "d", Index: start}.Next(n).Previous(n)
			assert.Equal(t, start, back.Index)
		}
	}
}

func TestDeckCursorScenario(t *testing.T) {
	t.Parallel()

	cur := DeckCursor{Deck: "cn"}
	var seen []int
	for i := 0; i < 4; i++ {
		cur = cur.Next(4)
		seen = append(seen, cur.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, seen)
	assert.Equal(t, 3, cur.Previous(4).Index)
	assert.Equal(t, "1 / 4", cur.Counter(4))
}

func TestResolveCursor(t *testing.T) {
	t.Parallel()

	c := StudyDecks()
	tests := []struct {
		name      string
		deck, idx string
		want      DeckCursor
		wantOK    bool
	}{
		{"fresh", "", "", DeckCursor{Deck: "dbms"}, true},
		{"stored", "gs", "2", DeckCursor{Deck: "gs", Index: 2}, true},
		{"unknown deck", "physics", "1", DeckCursor{Deck: "dbms", Index: 1}, false},
		{"malformed index", "cn", "two", DeckCursor{Deck: "cn"}, false},
		{"index out of range", "cn", "4", DeckCursor{Deck: "cn"}, false},
		{"negative index", "cn", "-1", DeckCursor{Deck: "cn"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveCursor(c, tt.deck, tt.idx)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
