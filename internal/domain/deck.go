package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultDeckKey is the deck shown when nothing valid is stored.
const DefaultDeckKey = "dbms"

// Card is a single question and answer pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is a named, immutable, ordered sequence of cards.
type Deck struct {
	key   string
	title string
	cards []Card
}

// NewDeck builds a deck. The cards are copied.
func NewDeck(key, title string, cards ...Card) Deck {
	return Deck{key: key, title: title, cards: slices.Clone(cards)}
}

func (d Deck) Key() string   { return d.key }
func (d Deck) Title() string { return d.title }
func (d Deck) Len() int      { return len(d.cards) }

// Card returns the card at i.
func (d Deck) Card(i int) (Card, bool) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[i], true
}

// Cards returns a copy of the deck's cards.
func (d Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Catalog is an ordered mapping from deck key to deck.
type Catalog struct {
	decks []Deck
	index map[string]int
}

// NewCatalog builds a catalog from decks in display order. Decks must be
// non-empty and have unique keys; the first deck is the catalog default.
func NewCatalog(decks ...Deck) (*Catalog, error) {
	if len(decks) == 0 {
		return nil, errors.New("catalog needs at least one deck")
	}
	c := &Catalog{index: make(map[string]int, len(decks))}
	for _, d := range decks {
		if d.key == "" {
			return nil, errors.New("deck key cannot be empty")
		}
		if d.Len() == 0 {
			return nil, fmt.Errorf("deck %q has no cards", d.key)
		}
		if _, dup := c.index[d.key]; dup {
			return nil, fmt.Errorf("duplicate deck key %q", d.key)
		}
		c.index[d.key] = len(c.decks)
		c.decks = append(c.decks, d)
	}
	return c, nil
}

// Lookup returns the deck for key.
func (c *Catalog) Lookup(key string) (Deck, bool) {
	i, ok := c.index[key]
	if !ok {
		return Deck{}, false
	}
	return c.decks[i], true
}

// Default returns the first deck.
func (c *Catalog) Default() Deck {
	return c.decks[0]
}

// Decks returns the decks in display order.
func (c *Catalog) Decks() []Deck {
	return slices.Clone(c.decks)
}

// Keys returns the deck keys in display order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.decks))
	for i, d := range c.decks {
		keys[i] = d.key
	}
	return keys
}

// DeckCursor is the viewer position: a deck key and a card index in
// [0, deck length).
type DeckCursor struct {
	Deck  string `json:"deck"`
	Index int    `json:"index"`
}

// WrapIndex maps i onto [0, n) circularly. n must be positive.
func WrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// Next moves one card forward in a deck of n cards, wrapping to the start.
func (c DeckCursor) Next(n int) DeckCursor {
	c.Index = WrapIndex(c.Index+1, n)
	return c
}

// Previous moves one card back in a deck of n cards, wrapping to the end.
func (c DeckCursor) Previous(n int) DeckCursor {
	c.Index = WrapIndex(c.Index-1, n)
	return c
}

// Counter renders the 1-based position, e.g. "2 / 4".
func (c DeckCursor) Counter(n int) string {
	return strconv.Itoa(c.Index+1) + " / " + strconv.Itoa(n)
}

// ResolveCursor turns persisted cursor fields into a valid cursor for
// catalog. Unknown decks fall back to DefaultDeckKey (or the catalog default
// when that key is absent); malformed or out of range indexes fall back to 0.
// ok is false when anything had to be replaced.
func ResolveCursor(c *Catalog, deckKey, rawIndex string) (cur DeckCursor, ok bool) {
	ok = true
	deck, found := c.Lookup(deckKey)
	if !found {
		if deckKey != "" {
			ok = false
		}
		deck, found = c.Lookup(DefaultDeckKey)
		if !found {
			deck = c.Default()
		}
	}
	cur.Deck = deck.Key()

	rawIndex = strings.TrimSpace(rawIndex)
	if rawIndex == "" {
		return cur, ok
	}
	idx, err := strconv.Atoi(rawIndex)
	if err != nil || idx < 0 || idx >= deck.Len() {
		return cur, false
	}
	cur.Index = idx
	return cur, ok
}
