package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/phrazzld/studydesk/internal/domain"
	"github.com/phrazzld/studydesk/internal/events"
	"github.com/phrazzld/studydesk/internal/store"
)

// Keyboard codes understood by the card viewer.
const (
	KeySpace      = "Space"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

// DeckOption is one entry of the deck selector.
type DeckOption struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// CardView is the flashcard viewer state shown to the page.
type CardView struct {
	Deck     string       `json:"deck"`
	Title    string       `json:"title"`
	Index    int          `json:"index"`
	Count    int          `json:"count"`
	Counter  string       `json:"counter"`
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Flipped  bool         `json:"flipped"`
	Decks    []DeckOption `json:"decks"`
}

// FlashcardService walks a cursor through the compiled-in decks.
type FlashcardService struct {
	component
	catalog *domain.Catalog
	cursor  domain.DeckCursor
	flipped bool
}

// NewFlashcardService returns a viewer on the first card of the default deck.
func NewFlashcardService(d Deps, catalog *domain.Catalog) *FlashcardService {
	cursor, _ := domain.ResolveCursor(catalog, "", "")
	return &FlashcardService{
		component: newComponent("flashcards", d),
		catalog:   catalog,
		cursor:    cursor,
	}
}

// Load restores the persisted cursor, falling back to the default deck and
// the first card for unknown or malformed values.
func (s *FlashcardService) Load(ctx context.Context) CardView {
	return do(s.loop, func() CardView {
		deckKey, _ := s.read(ctx, store.KeyCurrentDeck)
		rawIndex, _ := s.read(ctx, store.KeyDeckIndex)
		cursor, ok := domain.ResolveCursor(s.catalog, deckKey, rawIndex)
		if !ok {
			s.log(ctx).Warn("ignoring invalid persisted deck cursor",
				slog.String("deck", deckKey),
				slog.String("index", rawIndex))
		}
		s.cursor = cursor
		s.flipped = false
		return s.view()
	})
}

// SelectDeck switches to the first card of deck key.
func (s *FlashcardService) SelectDeck(ctx context.Context, key string) (CardView, error) {
	if _, ok := s.catalog.Lookup(key); !ok {
		return CardView{}, fmt.Errorf("%w: %q", ErrUnknownDeck, key)
	}
	return do(s.loop, func() CardView {
		s.cursor = domain.DeckCursor{Deck: key}
		s.flipped = false
		s.persistMany(ctx, map[string]string{
			store.KeyCurrentDeck: key,
			store.KeyDeckIndex:   "0",
		})
		return s.changed(ctx)
	}), nil
}

// Next moves to the following card, wrapping at the end.
func (s *FlashcardService) Next(ctx context.Context) CardView {
	return do(s.loop, func() CardView {
		s.move(ctx, s.cursor.Next)
		return s.changed(ctx)
	})
}

// Previous moves to the preceding card, wrapping at the start.
func (s *FlashcardService) Previous(ctx context.Context) CardView {
	return do(s.loop, func() CardView {
		s.move(ctx, s.cursor.Previous)
		return s.changed(ctx)
	})
}

// Flip shows or hides the answer without moving the cursor.
func (s *FlashcardService) Flip(ctx context.Context) CardView {
	return do(s.loop, func() CardView {
		s.flipped = !s.flipped
		return s.changed(ctx)
	})
}

// HandleKey maps a keyboard code to an action. Unknown keys report
// handled=false and change nothing.
func (s *FlashcardService) HandleKey(ctx context.Context, code string) (view CardView, handled bool) {
	switch code {
	case KeySpace:
		return s.Flip(ctx), true
	case KeyArrowRight:
		return s.Next(ctx), true
	case KeyArrowLeft:
		return s.Previous(ctx), true
	}
	return s.View(), false
}

// View returns the current state.
func (s *FlashcardService) View() CardView {
	return do(s.loop, s.view)
}

// Cursor returns the current position.
func (s *FlashcardService) Cursor() domain.DeckCursor {
	return do(s.loop, func() domain.DeckCursor { return s.cursor })
}

func (s *FlashcardService) move(ctx context.Context, step func(n int) domain.DeckCursor) {
	s.cursor = step(s.deck().Len())
	s.flipped = false
	s.persist(ctx, store.KeyDeckIndex, strconv.Itoa(s.cursor.Index))
}

func (s *FlashcardService) changed(ctx context.Context) CardView {
	view := s.view()
	s.emit(ctx, events.FlashcardsChanged, view)
	return view
}

func (s *FlashcardService) deck() domain.Deck {
	d, ok := s.catalog.Lookup(s.cursor.Deck)
	if !ok {
		return s.catalog.Default()
	}
	return d
}

func (s *FlashcardService) view() CardView {
	deck := s.deck()
	card, _ := deck.Card(s.cursor.Index)

	options := make([]DeckOption, 0, len(s.catalog.Keys()))
	for _, d := range s.catalog.Decks() {
		options = append(options, DeckOption{Key: d.Key(), Title: d.Title()})
	}

	return CardView{
		Deck:     deck.Key(),
		Title:    deck.Title(),
		Index:    s.cursor.Index,
		Count:    deck.Len(),
		Counter:  s.cursor.Counter(deck.Len()),
		Question: card.Question,
		Answer:   card.Answer,
		Flipped:  s.flipped,
		Decks:    options,
	}
}
