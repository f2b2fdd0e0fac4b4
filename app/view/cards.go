package view

import (
	"fmt"
	"net/url"

	"github.com/lysyi3m/notiongram/app/carousel"
	"github.com/lysyi3m/notiongram/app/feed"
)

// Layout is one of the two page variants.
type Layout string

const (
	LayoutFeed Layout = "feed"
	LayoutGrid Layout = "grid"
)

// EdgePolicy returns the carousel edge policy of the layout. The feed keeps
// edge controls hidden; the grid always offers both directions.
func (l Layout) EdgePolicy() carousel.EdgePolicy {
	if l == LayoutFeed {
		return carousel.HideAtEdges
	}
	return carousel.ShowAtEdges
}

// StateParam is the query parameter holding the carousel index of a card.
func StateParam(itemID string) string {
	return "c." + itemID
}

type dotView struct {
	URL    string
	Label  string
	Active bool
}

type cardView struct {
	ID          string
	Name        string
	Date        string
	Description string
	Current     string
	Alt         string
	Controls    carousel.Controls
	Nav         bool
	PrevURL     string
	NextURL     string
	PrevLabel   string
	NextLabel   string
	Dots        []dotView
}

func buildCards(items []feed.Item, layout Layout, path string, query url.Values, m Messages) []cardView {
	cards := make([]cardView, 0, len(items))
	for _, item := range items {
		cards = append(cards, buildCard(item, layout, path, query, m))
	}
	return cards
}

func buildCard(item feed.Item, layout Layout, path string, query url.Values, m Messages) cardView {
	state := carousel.Restore(len(item.Media), query.Get(StateParam(item.ID)))
	controls := state.Controls(layout.EdgePolicy())

	card := cardView{
		ID:        item.ID,
		Controls:  controls,
		Nav:       controls.Total > 1,
		PrevLabel: m.PrevImage,
		NextLabel: m.NextImage,
	}
	if item.Name != nil {
		card.Name = *item.Name
	}
	if item.Date != nil {
		card.Date = *item.Date
	}
	if item.Description != nil {
		card.Description = *item.Description
	}

	if !controls.Visible {
		return card
	}

	card.Current = item.Media[state.Current]
	card.Alt = fmt.Sprintf(m.ImageAlt, state.Current+1, controls.Total)

	if card.Nav {
		card.PrevURL = stateURL(path, query, item.ID, controls.Prev)
		card.NextURL = stateURL(path, query, item.ID, controls.Next)
		for _, dot := range controls.Dots {
			card.Dots = append(card.Dots, dotView{
				URL:    stateURL(path, query, item.ID, dot.Index),
				Label:  fmt.Sprintf(m.GoToImage, dot.Index+1),
				Active: dot.Active,
			})
		}
	}

	return card
}

// stateURL keeps the other cards' state and anchors back to the card.
func stateURL(path string, query url.Values, itemID string, index int) string {
	next := url.Values{}
	for k, v := range query {
		next[k] = append([]string(nil), v...)
	}
	next.Set(StateParam(itemID), fmt.Sprintf("%d", index))

	return fmt.Sprintf("%s?%s#post-%s", path, next.Encode(), url.PathEscape(itemID))
}
