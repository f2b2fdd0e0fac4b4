package api

import (
	"context"

	"github.com/lysyi3m/notiongram/app/feed"
	"github.com/lysyi3m/notiongram/app/view"
)

// Assembler produces the feed in upstream order for the JSON endpoint.
type Assembler interface {
	Run(ctx context.Context) ([]feed.Item, error)
}

type GeneratorInterface interface {
	Run(title string, items []feed.Item) (string, error)
}

var (
	_ Assembler          = (*feed.Service)(nil)
	_ GeneratorInterface = (*feed.Generator)(nil)
	_ view.Fetcher       = (*feed.Service)(nil)
)

type Handler struct {
	assembler Assembler
	pages     view.Fetcher
	renderer  *view.Renderer
	generator GeneratorInterface
	schemas   *feed.SchemaCache
	source    string
}
