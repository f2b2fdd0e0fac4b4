package view

import (
	"golang.org/x/text/language"
)

// Messages is the UI text of one language.
type Messages struct {
	Title       string
	FeedTab     string
	GalleryTab  string
	Loading     string
	Empty       string
	ErrorPrefix string
	PrevImage   string
	NextImage   string
	GoToImage   string // format: image number
	ImageAlt    string // format: image number, total
}

var supportedLanguages = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var bundles = []Messages{
	{
		Title:       "Feed Notiongram",
		FeedTab:     "Feed",
		GalleryTab:  "Galeria",
		Loading:     "Carregando…",
		Empty:       "Nenhuma publicação para mostrar.",
		ErrorPrefix: "Erro ao carregar o feed:",
		PrevImage:   "Imagem anterior",
		NextImage:   "Próxima imagem",
		GoToImage:   "Ir para imagem %d",
		ImageAlt:    "Imagem %d de %d",
	},
	{
		Title:       "Notiongram Feed",
		FeedTab:     "Feed",
		GalleryTab:  "Gallery",
		Loading:     "Loading…",
		Empty:       "Nothing to show yet.",
		ErrorPrefix: "Failed to load the feed:",
		PrevImage:   "Previous image",
		NextImage:   "Next image",
		GoToImage:   "Go to image %d",
		ImageAlt:    "Image %d of %d",
	},
}

var matcher = language.NewMatcher(supportedLanguages)

// MatchLanguage picks the bundle for an Accept-Language header, falling back
// to the configured default language.
func MatchLanguage(acceptLanguage, fallback string) (language.Tag, Messages) {
	var prefs []language.Tag
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		prefs = append(prefs, tags...)
	}
	if tag, err := language.Parse(fallback); err == nil {
		prefs = append(prefs, tag)
	}

	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		index = 0
	}
	return supportedLanguages[index], bundles[index]
}
