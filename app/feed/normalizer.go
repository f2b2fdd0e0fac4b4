package feed

import (
	"log/slog"

	"github.com/lysyi3m/notiongram/app/notion"
)

type Normalizer struct {
	props SchemaProperties
}

func NewNormalizer(props SchemaProperties) *Normalizer {
	return &Normalizer{props: props}
}

// Run maps one database record to an Item. It reports false when the record
// has no properties container; every other missing or malformed field
// degrades to an absent value.
func (n *Normalizer) Run(page notion.Page) (Item, bool) {
	if !page.HasProperties() {
		slog.Debug("Record without properties discarded", "id", page.ID)
		return Item{}, false
	}

	return Item{
		ID:          page.ID,
		Name:        n.extractName(page),
		Date:        n.extractDate(page),
		Description: n.extractDescription(page),
		Media:       n.extractMedia(page),
	}, true
}

func (n *Normalizer) extractName(page notion.Page) *string {
	prop, ok := page.PropertyOfType(n.props.Title, notion.TypeTitle)
	if !ok || len(prop.Title) == 0 {
		return nil
	}
	return strPtr(prop.Title[0].PlainText)
}

func (n *Normalizer) extractDescription(page notion.Page) *string {
	prop, ok := page.PropertyOfType(n.props.Description, notion.TypeRichText)
	if !ok || len(prop.RichText) == 0 {
		return nil
	}
	return strPtr(notion.PlainText(prop.RichText))
}

func (n *Normalizer) extractDate(page notion.Page) *string {
	prop, ok := page.PropertyOfType(n.props.Date, notion.TypeDate)
	if !ok || prop.Date == nil || prop.Date.Start == "" {
		return nil
	}

	date, err := ParseNotionDate(prop.Date.Start)
	if err != nil {
		slog.Debug("Malformed date ignored", "id", page.ID, "start", prop.Date.Start, "error", err)
		return nil
	}
	return strPtr(date.String())
}

func (n *Normalizer) extractMedia(page notion.Page) []string {
	media := []string{}

	prop, ok := page.Property(n.props.Media)
	if !ok {
		return media
	}

	switch prop.Type {
	case notion.TypeFiles:
		for _, file := range prop.Files {
			if url := file.UploadURL(); url != "" {
				media = append(media, url)
			}
		}
	case notion.TypeURL:
		if prop.URL != nil && *prop.URL != "" {
			media = append(media, *prop.URL)
		}
	}

	return media
}
