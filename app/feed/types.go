package feed

// Item is one normalized database record. Nil pointers encode as JSON null;
// Media is always an array.
type Item struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Date        *string  `json:"date"` // DD/MM/YYYY
	Description *string  `json:"description"`
	Media       []string `json:"media"`
}

// Schema configuration types

type Schema struct {
	Properties SchemaProperties `yaml:"properties" json:"properties"`
	Filters    []SchemaFilter   `yaml:"filters" json:"filters"`
}

// SchemaProperties names the Notion properties read for each feed field.
type SchemaProperties struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Date        string `yaml:"date" json:"date"`
	Media       string `yaml:"media" json:"media"`
}

type SchemaFilter struct {
	Field    string   `yaml:"field" json:"field"`
	Includes []string `yaml:"includes" json:"includes"`
	Excludes []string `yaml:"excludes" json:"excludes"`
}

func DefaultProperties() SchemaProperties {
	return SchemaProperties{
		Title:       "Name",
		Description: "Description",
		Date:        "Data",
		Media:       "Media",
	}
}

func strPtr(s string) *string {
	return &s
}
