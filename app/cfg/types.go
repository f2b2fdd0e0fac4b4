package cfg

type Cfg struct {
	// Notion configuration
	NotionToken      string
	NotionDatabaseID string
	NotionAPIURL     string
	NotionVersion    string
	NotionTimeout    int
	NotionRateLimit  float64

	// Application configuration
	SchemaFile   string
	Port         string
	BaseUrl      string
	FeedURL      string
	Language     string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
