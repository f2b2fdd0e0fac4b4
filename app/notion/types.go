package notion

import (
	"encoding/json"
	"fmt"
)

// Property type tags used by the feed.
const (
	TypeTitle    = "title"
	TypeRichText = "rich_text"
	TypeDate     = "date"
	TypeFiles    = "files"
	TypeURL      = "url"

	FileTypeFile     = "file"
	FileTypeExternal = "external"
)

type QueryRequest struct {
	PageSize int `json:"page_size,omitempty"`
}

type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Page is a database record. Properties stay raw until a caller asks for one
// by name, so unknown or malformed properties never fail the whole page.
// A nil Properties map means the record carried no usable properties container.
type Page struct {
	Object     string                     `json:"object"`
	ID         string                     `json:"id"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type RichText struct {
	Type      string  `json:"type"`
	PlainText string  `json:"plain_text"`
	Href      *string `json:"href"`
}

type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

type FileObject struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time"`
}

type File struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	File     *FileObject `json:"file"`
	External *FileObject `json:"external"`
}

type Property struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title"`
	RichText []RichText `json:"rich_text"`
	Date     *DateValue `json:"date"`
	Files    []File     `json:"files"`
	URL      *string    `json:"url"`
}

// APIError is the error object returned by the Notion API.
type APIError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return fmt.Sprintf("notion API error %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("notion API error %d", e.Status)
}
