package notion

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UnmarshalJSON never fails a record: a record that is not an object decodes
// to an empty page, and a properties value that is not an object leaves
// Properties nil so the record counts as having no container.
func (p *Page) UnmarshalJSON(data []byte) error {
	*p = Page{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	_ = json.Unmarshal(fields["object"], &p.Object)
	_ = json.Unmarshal(fields["id"], &p.ID)

	var props map[string]json.RawMessage
	if err := json.Unmarshal(fields["properties"], &props); err == nil {
		p.Properties = props
	}

	return nil
}

// UnmarshalJSON decodes list elements one at a time and drops the ones that
// fail, so one bad run or file entry keeps its siblings. A list field that is
// not a list still fails the property. Malformed date or url values decode
// to nil.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string            `json:"id"`
		Type     string            `json:"type"`
		Title    []json.RawMessage `json:"title"`
		RichText []json.RawMessage `json:"rich_text"`
		Date     json.RawMessage   `json:"date"`
		Files    []json.RawMessage `json:"files"`
		URL      json.RawMessage   `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Property{
		ID:       raw.ID,
		Type:     raw.Type,
		Title:    decodeEach[RichText](raw.Title),
		RichText: decodeEach[RichText](raw.RichText),
		Files:    decodeEach[File](raw.Files),
	}

	if len(raw.Date) > 0 {
		var date *DateValue
		if err := json.Unmarshal(raw.Date, &date); err == nil {
			p.Date = date
		}
	}
	if len(raw.URL) > 0 {
		var url *string
		if err := json.Unmarshal(raw.URL, &url); err == nil {
			p.URL = url
		}
	}

	return nil
}

func decodeEach[T any](raws []json.RawMessage) []T {
	if raws == nil {
		return nil
	}

	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// HasProperties reports whether the page carried a properties container.
func (p Page) HasProperties() bool {
	return p.Properties != nil
}

// Property decodes the named property. Missing, null or malformed
// properties report false.
func (p Page) Property(name string) (Property, bool) {
	raw, ok := p.Properties[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return Property{}, false
	}

	var prop Property
	if err := json.Unmarshal(raw, &prop); err != nil {
		return Property{}, false
	}
	return prop, true
}

// PropertyOfType decodes the named property only when its type tag matches.
func (p Page) PropertyOfType(name, propType string) (Property, bool) {
	prop, ok := p.Property(name)
	if !ok || prop.Type != propType {
		return Property{}, false
	}
	return prop, true
}

// PlainText joins the plain text of all runs without a separator.
func PlainText(runs []RichText) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.PlainText)
	}
	return sb.String()
}

// UploadURL returns the hosted URL of an uploaded file entry, or "" when the entry
// is not an upload or carries no URL.
func (f File) UploadURL() string {
	if f.Type != FileTypeFile || f.File == nil {
		return ""
	}
	return f.File.URL
}
