// Package record models the raw document records returned by the Confluence
// search API. Depending on the endpoint, a record is either a flat content
// record or a thin wrapper with the content nested under a "content" key;
// the resolver methods absorb that difference so no caller branches on shape.
package record

// Space identifies the Confluence space a record belongs to.
type Space struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

// Version carries the last-modification metadata of a record.
type Version struct {
	When string `json:"when,omitempty"`
}

// Links holds the web links attached to a record.
type Links struct {
	WebUI string `json:"webui,omitempty"`
	Self  string `json:"self,omitempty"`
}

// Record is one remote search hit, flat or content-nested.
type Record struct {
	ID           string   `json:"id,omitempty"`
	Type         string   `json:"type,omitempty"`
	Status       string   `json:"status,omitempty"`
	Title        string   `json:"title,omitempty"`
	Excerpt      string   `json:"excerpt,omitempty"`
	URL          string   `json:"url,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	Space        *Space   `json:"space,omitempty"`
	Version      *Version `json:"version,omitempty"`
	Links        *Links   `json:"_links,omitempty"`
	Content      *Record  `json:"content,omitempty"`
}

// ResolveID returns the document identifier, preferring the nested content
// record. Empty string means the record cannot be deduplicated.
func (r *Record) ResolveID() string {
	if r.Content != nil && r.Content.ID != "" {
		return r.Content.ID
	}
	return r.ID
}

// ResolveTitle returns the document title, preferring the nested content record.
func (r *Record) ResolveTitle() string {
	if r.Content != nil && r.Content.Title != "" {
		return r.Content.Title
	}
	return r.Title
}

// ResolveSpaceKey returns the space key, preferring the nested content record.
func (r *Record) ResolveSpaceKey() string {
	if r.Content != nil && r.Content.Space != nil && r.Content.Space.Key != "" {
		return r.Content.Space.Key
	}
	if r.Space != nil {
		return r.Space.Key
	}
	return ""
}

// ResolveLastModified returns the last-modification timestamp. Search results
// carry it at the top level; content records carry it under version.when.
func (r *Record) ResolveLastModified() string {
	if r.LastModified != "" {
		return r.LastModified
	}
	if r.Content != nil && r.Content.Version != nil {
		return r.Content.Version.When
	}
	if r.Version != nil {
		return r.Version.When
	}
	return ""
}

// ResolveURL returns the pre-built absolute page URL, preferring the top-level
// value set at ingestion.
func (r *Record) ResolveURL() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Content != nil {
		return r.Content.URL
	}
	return ""
}

// WebUIPath returns the relative web link, preferring the nested content record.
func (r *Record) WebUIPath() string {
	if r.Links != nil && r.Links.WebUI != "" {
		return r.Links.WebUI
	}
	if r.Content != nil && r.Content.Links != nil {
		return r.Content.Links.WebUI
	}
	return ""
}
