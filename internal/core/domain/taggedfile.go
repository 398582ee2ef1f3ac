package domain

import "time"

// Tag is a labelled marker on an uploaded file. Text is unique within a
// file; insertion order is preserved.
type Tag struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type TaggedFile struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	StoredName   string    `json:"storedName"`
	URL          string    `json:"url"`
	OfferID      string    `json:"offerId"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Tags         []Tag     `json:"tags"`
}

// FileSummary is the listing/search projection of a tagged file.
type FileSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (f TaggedFile) Summary() FileSummary {
	return FileSummary{ID: f.ID, Name: f.OriginalName, URL: f.URL}
}
