package domain

import (
	"strings"
	"time"
)

// Mode is the participation mode of a hackathon.
type Mode string

const (
	ModeOnline  Mode = "Online"
	ModeOffline Mode = "Offline"
)

// Confidence expresses how much the ingestion trusts a record's fields.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of high, medium or low.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// SourceType classifies where a listing came from.
type SourceType string

const (
	SourceInstitutional SourceType = "institutional"
	SourceCommunity     SourceType = "community"
	SourceAggregator    SourceType = "aggregator"
	SourceManual        SourceType = "manual"
)

// DateLayout is the on-disk format of start_date and end_date.
const DateLayout = "2006-01-02"

// Hackathon is the canonical record persisted in the dataset.
//
// A record is identified by (Source, ID). Once stored it is never rewritten,
// so UploadedAt is the time the listing was first observed.
type Hackathon struct {
	ID         string     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`
	College    string     `json:"college" bson:"college"`
	Location   string     `json:"location" bson:"location"`
	Mode       Mode       `json:"mode" bson:"mode"`
	StartDate  string     `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate    string     `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Source     string     `json:"source" bson:"source"`
	SourceType SourceType `json:"source_type" bson:"source_type"`
	SourceURL  string     `json:"source_url" bson:"source_url"`
	Confidence Confidence `json:"confidence" bson:"confidence"`
	UploadedAt time.Time  `json:"uploaded_at" bson:"uploaded_at"`
}

// Key returns the identity of the record.
func (h Hackathon) Key() Key {
	return Key{Source: h.Source, ID: h.ID}
}

// Key is the (source, id) identity shared by candidates and stored records.
type Key struct {
	Source string
	ID     string
}

func (k Key) String() string {
	return k.Source + "/" + k.ID
}

// Dataset is the ordered collection of stored records.
type Dataset []Hackathon

// Keys returns the set of identities present in the dataset.
func (d Dataset) Keys() map[Key]bool {
	keys := make(map[Key]bool, len(d))
	for _, h := range d {
		keys[h.Key()] = true
	}
	return keys
}

// Candidate is a partially populated record emitted by an adapter or by the
// extraction fallback. Empty fields mean "unknown" and are filled in by the
// normalizer.
type Candidate struct {
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string     `json:"name" yaml:"name"`
	College    string     `json:"college,omitempty" yaml:"college,omitempty"`
	Location   string     `json:"location,omitempty" yaml:"location,omitempty"`
	Mode       string     `json:"mode,omitempty" yaml:"mode,omitempty"`
	StartDate  string     `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate    string     `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	SourceType SourceType `json:"source_type,omitempty" yaml:"source_type,omitempty"`
	SourceURL  string     `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Confidence Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// RawTextInput is an unstructured announcement waiting for extraction.
// It is never persisted.
type RawTextInput struct {
	Source     string     `json:"source" yaml:"source"`
	SourceType SourceType `json:"source_type" yaml:"source_type"`
	SourceURL  string     `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	RawText    string     `json:"raw_text" yaml:"raw_text"`
}

// Empty reports whether there is nothing to extract from.
func (r RawTextInput) Empty() bool {
	return strings.TrimSpace(r.RawText) == ""
}

// SourceMeta describes the adapter a candidate came from. The normalizer uses
// it for any provenance field the candidate leaves empty.
type SourceMeta struct {
	Name       string
	Type       SourceType
	URL        string
	Confidence Confidence
}
