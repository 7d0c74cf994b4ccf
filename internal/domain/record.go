package domain

import "time"

// IngestRecord is an inbound kwatch webhook payload, as received and
// before classification.
type IngestRecord struct {
	ID       string `db:"id"       json:"id"`
	Platform string `db:"platform" json:"platform"`

	// Query is the search query that surfaced this mention. It stands in
	// for the "title" half of the title+body article (see the combined
	// classification input built in internal/ingest.processOne) and is
	// combined with Content before classification.
	Query string `db:"query" json:"query"`

	DateTime   string    `db:"datetime"    json:"datetime"`
	Link       string    `db:"link"        json:"link"`
	Author     string    `db:"author"      json:"author"`
	Content    string    `db:"content"     json:"content"`
	Sentiment  string    `db:"sentiment"   json:"sentiment"`
	ReceivedAt time.Time `db:"received_at" json:"receivedAt"`
	Processed  bool      `db:"processed"   json:"processed"`
}

// DefaultSentiment is used when a webhook payload omits sentiment.
const DefaultSentiment = "neutral"

// ProcessedRecord is an IngestRecord that matched a brand rule, carrying
// the classification fields alongside the original record.
type ProcessedRecord struct {
	IngestRecord

	Topic      string `db:"topic"       json:"topic"`
	SubTopic   string `db:"sub_topic"   json:"subTopic"`
	QueryName  string `db:"query_name"  json:"queryName"`
	InternalID string `db:"internal_id" json:"internalId"`
}
