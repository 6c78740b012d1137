package model

// Subscription is a single tracked feed. Title is the identity key,
// NumEpisodes is a snapshot captured at subscribe time and is not
// re-synced afterwards.
type Subscription struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	NumEpisodes int    `json:"num_episodes"`
}

// Episode metadata as published in a feed. Every field is optional,
// an empty string means the feed did not provide the value.
type Episode struct {
	Title        string
	EnclosureURL string
	MIMEType     string
}

// Podcast is a transient snapshot of a fetched feed. Episodes keep
// feed order (newest first). Never persisted, rebuilt on demand.
type Podcast struct {
	Title    string
	Episodes []Episode
}
