package ingest

// Response is the news API's everything-endpoint envelope.
type Response struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
}

// RawArticle is an article exactly as the news API emits it. Retracted
// content shows up with a nil author and "[Removed]" placeholders.
type RawArticle struct {
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}
