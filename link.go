package vivian

// Link is a hyperlink discovered on a fetched page.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}
