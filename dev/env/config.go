package devenv

// LiveApiConfig is read from dev/.state/live_api.json5 by tests that talk
// to the real remote API. Those tests skip when the file is absent.
type LiveApiConfig struct {
	BaseUrl  string `json:"base_url"`
	ApiKey   string `json:"api_key"`
	Username string `json:"username"`
	PostUrl  string `json:"post_url"`
}
