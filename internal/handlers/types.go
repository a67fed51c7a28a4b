package handlers

// CreateShortURLRequest is the request body for creating a short URL.
// longURL presence is checked in the handler rather than by the schema so the
// error message stays a plain "longURL is required".
type CreateShortURLRequest struct {
	Body struct {
		LongURL  string `doc:"The URL to shorten"                                  example:"https://example.com/very/long/path" json:"longURL,omitempty"`
		Strategy string `doc:"Code derivation strategy; defaults to the configured one" example:"sha256"                        json:"strategy,omitempty"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Body struct {
		ShortURL string `doc:"The full short URL" example:"http://localhost:8888/abc123" json:"shortURL"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse redirects the client to the stored long URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
