package fetch

const (
	// DefaultUserAgent is the minimal agent sent to the maps services.
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultBrowserUserAgent is a full desktop Chrome agent.
	DefaultBrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// MinimalHeaders returns a header set carrying only a User-Agent.
func MinimalHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{"User-Agent": userAgent}
}

// BrowserHeaders returns the header set a desktop browser sends when
// navigating to a page from the given referer.
func BrowserHeaders(userAgent, referer string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultBrowserUserAgent
	}
	h := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
	if referer != "" {
		h["Referer"] = referer
	}
	return h
}
