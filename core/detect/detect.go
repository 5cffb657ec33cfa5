// Package detect classifies a URL into one of the supported mapping services.
// Detection is substring based and never touches the network.
package detect

import (
	"strings"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// rule pairs a service with the URL fragments that identify it.
type rule struct {
	service   core.Service
	fragments []string
}

// rules are checked in order; the first service with a matching fragment wins.
var rules = []rule{
	{core.ServiceGoogle, []string{"maps.google.com", "maps.app.goo.gl", "goo.gl/maps"}},
	{core.ServiceApple, []string{"maps.apple.com"}},
	{core.ServiceAllTrails, []string{"alltrails.com"}},
}

// Detect returns the service the URL belongs to, or core.ServiceUnknown.
func Detect(rawURL string) core.Service {
	for _, r := range rules {
		for _, f := range r.fragments {
			if strings.Contains(rawURL, f) {
				return r.service
			}
		}
	}
	return core.ServiceUnknown
}

// Supported lists example URL forms for each service, for error messages.
func Supported() []string {
	return []string{
		"Google Maps: https://maps.google.com/... or https://maps.app.goo.gl/...",
		"Apple Maps: https://maps.apple.com/...",
		"AllTrails: https://www.alltrails.com/trail/...",
	}
}
