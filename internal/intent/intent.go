// Package intent routes a submitted prompt to the backend call that should
// serve it. Classification is deliberately conservative: only prompts that
// clearly ask for a visual are routed to image generation, everything else
// is a conversational turn.
package intent

import "regexp"

// Route is the destination of a submitted prompt.
type Route int

const (
	RouteChat Route = iota
	RouteImage
)

// A generation verb followed later on the same line by a visual noun.
var imagePattern = regexp.MustCompile(`(?i)\b(generate|create|make|draw|design)\b.*\b(image|picture|photo|illustration|infographic|diagram|visual)\b`)

// Classify decides where a prompt should be sent. It is pure: same text,
// same route, no side effects.
func Classify(text string) Route {
	if imagePattern.MatchString(text) {
		return RouteImage
	}
	return RouteChat
}
