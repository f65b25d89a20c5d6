package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Route
	}{
		{"verb then noun", "generate an image of a sunset", RouteImage},
		{"create picture", "create a picture for my blog post", RouteImage},
		{"make photo", "please make a photo of the Eiffel tower", RouteImage},
		{"draw illustration", "draw an illustration of a dragon", RouteImage},
		{"design infographic", "design an infographic about coffee", RouteImage},
		{"diagram", "make me a diagram of the water cycle", RouteImage},
		{"visual", "create a quick visual of the funnel", RouteImage},
		{"case insensitive", "GENERATE AN IMAGE of a boat", RouteImage},
		{"plain question", "what is the capital of France?", RouteChat},
		{"gap does not span newlines", "draw\nme\na picture of rain", RouteChat},
		{"noun before verb", "this image is nice, can you make it sharper?", RouteChat},
		{"verb without noun", "draw me a cat", RouteChat},
		{"noun without verb", "describe this picture", RouteChat},
		{"verb inside word", "regenerate the image", RouteChat},
		{"empty", "", RouteChat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "generate an image of a sunset"
	first := Classify(text)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
