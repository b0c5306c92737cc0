package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"artifai/internal/ai"
	"artifai/internal/logging"
	"artifai/internal/model"
)

var imageGenerations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "artifai_image_generations_total",
		Help: "Image generation attempts by style and outcome",
	},
	[]string{"style", "outcome"},
)

var stylePrefixes = map[string]string{
	"abstract":   "Create an abstract art piece with vibrant colors and geometric shapes: ",
	"realistic":  "Create a photorealistic image with intricate details: ",
	"anime":      "Create an anime-style illustration with vibrant colors: ",
	"painterly":  "Create a painting in the style of a classical artist with visible brushstrokes: ",
	"3d":         "Create a 3D rendered image with strong lighting and textures: ",
	"minimalist": "Create a minimalist design with clean lines and limited color palette: ",
}

// GenerationResult is either Success with a URL or a failure with the
// provider's error text.
type GenerationResult struct {
	Success bool
	URL     string
	Error   string
}

// ImageGenerator adapts a prompt and style to a single provider call.
type ImageGenerator struct {
	client ai.ImageClient
}

func NewImageGenerator(client ai.ImageClient) *ImageGenerator {
	return &ImageGenerator{client: client}
}

// ApplyStyle prepends the style's instruction to prompt. Unknown styles and
// "default" leave the prompt as is.
func ApplyStyle(prompt, style string) string {
	if style == "" || style == model.DefaultStyle {
		return prompt
	}
	if prefix, ok := stylePrefixes[style]; ok {
		return prefix + prompt
	}
	return prompt
}

// Generate makes exactly one provider call. Provider failures are logged and
// returned in the result, never as a panic or error.
func (g *ImageGenerator) Generate(ctx context.Context, prompt, style, size string) GenerationResult {
	log := logging.FromContext(ctx)
	styleLabel := style
	if _, ok := stylePrefixes[style]; !ok {
		styleLabel = model.DefaultStyle
	}

	start := time.Now()
	url, err := g.client.CreateImage(ctx, ai.ImageRequest{
		Prompt: ApplyStyle(prompt, style),
		Size:   size,
	})
	if err != nil {
		imageGenerations.WithLabelValues(styleLabel, "failure").Inc()
		log.Error().Err(err).Str("style", style).Str("size", size).Msg("error generating image")
		return GenerationResult{Success: false, Error: err.Error()}
	}

	imageGenerations.WithLabelValues(styleLabel, "success").Inc()
	log.Info().
		Str("style", style).
		Str("size", size).
		Dur("elapsed", time.Since(start)).
		Msg("image generated")
	return GenerationResult{Success: true, URL: url}
}
