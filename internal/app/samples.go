package app

type SampleImage struct {
	ID     string
	URL    string
	Prompt string
	Style  string
}

var sampleImages = []SampleImage{
	{"sample1", "https://images.unsplash.com/photo-1471666875520-c75081f42081", "Surreal landscape with floating islands", "abstract"},
	{"sample2", "https://images.unsplash.com/photo-1459908676235-d5f02a50184b", "Dreamy forest with luminescent elements", "painterly"},
	{"sample3", "https://images.unsplash.com/photo-1577083552792-a0d461cb1dd6", "Classical painting of mythological scene", "realistic"},
	{"sample4", "https://images.unsplash.com/photo-1578301978018-3005759f48f7", "Portrait in renaissance style", "painterly"},
	{"sample5", "https://images.unsplash.com/photo-1579541591970-e5780dc6b31f", "Abstract landscape with dramatic lighting", "abstract"},
	{"sample6", "https://images.unsplash.com/photo-1482160549825-59d1b23cb208", "Futuristic city with neon lights", "3d"},
	{"sample7", "https://images.unsplash.com/photo-1619472032094-eadb7ec01655", "Digital abstract composition with geometric shapes", "minimalist"},
	{"sample8", "https://images.unsplash.com/photo-1619472376731-3ca648a34b69", "Futuristic abstract art with flowing lines", "abstract"},
	{"sample9", "https://images.unsplash.com/photo-1619472351888-f844a0b33f5b", "Minimalist geometric composition in bold colors", "minimalist"},
	{"sample10", "https://images.unsplash.com/photo-1506097425191-7ad538b29cef", "Creative workspace with design elements", "realistic"},
	{"sample11", "https://images.unsplash.com/photo-1523726491678-bf852e717f6a", "Artistic design elements with bold colors", "abstract"},
	{"sample12", "https://images.unsplash.com/photo-1531403009284-440f080d1e12", "Digital creative workspace with geometric shapes", "minimalist"},
	{"sample13", "https://images.unsplash.com/photo-1471666875520-c75081f42081", "Digital art with natural elements", "painterly"},
}

// SampleImages returns up to n entries of the curated home page gallery.
func SampleImages(n int) []SampleImage {
	if n <= 0 || n > len(sampleImages) {
		n = len(sampleImages)
	}
	out := make([]SampleImage, n)
	copy(out, sampleImages[:n])
	return out
}
