package web

const (
	shortName       = "Gitbar"
	manifestName    = "Gitbar Podcast - Il dopolavoro digitale degli sviluppatori"
	siteDescription = "Il circolo del dopolavoro degli sviluppatori e ingegneri del software"
	manifestSummary = siteDescription + ". Chiacchiere su JavaScript, Rust, AI, DevOps, architetture e soft skills."
)

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

func newManifest() Manifest {
	return Manifest{
		Name:            manifestName,
		ShortName:       shortName,
		Description:     manifestSummary,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#000000",
		Icons: []ManifestIcon{
			{Src: "/icon.svg", Sizes: "any", Type: "image/svg+xml"},
		},
	}
}
