package config

// DefaultPort is the port the dashboard listens on unless configured.
const DefaultPort = 8000

// DefaultEndpoints mirrors the paths exposed by the backend server.
var DefaultEndpoints = EndpointsConfig{
	Routes:      "/api/documentation",
	Source:      "/ui/api/fastapi-source",
	BISTResults: "/ui/api/bist-results",
	BISTRun:     "/ui/api/bist-run",
	DocFolders:  "/ui/api/documentation-folders",
	Document:    "/ui/api/document",
	Events:      "/ui/api/events",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:      "http://localhost:8001",
		Port:            DefaultPort,
		AllowAllOrigins: true,
		Endpoints:       DefaultEndpoints,
		Docs: DocsConfig{
			Renderer: RendererLite,
			Include:  []string{"*"},
		},
		Source: SourceConfig{
			Language: "python",
			Style:    "github",
		},
		Events: EventsConfig{
			EmptyMessage: "No events recorded yet",
		},
	}
}
