package config

// RendererType selects the engine used for documentation Markdown.
type RendererType string

const (
	RendererLite     RendererType = "lite"
	RendererGoldmark RendererType = "goldmark"
)

// Valid reports whether r names a known engine.
func (r RendererType) Valid() bool { return validRenderers[r] }

// Config is the top-level opsdash configuration, corresponding to .opsdash.yml.
type Config struct {
	APIBaseURL      string          `yaml:"api_base_url" koanf:"api_base_url"`
	Port            int             `yaml:"port" koanf:"port"`
	AllowAllOrigins bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeout  int             `yaml:"request_timeout" koanf:"request_timeout"` // seconds, 0 = no timeout
	Endpoints       EndpointsConfig `yaml:"endpoints" koanf:"endpoints"`
	Docs            DocsConfig      `yaml:"docs" koanf:"docs"`
	Source          SourceConfig    `yaml:"source" koanf:"source"`
	Events          EventsConfig    `yaml:"events" koanf:"events"`
}

// EndpointsConfig holds the backend paths the dashboard reads from.
type EndpointsConfig struct {
	Routes      string `yaml:"routes" koanf:"routes"`
	Source      string `yaml:"source" koanf:"source"`
	BISTResults string `yaml:"bist_results" koanf:"bist_results"`
	BISTRun     string `yaml:"bist_run" koanf:"bist_run"`
	DocFolders  string `yaml:"doc_folders" koanf:"doc_folders"`
	Document    string `yaml:"document" koanf:"document"`
	Events      string `yaml:"events" koanf:"events"`
}

// DocsConfig controls the documentation page.
type DocsConfig struct {
	Renderer RendererType `yaml:"renderer" koanf:"renderer"`
	Include  []string     `yaml:"include" koanf:"include"`
	Exclude  []string     `yaml:"exclude" koanf:"exclude"`
}

// SourceConfig controls highlighting of the backend source panel.
type SourceConfig struct {
	Language string `yaml:"language" koanf:"language"`
	Style    string `yaml:"style" koanf:"style"`
}

// EventsConfig controls the event log panel.
type EventsConfig struct {
	EmptyMessage string `yaml:"empty_message" koanf:"empty_message"`
}
