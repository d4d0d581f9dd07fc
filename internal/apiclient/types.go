package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document formats understood by the backend document endpoint.
const (
	FormatSummaryMarkdown = "summary_markdown"
	FormatFullMarkdown    = "full_markdown"
)

// RouteDoc documents a single backend route.
type RouteDoc struct {
	Method      string `json:"method"`
	Route       string `json:"route"`
	Function    string `json:"function"`
	Description string `json:"description"`
	File        string `json:"file,omitempty"`
	ExampleCurl string `json:"example_curl"`
}

// RouteMap keeps routes in the order the backend listed them.
type RouteMap = orderedmap.OrderedMap[string, RouteDoc]

// NewRouteMap returns an empty RouteMap.
func NewRouteMap() *RouteMap { return orderedmap.New[string, RouteDoc]() }

// SourceFile is the backend's own source code.
type SourceFile struct {
	Source string `json:"source"`
	File   string `json:"file"`
}

// EndpointResult is one self-tested API endpoint.
type EndpointResult struct {
	Route      string `json:"route"`
	Method     string `json:"method"`
	Status     int    `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Code returns the HTTP status observed by the self test.
func (r EndpointResult) Code() int { return firstNonZero(r.Status, r.StatusCode) }

// PageResult is one self-tested dashboard page.
type PageResult struct {
	Page            string   `json:"page"`
	URL             string   `json:"url"`
	Status          int      `json:"status"`
	StatusCode      int      `json:"status_code,omitempty"`
	Success         bool     `json:"success"`
	HTMLValid       bool     `json:"html_valid"`
	MissingElements []string `json:"missing_elements"`
	Error           string   `json:"error,omitempty"`
}

// Code returns the HTTP status observed by the self test.
func (r PageResult) Code() int { return firstNonZero(r.Status, r.StatusCode) }

// DependencyResult is one probed external dependency.
type DependencyResult struct {
	Dependency string `json:"dependency"`
	Status     int    `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Code returns the HTTP status observed by the self test.
func (r DependencyResult) Code() int { return firstNonZero(r.Status, r.StatusCode) }

// BISTResults groups the built-in self test sub-results.
type BISTResults struct {
	Endpoints            []EndpointResult   `json:"endpoints"`
	DashboardPages       []PageResult       `json:"dashboard_pages"`
	ExternalDependencies []DependencyResult `json:"external_dependencies"`
}

// Folder is a documentation folder on the backend.
type Folder struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	FileCount   int    `json:"file_count"`
}

// Document is the content of one documentation file.
type Document struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Event is one entry of the backend's API event log.
type Event struct {
	Timestamp    Timestamp   `json:"timestamp"`
	Method       string      `json:"method"`
	Route        string      `json:"route"`
	Status       EventStatus `json:"status"`
	StatusCode   int         `json:"status_code,omitempty"`
	Success      *bool       `json:"success,omitempty"`
	ResponseSize int64       `json:"response_size,omitempty"`
}

// Code returns the HTTP status code of the event. Older backends only
// send a numeric status.
func (e Event) Code() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	n, _ := strconv.Atoi(string(e.Status))
	return n
}

// Class is the display class of the event: success, error or pending.
func (e Event) Class() string {
	switch e.Status {
	case "success":
		return "success"
	case "error":
		return "error"
	}
	if e.Success != nil {
		if *e.Success {
			return "success"
		}
		return "error"
	}
	return "pending"
}

// EventStatus is the status label of an event; numbers are kept as
// their decimal text.
type EventStatus string

func (s *EventStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = EventStatus(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("event status: %w", err)
	}
	*s = EventStatus(n.String())
	return nil
}

// Timestamp accepts Unix seconds (integer or fractional) or an ISO-8601
// string. Strings without a zone are UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, str); err == nil {
				t.Time = parsed
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp %q", str)
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	whole := int64(secs)
	t.Time = time.Unix(whole, int64((secs-float64(whole))*float64(time.Second))).UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}
