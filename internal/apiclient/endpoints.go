package apiclient

import (
	"context"
	"net/url"
)

// Routes fetches the backend route documentation, in backend order.
func (c *Client) Routes(ctx context.Context) (*RouteMap, error) {
	var resp struct {
		Routes *RouteMap `json:"routes"`
	}
	if err := c.GetJSON(ctx, c.endpoints.Routes, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Routes == nil {
		return nil, &AppError{Message: "Invalid documentation format"}
	}
	return resp.Routes, nil
}

// Source fetches the backend's source code.
func (c *Client) Source(ctx context.Context) (*SourceFile, error) {
	var resp SourceFile
	if err := c.GetJSON(ctx, c.endpoints.Source, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type bistResponse struct {
	Results *BISTResults `json:"results"`
}

// BISTResults fetches the most recent self test results.
func (c *Client) BISTResults(ctx context.Context) (*BISTResults, error) {
	var resp bistResponse
	if err := c.GetJSON(ctx, c.endpoints.BISTResults, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, &AppError{Message: "No BIST results found"}
	}
	return resp.Results, nil
}

// RunBIST asks the backend to run its self test and returns the results.
func (c *Client) RunBIST(ctx context.Context) (*BISTResults, error) {
	var resp bistResponse
	if err := c.PostJSON(ctx, c.endpoints.BISTRun, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, &AppError{Message: "Unknown error"}
	}
	return resp.Results, nil
}

// DocumentationFolders lists the documentation folders.
func (c *Client) DocumentationFolders(ctx context.Context) ([]Folder, error) {
	var resp struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.GetJSON(ctx, c.endpoints.DocFolders, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Folders == nil {
		return nil, &AppError{Message: "Failed to load documentation folders"}
	}
	return resp.Folders, nil
}

// Document fetches a folder's document in the given format.
func (c *Client) Document(ctx context.Context, folder, format string) (*Document, error) {
	q := url.Values{}
	q.Set("folder", folder)
	q.Set("document", folder)
	q.Set("format", format)

	var resp Document
	if err := c.GetJSON(ctx, c.endpoints.Document, q, &resp); err != nil {
		return nil, err
	}
	if resp.Content == "" {
		return nil, &AppError{Message: "document has no content"}
	}
	return &resp, nil
}

// Events fetches the recent API event log.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var resp struct {
		Events []Event `json:"events"`
	}
	if err := c.GetJSON(ctx, c.endpoints.Events, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Events == nil {
		return nil, &AppError{Message: "Invalid events format"}
	}
	return resp.Events, nil
}
