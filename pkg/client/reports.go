package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ReportService handles report generation and history
type ReportService struct {
	client *Client
}

// GenerateRequest represents a report generation request. Extra carries
// optional input fields stored alongside the required ones.
type GenerateRequest struct {
	FullName    string
	DateOfBirth string
	Type        string
	Extra       map[string]interface{}
}

// HistoryPage is one page of the caller's reports
type HistoryPage struct {
	Reports    []Report   `json:"reports"`
	Pagination Pagination `json:"pagination"`
}

// Generate consumes one query and returns the stored report
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*Report, error) {
	input := make(map[string]interface{}, len(req.Extra)+2)
	for k, v := range req.Extra {
		input[k] = v
	}
	input["fullName"] = req.FullName
	input["dateOfBirth"] = req.DateOfBirth

	body := map[string]interface{}{"inputData": input}
	if req.Type != "" {
		body["type"] = req.Type
	}

	var rep Report
	if _, err := s.client.doRequest(ctx, "POST", "/api/tool/generate", body, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// History lists the caller's reports newest first
func (s *ReportService) History(ctx context.Context, opts *ListOptions) (*HistoryPage, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	path := "/api/dashboard/history"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var reports []Report
	env, err := s.client.doRequest(ctx, "GET", path, nil, &reports)
	if err != nil {
		return nil, err
	}

	page := &HistoryPage{Reports: reports}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// Delete removes one of the caller's reports
func (s *ReportService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/dashboard/history/%s", url.PathEscape(id))
	_, err := s.client.doRequest(ctx, "DELETE", path, nil, nil)
	return err
}
