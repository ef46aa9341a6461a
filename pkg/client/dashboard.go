package client

import "context"

// DashboardService handles account stats and the profile
type DashboardService struct {
	client *Client
}

// Stats retrieves usage for the current account
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if _, err := s.client.doRequest(ctx, "GET", "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Profile retrieves the current account
func (s *DashboardService) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if _, err := s.client.doRequest(ctx, "GET", "/api/dashboard/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the display name
func (s *DashboardService) UpdateProfile(ctx context.Context, name string) (*Profile, error) {
	var profile Profile
	if _, err := s.client.doRequest(ctx, "PUT", "/api/dashboard/profile", map[string]string{"name": name}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
