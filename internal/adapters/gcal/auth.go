package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// newCalendarService builds an authenticated Calendar API client. A service
// account file takes precedence (headless/CI runs); otherwise a pre-issued
// OAuth token file is used for local runs.
func newCalendarService(ctx context.Context, serviceAccountFile, tokenFile string) (*calendar.Service, error) {
	if serviceAccountFile != "" {
		if _, err := os.Stat(serviceAccountFile); err != nil {
			return nil, fmt.Errorf("%w: service account file: %w", ErrCredentials, err)
		}
		svc, err := calendar.NewService(ctx,
			option.WithCredentialsFile(serviceAccountFile),
			option.WithScopes(calendar.CalendarScope),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
		}
		return svc, nil
	}

	if tokenFile == "" {
		return nil, fmt.Errorf("%w: no service account or token file configured", ErrCredentials)
	}

	token, err := readToken(tokenFile)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx,
		option.WithTokenSource(oauth2.StaticTokenSource(token)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
	}
	return svc, nil
}

// readToken loads an OAuth token in the JSON shape the Google auth flow
// writes out.
func readToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: token file: %w", ErrCredentials, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("%w: parsing token file: %w", ErrCredentials, err)
	}
	return &token, nil
}
