// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// DefaultAPIKeyDisplayName is the display name of the Maps key looked up
// through Application Default Credentials.
const DefaultAPIKeyDisplayName = "WardCheck Geocoding Key"

// APIKeyFromADC retrieves the secret of the API key named displayName from
// the project of the Application Default Credentials, or projectID when the
// credentials carry none.
func APIKeyFromADC(ctx context.Context, projectID, displayName string) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	if creds.ProjectID != "" {
		projectID = creds.ProjectID
	}

	if projectID == "" {
		return "", errors.New("no project ID in credentials or configuration")
	}

	if displayName == "" {
		displayName = DefaultAPIKeyDisplayName
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != displayName {
			continue
		}

		// ListKeys redacts the secret.
		log.Printf("Found key resource '%s', retrieving secret...", key.Name)

		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.Name})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key '%s' found but KeyString is empty", displayName)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("key with display name '%s' not found in project %s", displayName, projectID)
}
