package service

import (
	"bytes"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveDesignArchive uploads custom designs to a Google Drive folder
type DriveDesignArchive struct {
	client   *drive.Service
	folderID string
}

// NewDriveDesignArchive creates a DriveDesignArchive.
// credentialsPath should be the path to the Service Account JSON file; extra options
// are appended after it (tests point the client at a fake endpoint).
func NewDriveDesignArchive(ctx context.Context, credentialsPath, folderID string, opts ...option.ClientOption) (*DriveDesignArchive, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is required")
	}

	var clientOpts []option.ClientOption
	if credentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	driveService, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveDesignArchive{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveDesignArchive implements DesignArchiveInterface
var _ DesignArchiveInterface = (*DriveDesignArchive)(nil)

// Backend names the archive in logs
func (a *DriveDesignArchive) Backend() string { return "drive" }

// Store uploads data as a new file in the archive folder and returns its view link
func (a *DriveDesignArchive) Store(ctx context.Context, name, mediaType string, data []byte) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: mediaType,
		Parents:  []string{a.folderID},
	}

	created, err := a.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload design %s: %w", name, err)
	}

	log.Printf("✓ Design uploaded to Drive: name=%s id=%s", name, created.Id)
	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return "https://drive.google.com/uc?id=" + created.Id, nil
}
