package googleapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DriveFile is a downloaded Drive file with the metadata needed to re-upload
// it elsewhere.
type DriveFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// FetchDriveFile downloads a Drive file's content along with its name and
// MIME type.
func (c *Client) FetchDriveFile(ctx context.Context, fileID string) (*DriveFile, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, errors.New("drive file id required")
	}

	var meta struct {
		Name     string `json:"name"`
		MimeType string `json:"mimeType"`
	}
	metaEndpoint := fmt.Sprintf("%s/drive/v3/files/%s?fields=name,mimeType", c.driveBaseURL, fileID)
	if err := c.getJSON(ctx, metaEndpoint, &meta); err != nil {
		return nil, fmt.Errorf("fetch drive metadata %s: %w", fileID, err)
	}

	endpoint := fmt.Sprintf("%s/drive/v3/files/%s?alt=media", c.driveBaseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive download returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read drive file %s: %w", fileID, err)
	}
	return &DriveFile{Name: meta.Name, MIMEType: meta.MimeType, Data: data}, nil
}
