package api

import (
	"fmt"
	"net/url"
)

// --- Attachment Methods ---

func attachmentsPath(entityType, entityID string) string {
	return fmt.Sprintf("/api/attachments/%s/%s", url.PathEscape(entityType), url.PathEscape(entityID))
}

// ListAttachments fetches the documents addressed to one entity.
func (c *Client) ListAttachments(entityType, entityID string) ([]Attachment, error) {
	data, err := c.get(attachmentsPath(entityType, entityID))
	if err != nil {
		return nil, err
	}
	return decodeList[Attachment](data)
}

// GetAttachment fetches one attachment record by id.
func (c *Client) GetAttachment(id string) (*Attachment, error) {
	return getResource[Attachment](c, "/api/attachments", id)
}

// UploadAttachmentInput describes a new document or document version.
type UploadAttachmentInput struct {
	Name     string  `json:"name"`
	FileName string  `json:"file_name"`
	MimeType string  `json:"mime_type,omitempty"`
	Content  string  `json:"content"` // base64
	Metadata JSONMap `json:"metadata,omitempty"`
}

// UploadAttachment stores a new document for the entity.
func (c *Client) UploadAttachment(entityType, entityID string, input UploadAttachmentInput) (*Attachment, error) {
	data, err := c.post(attachmentsPath(entityType, entityID), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Attachment](data)
}

// UploadAttachmentVersion stores a new version of an existing document.
func (c *Client) UploadAttachmentVersion(attachmentID string, input UploadAttachmentInput) (*Attachment, error) {
	data, err := c.post(fmt.Sprintf("/api/attachments/%s/versions", url.PathEscape(attachmentID)), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Attachment](data)
}

// UpdateAttachmentMetadata replaces the free-form metadata of a document.
func (c *Client) UpdateAttachmentMetadata(id string, metadata JSONMap) (*Attachment, error) {
	data, err := c.patch("/api/attachments/"+url.PathEscape(id), map[string]JSONMap{"metadata": metadata})
	if err != nil {
		return nil, err
	}
	return decodeOne[Attachment](data)
}

// DeleteAttachment removes a document and all its versions.
func (c *Client) DeleteAttachment(id string) error {
	return deleteResource(c, "/api/attachments", id)
}
