package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"markethub-messaging/internal/storage"
	apperrors "markethub-messaging/pkg/errors"

	"github.com/google/uuid"
)

const maxAttachmentBytes = 50 << 20

// AttachmentService issues presigned upload and download URLs for message
// attachments. Uploads happen client-side; the resulting storage key is
// carried on the message's attachment list.
type AttachmentService struct {
	storage *storage.Client
}

func NewAttachmentService(storage *storage.Client) *AttachmentService {
	return &AttachmentService{storage: storage}
}

type PresignUploadResult struct {
	StorageKey string
	UploadURL  string
	Headers    map[string]string
}

func (s *AttachmentService) PresignUpload(ctx context.Context, conversationID uuid.UUID, fileName, contentType string, fileSize int64) (PresignUploadResult, error) {
	if s.storage == nil {
		return PresignUploadResult{}, fmt.Errorf("%w: attachment storage not configured", apperrors.ErrServiceUnavailable)
	}
	if strings.TrimSpace(fileName) == "" {
		return PresignUploadResult{}, fmt.Errorf("%w: file name is required", apperrors.ErrInvalidInput)
	}
	if fileSize <= 0 || fileSize > maxAttachmentBytes {
		return PresignUploadResult{}, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", apperrors.ErrInvalidInput, maxAttachmentBytes)
	}

	key := fmt.Sprintf("conversations/%s/%s%s", conversationID, uuid.NewString(), strings.ToLower(path.Ext(fileName)))
	url, headers, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return PresignUploadResult{}, err
	}
	return PresignUploadResult{StorageKey: key, UploadURL: url, Headers: headers}, nil
}

func (s *AttachmentService) PresignDownload(ctx context.Context, storageKey string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: attachment storage not configured", apperrors.ErrServiceUnavailable)
	}
	if storageKey == "" {
		return "", fmt.Errorf("%w: storage key is required", apperrors.ErrInvalidInput)
	}
	return s.storage.PresignGet(ctx, storageKey)
}
