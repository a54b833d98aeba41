package services

import (
	"context"
	"errors"
	"testing"

	apperrors "markethub-messaging/pkg/errors"

	"github.com/google/uuid"
)

func TestPresignUploadWithoutStorage(t *testing.T) {
	svc := NewAttachmentService(nil)
	_, err := svc.PresignUpload(context.Background(), uuid.New(), "photo.jpg", "image/jpeg", 1024)
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("got %v, want ErrServiceUnavailable", err)
	}
}

func TestPresignDownloadWithoutStorage(t *testing.T) {
	svc := NewAttachmentService(nil)
	_, err := svc.PresignDownload(context.Background(), "conversations/x/file.pdf")
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("got %v, want ErrServiceUnavailable", err)
	}
}
