package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/curerise/curerise-backend-go/config"
)

func getCloudinaryInstance(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
}

// UploadToCloudinary uploads an image into the given folder ("patients",
// "education") and returns its public URL.
func UploadToCloudinary(cfg *config.Config, file multipart.File, folder string) (string, error) {
	cld, err := getCloudinaryInstance(cfg)
	if err != nil {
		return "", fmt.Errorf("cloudinary config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	uploadResp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %v", err)
	}

	return uploadResp.SecureURL, nil
}

// DeleteFromCloudinary removes an image given its full URL.
func DeleteFromCloudinary(cfg *config.Config, imageURL string) error {
	cld, err := getCloudinaryInstance(cfg)
	if err != nil {
		return fmt.Errorf("cloudinary config error: %v", err)
	}

	publicID, err := extractPublicID(imageURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("delete error: %v", err)
	}

	return nil
}

var cloudinaryVersion = regexp.MustCompile(`^v\d+$`)

// extractPublicID pulls the Cloudinary public ID out of a delivery URL like
// https://res.cloudinary.com/demo/image/upload/v1234567890/patients/abc123.jpg
// (public ID: "patients/abc123").
func extractPublicID(imageURL string) (string, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")

	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(parts)-1 {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	rest := parts[uploadIdx+1:]
	if len(rest) > 1 && cloudinaryVersion.MatchString(rest[0]) {
		rest = rest[1:]
	}

	publicID := strings.TrimSuffix(path.Join(rest...), path.Ext(rest[len(rest)-1]))

	return publicID, nil
}
