package gyazo

import (
	"fmt"
	"net/url"
)

// DefaultApp is the application name uploads are attributed to unless overridden
const DefaultApp = "https://github.com/s0up4200/gyazo"

// Credentials holds the credentials a client may use. Empty means absent.
type Credentials struct {
	Cookie string
	Device string
	Key    string
}

// Timestamp is the API's ISO-8601 creation time, eg. "2018-07-24T07:33:24.771Z"
type Timestamp = string

// Image is the media shape returned by the Gyazo API
type Image struct {
	ImageID      string    `json:"image_id"`
	PermalinkURL string    `json:"permalink_url"`
	ThumbURL     string    `json:"thumb_url,omitempty"`
	Type         string    `json:"type"`
	CreatedAt    Timestamp `json:"created_at"`
	Metadata     *Metadata `json:"metadata,omitempty"`
	OCR          *OCR      `json:"ocr,omitempty"`
}

// DownloadURL returns the canonical i.gyazo.com URL of the image's asset
func (i *Image) DownloadURL() string {
	return downloadURL(AssetURL, i.ImageID, i.Type)
}

func downloadURL(base, id, fileType string) string {
	if fileType == "mp4" {
		return fmt.Sprintf("%s/download/%s.mp4", base, id)
	}
	return fmt.Sprintf("%s/%s.%s", base, id, fileType)
}

// Metadata is the optional descriptive data attached to an image.
// Empty strings and missing values are equivalent.
type Metadata struct {
	App   string `json:"app,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
	Desc  string `json:"desc,omitempty"`
}

// IsEmpty reports whether every field of the metadata is empty
func (m *Metadata) IsEmpty() bool {
	return m == nil || (m.App == "" && m.Title == "" && m.URL == "" && m.Desc == "")
}

// OCR holds text recognized in an image
type OCR struct {
	Locale      string `json:"locale"`
	Description string `json:"description"`
}

// File is the normalized representation of an Image
type File struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt Timestamp `json:"created_at"`
	Download  string    `json:"download"`
	Permalink string    `json:"permalink"`
	Meta      *Metadata `json:"meta,omitempty"`
}

// Name returns the file name the asset is saved under by default
func (f *File) Name() string {
	return f.ID + "." + f.Type
}

// IsVideo reports whether the file is an mp4 asset
func (f *File) IsVideo() bool {
	return f.Type == "mp4"
}

// toFile normalizes an image whose type has already been resolved
func toFile(image Image, assetURL string) File {
	file := File{
		ID:        image.ImageID,
		Type:      image.Type,
		CreatedAt: image.CreatedAt,
		Download:  downloadURL(assetURL, image.ImageID, image.Type),
		Permalink: image.PermalinkURL,
	}
	if !image.Metadata.IsEmpty() {
		meta := *image.Metadata
		file.Meta = &meta
	}
	return file
}

// User represents the authenticated Gyazo user
type User struct {
	Email        string `json:"email"`
	IsPro        bool   `json:"is_pro"`
	IsTeam       bool   `json:"is_team"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	UID          string `json:"uid"`
}

// Upload describes how an upload is attributed
type Upload struct {
	App            string
	PublicMetadata bool
	// Anonymous suppresses sending the device identifier
	Anonymous bool
}

// NewUpload returns upload defaults with the given metadata visibility
func NewUpload(publicMetadata bool) Upload {
	return Upload{
		App:            DefaultApp,
		PublicMetadata: publicMetadata,
	}
}

// CGIUpload is the result of a CGI image upload
type CGIUpload struct {
	URL *url.URL
	// Device is the device identifier the upload was attributed to,
	// newly issued by the server when none was sent.
	Device string
}
