package models

import "time"

// MediaFile describes a stored upload. Media lives on the filesystem behind the
// media store capability; this struct is the API-facing record of one file.
type MediaFile struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	Filename     string    `json:"filename"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	Type         string    `json:"type"` // "image" or "video"
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
	UploadedBy   string    `json:"uploadedBy"`
}
