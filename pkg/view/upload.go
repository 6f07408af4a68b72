package view

import (
	"encoding/base64"
	"strings"
)

// File is an image picked by the user, either selected or dropped.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsImage reports whether the declared media type is an image type.
func (f *File) IsImage() bool {
	return f != nil && strings.HasPrefix(f.MediaType, "image/")
}

// DataURL encodes the file the way an inline preview image source expects.
func (f *File) DataURL() string {
	return "data:" + f.MediaType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// UploadState is the visual state of the upload page. Each method is a
// synchronous transition with no I/O.
type UploadState struct {
	Selection  *File
	PreviewURL string
	Hover      bool

	UploadBoxVisible bool
	PreviewVisible   bool
	LoadingVisible   bool
	ResultsVisible   bool
	ErrorVisible     bool

	Result       *DetectionView
	ErrorMessage string
}

func NewUploadState() *UploadState {
	return &UploadState{UploadBoxVisible: true}
}

func (s *UploadState) DragOver() {
	s.Hover = true
}

func (s *UploadState) DragLeave() {
	s.Hover = false
}

// Drop clears the hover state and accepts f only if it is an image. It
// reports whether the selection changed.
func (s *UploadState) Drop(f *File) bool {
	s.Hover = false
	if !f.IsImage() {
		return false
	}
	s.Select(f)
	return true
}

// Select makes f the active selection and shows its preview.
func (s *UploadState) Select(f *File) {
	if f == nil {
		return
	}
	s.Selection = f
	s.PreviewURL = f.DataURL()
	s.UploadBoxVisible = false
	s.PreviewVisible = true
}

// Reset drops the selection and restores the initial visibility.
func (s *UploadState) Reset() {
	*s = *NewUploadState()
}

func (s *UploadState) BeginAnalysis() {
	s.PreviewVisible = false
	s.LoadingVisible = true
	s.ResultsVisible = false
	s.ErrorVisible = false
	s.Result = nil
	s.ErrorMessage = ""
}

func (s *UploadState) Succeed(v DetectionView) {
	s.LoadingVisible = false
	s.Result = &v
	s.ResultsVisible = true
}

func (s *UploadState) Fail(message string) {
	s.ErrorMessage = message
	s.ErrorVisible = true
	s.LoadingVisible = false
	s.PreviewVisible = false
}
