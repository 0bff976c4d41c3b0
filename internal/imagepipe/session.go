package imagepipe

import (
	"auction-client/utils"
)

// UploadSession is the short-lived image buffer owned by exactly one
// in-progress create/edit flow. The buffer moves through explicit
// transitions - Attach, Commit, Discard - instead of living in ambient form
// state, so navigating away or submitting always leaves nothing behind.
type UploadSession struct {
	SessionID string
	image     *CompressedImage
}

// NewUploadSession starts an empty session
func NewUploadSession() *UploadSession {
	return &UploadSession{SessionID: utils.GenerateID()}
}

// Attach runs the pipeline on a newly selected file and buffers the result,
// replacing any previously attached image. On failure the previous buffer is
// kept untouched.
func (s *UploadSession) Attach(data []byte, contentType string) (*CompressedImage, error) {
	img, err := Accept(data, contentType)
	if err != nil {
		return nil, err
	}
	s.image = img
	return img, nil
}

// Preview returns the buffered image without consuming it
func (s *UploadSession) Preview() (*CompressedImage, bool) {
	if s.image == nil {
		return nil, false
	}
	return s.image, true
}

// Commit consumes the buffer and returns the data URI to embed in the
// submission body. Returns false when nothing is attached.
func (s *UploadSession) Commit() (string, bool) {
	if s.image == nil {
		return "", false
	}
	uri := s.image.DataURI()
	s.image = nil
	return uri, true
}

// Discard drops the buffer. Safe to call repeatedly and on empty sessions.
func (s *UploadSession) Discard() {
	s.image = nil
}
