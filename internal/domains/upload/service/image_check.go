package service

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// checkImage rejects files that claim an image mime type but do not decode.
// Decoding the whole image is acceptable here: gallery photos are bounded by
// the upload size limit long before this runs.
func checkImage(data []byte) error {
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return ErrInvalidImage
	}
	return nil
}
