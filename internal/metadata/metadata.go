package metadata

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime returns when the photo was taken according to its EXIF data:
// DateTimeOriginal, falling back to DateTime. ok is false when the image has
// no EXIF block or no usable timestamp.
func CaptureTime(data []byte) (t time.Time, ok bool) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}
	t, err = x.DateTime()
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}
