package chart

import (
	"encoding/binary"
	"errors"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// exifHeader prefixes the TIFF structure inside a JPEG APP1 segment.
const exifHeader = "Exif\x00\x00"

// errNotJPEG is returned when the encoded image lacks a JPEG SOI marker.
var errNotJPEG = errors.New("data is not a jpeg image")

// exifTag is a single IFD0 ASCII tag.
type exifTag struct {
	name  string
	value string
}

// encodeEXIF builds a TIFF-structured EXIF block holding tags in IFD0.
// Tags with an empty value are skipped.
func encodeEXIF(tags []exifTag) ([]byte, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exif.NewTagIndex()
	ib := exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	for _, t := range tags {
		if t.value == "" {
			continue
		}
		if err := ib.AddStandardWithName(t.name, t.value); err != nil {
			return nil, fmt.Errorf("tag %s: %w", t.name, err)
		}
	}

	return exif.NewIfdByteEncoder().EncodeToExif(ib)
}

// stampEXIF inserts an APP1 EXIF segment right after the JPEG SOI marker.
func stampEXIF(jpegData []byte, tags []exifTag) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, errNotJPEG
	}

	raw, err := encodeEXIF(tags)
	if err != nil {
		return nil, err
	}

	// The segment length counts itself but not the marker.
	size := 2 + len(exifHeader) + len(raw)
	if size > 0xFFFF {
		return nil, fmt.Errorf("exif segment too large: %d bytes", size)
	}

	out := make([]byte, 0, len(jpegData)+size+2)
	out = append(out, jpegData[:2]...)
	out = append(out, 0xFF, 0xE1)
	out = binary.BigEndian.AppendUint16(out, uint16(size))
	out = append(out, exifHeader...)
	out = append(out, raw...)
	out = append(out, jpegData[2:]...)
	return out, nil
}
