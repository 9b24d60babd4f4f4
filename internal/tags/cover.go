package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacpicture"
	goflac "github.com/go-flac/go-flac"
)

// Sibling cover art filenames, tried in priority order.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// ExtractCoverArt resolves cover art for an audio file: the first embedded
// picture, then format-specific extraction when the generic reader fails,
// then sibling image files in the track's directory. Returns nil data when
// nothing resolves; it never fails.
func ExtractCoverArt(path string) (data []byte, mimeType string) {
	if data, mimeType = extractEmbeddedArt(path); data != nil {
		return data, mimeType
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		if data, mimeType = extractID3Picture(path); data != nil {
			return data, mimeType
		}
	case ExtFLAC:
		if data, mimeType = extractFLACPicture(path); data != nil {
			return data, mimeType
		}
	}

	return findFolderArt(filepath.Dir(path))
}

// extractEmbeddedArt reads the first embedded picture via the generic tag reader.
func extractEmbeddedArt(path string) (data []byte, mimeType string) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, ""
	}

	pic := m.Picture()
	if pic == nil {
		return nil, ""
	}
	return pic.Data, pic.MIMEType
}

// extractID3Picture reads the first APIC frame from an MP3 file.
func extractID3Picture(path string) (data []byte, mimeType string) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, ""
	}
	defer id3tag.Close()

	frames := id3tag.GetFrames(id3tag.CommonID("Attached picture"))
	for _, f := range frames {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		return pic.Picture, pic.MimeType
	}
	return nil, ""
}

// extractFLACPicture reads the first PICTURE metadata block from a FLAC file.
func extractFLACPicture(path string) (data []byte, mimeType string) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		return nil, ""
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		return pic.ImageData, pic.MIME
	}
	return nil, ""
}

// FolderArtPath returns the path of a sibling cover art file next to the
// track, or "" when its directory has none. Used where an on-disk path is
// needed instead of the image bytes (e.g. an MPRIS art URL).
func FolderArtPath(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, filename := range coverArtFilenames {
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// findFolderArt looks for common cover art files in the given directory.
func findFolderArt(dir string) (data []byte, mimeType string) {
	for _, filename := range coverArtFilenames {
		imgPath := filepath.Join(dir, filename)
		data, err := os.ReadFile(imgPath)
		if err != nil {
			continue
		}

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".png":
			mimeType = "image/png"
		default:
			mimeType = "application/octet-stream"
		}

		return data, mimeType
	}

	return nil, ""
}
