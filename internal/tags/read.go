package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads display tags from a music file.
// It never fails: when no reader can parse the file, the returned Tag
// carries the file name as title.
func Read(path string) *Tag {
	if t, err := readDhowden(path); err == nil {
		return t
	}

	// dhowden/tag has issues with some UTF-16 encoded ID3 tags and some
	// ffmpeg-created containers; fall back per format.
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ExtMP3 {
		if t, err := readMP3WithID3v2(path); err == nil {
			return t
		}
	}
	if t, err := readWithTaglib(path); err == nil {
		return t
	}

	return &Tag{Path: path, Title: filepath.Base(path)}
}

func readDhowden(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}
	track, _ := m.Track()

	return &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		Album:       m.Album(),
		Year:        m.Year(),
		TrackNumber: track,
	}, nil
}

func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	title := id3tag.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	t := &Tag{
		Path:   path,
		Title:  title,
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
	}

	if year := id3tag.GetTextFrame(id3tag.CommonID("Year")).Text; len(year) >= 4 {
		t.Year, _ = strconv.Atoi(year[:4])
	}
	if trck := id3tag.GetTextFrame(id3tag.CommonID("Track number/Position in set")).Text; trck != "" {
		if idx := strings.Index(trck, "/"); idx > 0 {
			trck = trck[:idx]
		}
		t.TrackNumber, _ = strconv.Atoi(trck)
	}

	return t, nil
}

func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}

	title := first(rawTags[taglib.Title])
	if title == "" {
		title = filepath.Base(path)
	}

	t := &Tag{
		Path:   path,
		Title:  title,
		Artist: first(rawTags[taglib.Artist]),
		Album:  first(rawTags[taglib.Album]),
	}

	if date := first(rawTags[taglib.Date]); len(date) >= 4 {
		t.Year, _ = strconv.Atoi(date[:4])
	}
	if trck := first(rawTags[taglib.TrackNumber]); trck != "" {
		if idx := strings.Index(trck, "/"); idx > 0 {
			trck = trck[:idx]
		}
		t.TrackNumber, _ = strconv.Atoi(trck)
	}

	return t, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
