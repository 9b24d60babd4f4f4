package tags

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	beepmp3 "github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
	"go.senan.xyz/taglib"
)

// Duration resolves a track's duration. Resolution order: a format-specific
// header read by extension, then TagLib stream properties, then decoding the
// stream to measure its length. Returns 0 when all readers fail.
func Duration(path string) time.Duration {
	if d, err := readHeaderDuration(path); err == nil && d > 0 {
		return d
	}
	if props, err := taglib.ReadProperties(path); err == nil && props.Length > 0 {
		return props.Length
	}
	if d, err := measureDuration(path); err == nil && d > 0 {
		return d
	}
	return 0
}

// readHeaderDuration extracts duration from container/stream headers without
// decoding audio frames.
func readHeaderDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	switch ext {
	case ExtMP3:
		return readMP3Duration(f)
	case ExtFLAC:
		return readFLACStreamInfoDuration(path)
	case ExtOGG:
		return readOggDuration(f)
	case ExtM4A, ExtMP4:
		return readM4ADuration(f)
	case ExtWAV:
		// The wav decoder only parses the RIFF header; Len is known up front.
		streamer, format, err := wav.Decode(f)
		if err != nil {
			return 0, err
		}
		defer streamer.Close()
		return format.SampleRate.D(streamer.Len()), nil
	}

	return 0, errors.New("no header reader for " + ext)
}

func readMP3Duration(f *os.File) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}
	sampleCount := max(decoder.SampleCount(), 0)

	return time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second)), nil
}

// readFLACStreamInfoDuration parses the STREAMINFO metadata block.
func readFLACStreamInfoDuration(path string) (time.Duration, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		return 0, err
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate: 20 bits starting at byte 10.
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		// Total samples: 36 bits, low nibble of byte 13 plus bytes 14-17.
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 |
			int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		if sampleRate <= 0 {
			return 0, errors.New("flac: invalid sample rate")
		}
		return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), nil
	}

	return 0, errors.New("flac: no streaminfo block")
}

// readOggDuration derives duration from the granule position of the last OGG
// page. Vorbis granule positions count PCM samples; the sample rate comes
// from the identification header in the first page.
func readOggDuration(f *os.File) (time.Duration, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// Identification header: "\x01vorbis" followed by version, channels,
	// and a 32-bit little-endian sample rate.
	head := make([]byte, 4096)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	head = head[:n]
	sampleRate := 0
	for i := 0; i+16 <= len(head); i++ {
		if head[i] == 0x01 && string(head[i+1:i+7]) == "vorbis" {
			off := i + 12
			sampleRate = int(head[off]) | int(head[off+1])<<8 | int(head[off+2])<<16 | int(head[off+3])<<24
			break
		}
	}
	if sampleRate <= 0 {
		return 0, errors.New("ogg: no vorbis identification header")
	}

	// Read the last 64KB to find the last OGG page.
	searchSize := min(int64(65536), fi.Size())
	buf := make([]byte, searchSize)
	n, err = f.ReadAt(buf, fi.Size()-searchSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	buf = buf[:n]

	// Search backwards for the OggS magic; granule position is the 8 bytes
	// little-endian at offset 6 of the page header.
	for i := len(buf) - 27; i >= 0; i-- {
		if buf[i] == 'O' && buf[i+1] == 'g' && buf[i+2] == 'g' && buf[i+3] == 'S' {
			if i+14 > len(buf) {
				continue
			}
			granule := int64(buf[i+6]) | int64(buf[i+7])<<8 | int64(buf[i+8])<<16 | int64(buf[i+9])<<24 |
				int64(buf[i+10])<<32 | int64(buf[i+11])<<40 | int64(buf[i+12])<<48 | int64(buf[i+13])<<56
			if granule > 0 {
				return time.Duration(float64(granule) / float64(sampleRate) * float64(time.Second)), nil
			}
		}
	}

	return 0, errors.New("ogg: could not locate last page")
}

func readM4ADuration(f *os.File) (time.Duration, error) {
	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	return container.Duration(), nil
}

// measureDuration decodes the stream with the playback decoders and derives
// the length from the sample count. Last resort: slower than a header read
// but works on files with damaged or absent headers.
func measureDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ExtMP3:
		streamer, format, err = beepmp3.Decode(f)
	case ExtFLAC:
		if err := skipID3v2(f); err != nil {
			return 0, err
		}
		streamer, format, err = beepflac.Decode(f)
	case ExtWAV:
		streamer, format, err = wav.Decode(f)
	case ExtOGG:
		streamer, format, err = vorbis.Decode(f)
	default:
		return 0, errors.New("unsupported format: " + ext)
	}
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
// Some FLAC files carry a prepended ID3 tag that confuses the decoder.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is stored as a syncsafe integer in bytes 6-9.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
