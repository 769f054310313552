package deck

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/deckmason/deckmason/pkg/errors"
)

// Archive layout. A deck file is a zip containing one manifest and one
// JSON document per slide, named by zero-padded index so lexical order
// equals slide order.
const (
	manifestName = "manifest.json"
	slideDir     = "slides/"
	slideNameFmt = "slides/slide-%03d.json"
)

// manifest is the top-level archive entry. Slide content lives in the
// per-slide files; the manifest only carries document-level facts.
type manifest struct {
	ID           string  `json:"id"`
	Generator    string  `json:"generator,omitempty"`
	WidthInches  float64 `json:"width_inches"`
	HeightInches float64 `json:"height_inches"`
	SlideCount   int     `json:"slide_count"`
}

// NewDeck creates an empty deck with a fresh artifact ID.
func NewDeck(widthInches, heightInches float64, generator string) *Deck {
	return &Deck{
		ID:           uuid.NewString(),
		Generator:    generator,
		WidthInches:  widthInches,
		HeightInches: heightInches,
	}
}

// Encode serializes the deck to its zip container.
func (d *Deck) Encode() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	m := manifest{
		ID:           d.ID,
		Generator:    d.Generator,
		WidthInches:  d.WidthInches,
		HeightInches: d.HeightInches,
		SlideCount:   len(d.Slides),
	}
	if err := writeJSON(zw, manifestName, m); err != nil {
		return nil, err
	}

	for i := range d.Slides {
		name := fmt.Sprintf(slideNameFmt, d.Slides[i].Index)
		if err := writeJSON(zw, name, &d.Slides[i]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeArtifactWrite, err, "close archive")
	}
	return buf.Bytes(), nil
}

// WriteTo encodes the deck and writes it to w.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Open decodes a deck from its zip container. The result is a plain
// read-back model: Open makes no assumptions about which tool produced
// the archive beyond the container layout itself.
func Open(data []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArtifactCorrupt, err, "open archive")
	}

	var d Deck
	var foundManifest bool
	var slideFiles []*zip.File

	for _, f := range zr.File {
		switch {
		case f.Name == manifestName:
			var m manifest
			if err := readJSON(f, &m); err != nil {
				return nil, err
			}
			d.ID = m.ID
			d.Generator = m.Generator
			d.WidthInches = m.WidthInches
			d.HeightInches = m.HeightInches
			foundManifest = true
		case len(f.Name) > len(slideDir) && f.Name[:len(slideDir)] == slideDir:
			slideFiles = append(slideFiles, f)
		}
	}

	if !foundManifest {
		return nil, errors.New(errors.ErrCodeArtifactCorrupt, "archive has no %s", manifestName)
	}

	// Zero-padded names make lexical order the slide order, but sort
	// defensively in case the archive was rewritten by another tool.
	sort.Slice(slideFiles, func(i, j int) bool { return slideFiles[i].Name < slideFiles[j].Name })

	d.Slides = make([]Slide, 0, len(slideFiles))
	for _, f := range slideFiles {
		var s Slide
		if err := readJSON(f, &s); err != nil {
			return nil, err
		}
		d.Slides = append(d.Slides, s)
	}

	return &d, nil
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeArtifactWrite, err, "create %s", name)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeArtifactWrite, err, "encode %s", name)
	}
	return nil
}

func readJSON(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return errors.Wrap(errors.ErrCodeArtifactCorrupt, err, "open %s", f.Name)
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeArtifactCorrupt, err, "decode %s", f.Name)
	}
	return nil
}
