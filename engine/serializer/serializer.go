package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/animation"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
)

// Indent is the per-level indentation of serialized documents.
const Indent = "    "

// Serializer turns a request and its samples into a canonical JSON document.
// Keys are written in lexicographic order at every level, numbers as plain decimals, and the
// output for a given input is byte-identical across runs.
type Serializer interface {
	// BuildDocument assembles the document value without encoding it.
	//
	// Parameters:
	//   - req: the export request supplying id, flags, name and type
	//   - frames: the sampled frames, strictly increasing by FrameIndex
	//
	// Returns:
	//   - animation.Document: the document, with values rounded to the configured precision
	//   - error: animation.ErrUnsupportedAnimationType, or an *animation.EncodingError for a non-finite
	//     value or a negative frame index
	BuildDocument(req animation.Request, frames []animation.FrameSample) (animation.Document, error)

	// Serialize builds and encodes the document.
	//
	// Parameters:
	//   - req: the export request
	//   - frames: the sampled frames
	//
	// Returns:
	//   - []byte: UTF-8 JSON with four-space indentation and no trailing newline
	//   - error: see BuildDocument; encoder failures wrap animation.ErrEncoding
	Serialize(req animation.Request, frames []animation.FrameSample) ([]byte, error)

	// WriteFile writes data to path, creating or truncating the file. With WithCreateDirs the
	// missing parent directories are created first.
	//
	// Parameters:
	//   - path: the destination file
	//   - data: the serialized document
	//
	// Returns:
	//   - error: nil or an *animation.FileWriteError
	WriteFile(path string, data []byte) error

	// Precision returns the number of decimals values are rounded to, or -1 for no rounding.
	Precision() int
}

type serializer struct {
	precision  int
	createDirs bool
	logger     *slog.Logger
}

var _ Serializer = &serializer{}

// NewSerializer creates a Serializer. By default values keep their shortest round-trip representation.
//
// Parameters:
//   - options: functional options to configure the serializer
//
// Returns:
//   - Serializer: the configured serializer
func NewSerializer(options ...SerializerBuilderOption) Serializer {
	s := &serializer{
		precision: -1,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *serializer) Precision() int {
	return s.precision
}

func (s *serializer) BuildDocument(req animation.Request, frames []animation.FrameSample) (animation.Document, error) {
	tag, err := req.Type.Tag()
	if err != nil {
		return animation.Document{}, err
	}

	if err := checkFrames(frames); err != nil {
		return animation.Document{}, err
	}

	out := make([]animation.FrameSample, len(frames))
	for i, f := range frames {
		out[i] = animation.FrameSample{
			FrameIndex:  f.FrameIndex,
			Rotation:    s.round(f.Rotation),
			Scale:       s.round(f.Scale),
			Translation: s.round(f.Translation),
		}
	}

	return animation.Document{
		Commands:      []animation.Command{},
		Frames:        out,
		ID:            req.ID,
		Looping:       req.Looping,
		Name:          req.DocumentName(),
		ResetWhenDone: req.ResetWhenDone,
		Type:          tag,
	}, nil
}

func (s *serializer) Serialize(req animation.Request, frames []animation.FrameSample) ([]byte, error) {
	doc, err := s.BuildDocument(req, frames)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		s.logger.Warn("animation has no name, writing placeholder", "id", req.ID, "name", doc.Name)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", animation.ErrEncoding, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s *serializer) WriteFile(path string, data []byte) error {
	if s.createDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return &animation.FileWriteError{Path: path, Err: err}
		}
	}
	return WriteFile(path, data)
}

func (s *serializer) round(v animation.Vec3) animation.Vec3 {
	if s.precision < 0 {
		return v
	}
	return animation.Vec3{
		common.RoundTo(v[0], s.precision),
		common.RoundTo(v[1], s.precision),
		common.RoundTo(v[2], s.precision),
	}
}

// checkFrames rejects non-finite values, negative frame indices and frames that are not strictly increasing.
func checkFrames(frames []animation.FrameSample) error {
	for i, f := range frames {
		if f.FrameIndex < 0 {
			return animation.NewFrameIndexError(f.FrameIndex)
		}
		if i > 0 && f.FrameIndex <= frames[i-1].FrameIndex {
			return fmt.Errorf("%w: frame %d follows frame %d", animation.ErrEncoding, f.FrameIndex, frames[i-1].FrameIndex)
		}
		for _, path := range model.ChannelPaths {
			for axis, v := range f.Get(path) {
				if !common.IsFinite(v) {
					return animation.NewEncodingError(f.FrameIndex, path, axis, v)
				}
			}
		}
	}
	return nil
}
