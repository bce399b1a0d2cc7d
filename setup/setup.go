package setup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
)

// ErrInvalidSetup indicates a setup file that does not match the schema.
// Errors carrying it also match [logger.ErrInvalidArgument].
var ErrInvalidSetup = errors.New("invalid setup")

// Setup describes the configuration of a [logger.Context].
type Setup struct {
	Levels             []string `json:"levels,omitempty"             yaml:"levels,omitempty"             jsonschema:"ordered level names, least severe first"`
	DefaultLevel       string   `json:"defaultLevel,omitempty"       yaml:"defaultLevel,omitempty"       jsonschema:"level used when a message has none"`
	DefaultTopic       string   `json:"defaultTopic,omitempty"       yaml:"defaultTopic,omitempty"       jsonschema:"topic used when a message has none"`
	DefaultLevelFilter string   `json:"defaultLevelFilter,omitempty" yaml:"defaultLevelFilter,omitempty" jsonschema:"level filter for views that set none"`
	DefaultTopicFilter []string `json:"defaultTopicFilter,omitempty" yaml:"defaultTopicFilter,omitempty" jsonschema:"topic filter for views that set none"`
	Views              []View   `json:"views,omitempty"              yaml:"views,omitempty"              jsonschema:"viewers to register, in order"`
}

// View describes one viewer.
type View struct {
	ID          string   `json:"id,omitempty"          yaml:"id,omitempty"          jsonschema:"viewer id; generated when empty"`
	Type        string   `json:"type"                  yaml:"type"                  jsonschema:"viewer kind"`
	LevelFilter string   `json:"levelFilter,omitempty" yaml:"levelFilter,omitempty" jsonschema:"minimum level shown"`
	TopicFilter []string `json:"topicFilter,omitempty" yaml:"topicFilter,omitempty" jsonschema:"topics shown; * matches any segment"`
	BlockViewer string   `json:"blockViewer,omitempty" yaml:"blockViewer,omitempty" jsonschema:"kind embedded by a window view"`
	CSSFile     string   `json:"cssFile,omitempty"     yaml:"cssFile,omitempty"     jsonschema:"stylesheet loaded by a window view"`
	Output      string   `json:"output,omitempty"      yaml:"output,omitempty"      jsonschema:"where the view writes: stdout, stderr or a file path"`
}

var resolved = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	return s.Resolve(nil)
})

// Schema returns the JSON Schema setup files are validated against.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Setup](nil)
	if err != nil {
		return nil, fmt.Errorf("generate setup schema: %w", err)
	}

	s.Title = "logview setup"

	return s, nil
}

// Parse validates and decodes a YAML (or JSON) setup document. An empty
// document yields an empty [Setup].
func Parse(data []byte) (*Setup, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Setup{}, nil
	}

	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidSetup, logger.ErrInvalidArgument, err)
	}

	var doc any

	err = json.Unmarshal(js, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidSetup, logger.ErrInvalidArgument, err)
	}

	schema, err := resolved()
	if err != nil {
		return nil, err
	}

	err = schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidSetup, logger.ErrInvalidArgument, err)
	}

	var s Setup

	err = json.Unmarshal(js, &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidSetup, logger.ErrInvalidArgument, err)
	}

	return &s, nil
}

// Load reads and parses the setup file at path.
func Load(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read setup: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// SurfaceFunc returns the surface a page-based view draws on.
type SurfaceFunc func(v View) (page.Surface, error)

// FileSurface is the default [SurfaceFunc]. It writes frames to stdout or
// stderr when Output names them, rewrites the file at Output otherwise, and
// returns no surface when Output is empty.
func FileSurface(v View) (page.Surface, error) {
	switch v.Output {
	case "":
		return nil, nil //nolint:nilnil // Viewers without a block report it themselves.
	case "stdout", "-":
		return page.NewWriter(os.Stdout), nil
	case "stderr":
		return page.NewWriter(os.Stderr), nil
	}

	return page.NewFile(v.Output), nil
}

// Apply configures lc. Levels replace the current sequence when given;
// non-empty defaults override the current ones; views are added in order.
// surfaces supplies each view's block and may be nil to use
// [FileSurface]. Apply stops at the first view that fails.
func (s *Setup) Apply(lc *logger.Context, surfaces SurfaceFunc) error {
	if surfaces == nil {
		surfaces = FileSurface
	}

	if len(s.Levels) > 0 {
		err := lc.SetLevels(s.Levels)
		if err != nil {
			return fmt.Errorf("set levels: %w", err)
		}
	}

	d := lc.Defaults()
	if s.DefaultLevel != "" {
		d.Level = s.DefaultLevel
	}

	if s.DefaultTopic != "" {
		d.Topic = s.DefaultTopic
	}

	if s.DefaultLevelFilter != "" {
		d.LevelFilter = s.DefaultLevelFilter
	}

	if s.DefaultTopicFilter != nil {
		d.TopicFilter = s.DefaultTopicFilter
	}

	lc.SetDefaults(d)

	for i, v := range s.Views {
		block, err := surfaces(v)
		if err != nil {
			return fmt.Errorf("view %d (%s): %w", i, v.Type, err)
		}

		_, err = lc.AddViewWithID(logger.ViewerOptions{
			Type:        v.Type,
			LevelFilter: v.LevelFilter,
			TopicFilter: v.TopicFilter,
			BlockViewer: v.BlockViewer,
			CSSFile:     v.CSSFile,
			Block:       block,
			Output:      consoleOutput(v.Output),
		}, logger.ViewerID(v.ID))
		if err != nil {
			return fmt.Errorf("view %d (%s): %w", i, v.Type, err)
		}
	}

	return nil
}

func consoleOutput(output string) io.Writer {
	if output == "stdout" || output == "-" {
		return os.Stdout
	}

	return nil
}
