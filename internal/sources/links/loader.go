package links

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed data/links.yaml
var builtin []byte

// BuiltinName is reported as the source of the embedded directory.
const BuiltinName = "builtin"

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads and parses a directory file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath. An empty path selects the
// directory compiled into the binary.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file being loaded, or BuiltinName.
func (l *Loader) Path() string {
	if l.filePath == "" {
		return BuiltinName
	}
	return l.filePath
}

// Load reads and parses the directory file.
func (l *Loader) Load() (Config, error) {
	data := builtin
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read directory file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes directory YAML. A top-level mapping is the native format;
// a top-level sequence is a Homepage services.yaml.
func Parse(data []byte) (Config, error) {
	root, err := decodeRoot(data)
	if err == nil && root.Kind == yaml.MappingNode {
		var file File
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return Config{}, fmt.Errorf("failed to parse directory yaml: %w", err)
		}
		return Config{Native: &file}, nil
	}

	// Homepage template variables ({{HOMEPAGE_VAR_...}}) are not needed here,
	// and unquoted they are not valid YAML either.
	if hp, hpErr := decodeRoot(stripTemplateVariables(data)); hpErr == nil && hp.Kind == yaml.SequenceNode {
		var services ServicesConfig
		if err := hp.Decode(&services); err != nil {
			return Config{}, fmt.Errorf("failed to parse homepage services yaml: %w", err)
		}
		return Config{Homepage: services}, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to parse directory yaml: %w", err)
	}
	return Config{}, fmt.Errorf("failed to parse directory yaml: unexpected top-level node")
}

func decodeRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	return doc.Content[0], nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
