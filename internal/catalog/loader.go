package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/knowtest/internal/logger"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed topic.schema.json
var topicSchemaJSON []byte

const topicSchemaURL = "schema://knowtest/topic.json"

var (
	topicSchemaOnce sync.Once
	topicSchema     *jsonschema.Schema
	topicSchemaErr  error
)

func compiledTopicSchema() (*jsonschema.Schema, error) {
	topicSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(topicSchemaJSON))
		if err != nil {
			topicSchemaErr = fmt.Errorf("parse topic schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(topicSchemaURL, doc); err != nil {
			topicSchemaErr = fmt.Errorf("add topic schema: %w", err)
			return
		}
		topicSchema, topicSchemaErr = c.Compile(topicSchemaURL)
	})
	return topicSchema, topicSchemaErr
}

// LoadDir reads every topic file under dir. JSON files (.json) are checked
// against the topic schema before decoding; YAML files (.yaml, .yml) are
// decoded directly. Other files are ignored. Records are returned in path
// order with Source set.
func LoadDir(dir string, log *logger.Logger) ([]RawTopic, error) {
	if log == nil {
		log = logger.Nop()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("topic data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("topic data dir %s is not a directory", dir)
	}

	var paths []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	records := make([]RawTopic, 0, len(paths))
	for _, path := range paths {
		r, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	log.Debug("topic files loaded", "dir", dir, "files", len(records))
	return records, nil
}

// LoadFile reads a single topic file.
func LoadFile(path string) (RawTopic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawTopic{}, fmt.Errorf("read topic file: %w", err)
	}

	var r RawTopic
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		r, err = decodeJSONTopic(data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		return RawTopic{}, fmt.Errorf("unsupported topic file type: %s", path)
	}
	if err != nil {
		return RawTopic{}, &ValidationError{Source: path, Problems: []string{err.Error()}}
	}
	r.Source = path
	return r, nil
}

func decodeJSONTopic(data []byte) (RawTopic, error) {
	schema, err := compiledTopicSchema()
	if err != nil {
		return RawTopic{}, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return RawTopic{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return RawTopic{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var r RawTopic
	if err := json.Unmarshal(data, &r); err != nil {
		return RawTopic{}, fmt.Errorf("decode topic: %w", err)
	}
	return r, nil
}

// WriteJSON writes a topic record in the data file format.
func WriteJSON(path string, r RawTopic) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
