package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// document mirrors the YAML layout with pointer fields so a missing key can
// be told apart from an empty value. Both lists must be present; an explicit
// empty list is legal.
type document struct {
	Targets   *[]rawTarget   `yaml:"target" validate:"required,dive"`
	Endpoints *[]rawEndpoint `yaml:"endpoint" validate:"required,dive"`
}

type rawTarget struct {
	Module *string   `yaml:"module" validate:"required"`
	URL    *string   `yaml:"url" validate:"required"`
	Tags   *[]string `yaml:"tags"`
}

type rawEndpoint struct {
	Address *string `yaml:"address" validate:"required"`
	Geohash *string `yaml:"geohash" validate:"required"`
	Name    *string `yaml:"name" validate:"required"`
}

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}

// Load reads and parses the discovery document at path.
// Errors are *LoadError values matching ErrIO or ErrParse.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{Kind: KindIO, Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, &LoadError{Kind: KindParse, Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes a discovery document from YAML bytes, applying field defaults.
// The input must hold exactly one YAML document.
func Parse(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errors.New("document is empty")
		}
		return Config{}, fmt.Errorf("decode YAML: %w", err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return Config{}, errors.New("multiple YAML documents are not supported")
	case !errors.Is(err, io.EOF):
		return Config{}, fmt.Errorf("decode YAML: %w", err)
	}

	if err := validateDocument(doc); err != nil {
		return Config{}, err
	}

	return doc.build(), nil
}

func validateDocument(doc document) error {
	err := getValidator().Struct(doc)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate document: %w", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldPath(fe.Namespace())+" "+describe(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

// fieldPath drops the root struct name from a validator namespace,
// e.g. "document.target[1].url" becomes "target[1].url".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	return "is invalid"
}

func (d document) build() Config {
	targets, endpoints := *d.Targets, *d.Endpoints
	cfg := Config{
		Targets:   make([]Target, 0, len(targets)),
		Endpoints: make([]Endpoint, 0, len(endpoints)),
	}

	for _, rt := range targets {
		t := Target{
			Module: *rt.Module,
			URL:    *rt.URL,
		}
		if rt.Tags == nil {
			t.Tags = []string{DefaultTag}
		} else {
			t.Tags = append([]string{}, (*rt.Tags)...)
		}
		cfg.Targets = append(cfg.Targets, t)
	}

	for _, re := range endpoints {
		cfg.Endpoints = append(cfg.Endpoints, Endpoint{
			Address: *re.Address,
			Geohash: *re.Geohash,
			Name:    *re.Name,
		})
	}

	return cfg
}
