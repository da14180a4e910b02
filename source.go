package convex

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source abstracts over polymorphic document inputs. A Source yields one
// JSON-shaped tree (nil, bool, string, numbers, []any, map[string]any)
// ready for FromJSON.
type Source interface {
	Document() (any, error)
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

// YAMLBytes wraps a byte slice as a YAML Source. The decoded tree is
// normalized to JSON shape (string keys only) before decoding.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader wraps an io.Reader as a YAML Source.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

// DecodeFrom reads one document from src and decodes it into a canonical
// Value.
func DecodeFrom(src Source) (Value, error) {
	return DecodeFromWith(src, DecodeOpt{})
}

// DecodeFromWith decodes with explicit options.
func DecodeFromWith(src Source, opt DecodeOpt) (Value, error) {
	doc, err := src.Document()
	if err != nil {
		return nil, err
	}
	return FromJSONWith(doc, opt)
}

type jsonSource struct{ r io.Reader }

func (s jsonSource) Document() (any, error) {
	dec := json.NewDecoder(s.r)
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid JSON document", Cause: err}}
	}
	return out, nil
}

type yamlSource struct{ r io.Reader }

func (s yamlSource) Document() (any, error) {
	dec := yaml.NewDecoder(s.r)
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid YAML document", Cause: err}}
	}
	return yamlNormalizeValue(out), nil
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like trees recursively. Non-string map keys are
// carried through unconverted and surface as decode errors downstream.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
