package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/egypt/internal/egypt"
)

// Document is the structured form of a result. Big integers are decimal
// strings so no consumer loses precision.
type Document struct {
	Numerator    string       `json:"numerator,omitempty" yaml:"numerator,omitempty"`
	Denominator  string       `json:"denominator,omitempty" yaml:"denominator,omitempty"`
	Whole        string       `json:"whole,omitempty" yaml:"whole,omitempty"`
	Denominators []string     `json:"denominators,omitempty" yaml:"denominators,omitempty"`
	Terms        []string     `json:"terms,omitempty" yaml:"terms,omitempty"`
	Stats        *egypt.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Line         int          `json:"line,omitempty" yaml:"line,omitempty"`
	Error        string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewDocument converts res. In raw mode the symbolic terms go to Terms as
// "b,v,i,j", otherwise the unit denominators go to Denominators. A whole
// part is reported separately in both modes.
func NewDocument(res *egypt.Result, withStats bool) Document {
	doc := Document{
		Numerator:   res.Numerator.String(),
		Denominator: res.Denominator.String(),
	}
	if res.Raw {
		for _, t := range res.Symbolic {
			if t.IsWhole() {
				doc.Whole = t.Base.String()
				continue
			}
			doc.Terms = append(doc.Terms, t.String())
		}
	} else {
		for _, f := range res.Terms {
			if f.IsWhole() {
				doc.Whole = f.Num.String()
				continue
			}
			doc.Denominators = append(doc.Denominators, f.Den.String())
		}
	}
	if withStats {
		stats := res.Stats
		doc.Stats = &stats
	}
	return doc
}

func errorDocument(err error) Document {
	return Document{Line: errorLine(err), Error: errorText(err)}
}

// JSONFormatter writes one JSON object per result, one per line.
type JSONFormatter struct {
	Stats bool
}

// Format implements Formatter.
func (f JSONFormatter) Format(w io.Writer, res *egypt.Result) error {
	return json.NewEncoder(w).Encode(NewDocument(res, f.Stats))
}

// FormatError implements Formatter.
func (JSONFormatter) FormatError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(errorDocument(err))
}

// YAMLFormatter writes one YAML document per result, each starting with
// "---" so a stream of results stays a valid multi-document file.
type YAMLFormatter struct {
	Stats bool
}

// Format implements Formatter.
func (f YAMLFormatter) Format(w io.Writer, res *egypt.Result) error {
	return writeYAML(w, NewDocument(res, f.Stats))
}

// FormatError implements Formatter.
func (YAMLFormatter) FormatError(w io.Writer, err error) error {
	return writeYAML(w, errorDocument(err))
}

func writeYAML(w io.Writer, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
