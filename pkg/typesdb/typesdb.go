// Package typesdb parses the collectd types database, the textual schema
// that declares the ordered data sources of every metric-set.
package typesdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lyft/statsdwriter"
)

// ParseError describes a malformed line in a types database.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid types database line %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseSources parses the data-source field of a types database line.
//
// Sources are delimited by whitespace and, optionally, a comma right after
// each entry. Each source is a quadruple ds-name:ds-type:min:max, where
// ds-type is one of ABSOLUTE, COUNTER, DERIVE or GAUGE and min/max bound
// the valid value range ("U" for unbounded). Token order defines the
// positional index used to disambiguate multi-value samples.
func ParseSources(sources string) ([]statsdwriter.DataSource, error) {
	tokens := strings.Fields(strings.ReplaceAll(sources, ",", " "))
	out := make([]statsdwriter.DataSource, 0, len(tokens))
	for _, token := range tokens {
		fields := strings.Split(token, ":")
		if len(fields) != 4 {
			return nil, errors.Errorf("data-source %q must have exactly 4 colon-delimited fields, got %d", token, len(fields))
		}
		kind, err := statsdwriter.ParseSourceKind(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "data-source %q", token)
		}
		out = append(out, statsdwriter.DataSource{
			Name: fields[0],
			Kind: kind,
			Min:  fields[2],
			Max:  fields[3],
		})
	}
	return out, nil
}

// Parse reads a types database from r. path is used for error reporting
// only.
//
// Each line holds a metric-set name and its data-source list, split on the
// first run of whitespace. Blank lines and lines starting with '#' are
// skipped. A name that appears on more than one line keeps the last
// definition.
func Parse(r io.Reader, path string) (statsdwriter.Types, error) {
	types := statsdwriter.Types{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		split := strings.IndexAny(line, " \t")
		if split < 0 {
			return nil, &ParseError{
				Path: path,
				Line: lineno,
				Text: line,
				Err:  errors.New("missing data-source list"),
			}
		}
		sources, err := ParseSources(line[split:])
		if err != nil {
			return nil, &ParseError{
				Path: path,
				Line: lineno,
				Text: line,
				Err:  err,
			}
		}
		types[line[:split]] = sources
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read types database %s", path)
	}
	return types, nil
}

// ParseFile parses the types database at path.
func ParseFile(path string) (statsdwriter.Types, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open types database %s", path)
	}
	defer f.Close()
	return Parse(f, path)
}
