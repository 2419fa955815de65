// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apispec retrieves and validates the OpenAPI document named by the
// content plan and shapes it into a lookup of operation summaries by
// endpoint path. Parsing and structural validation are delegated entirely
// to kin-openapi; this package only indexes the result.
package apispec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/pdiddy/docforge/internal/httputil"
)

// ErrSpec classifies an unreachable or structurally invalid OpenAPI
// document.
var ErrSpec = errors.New("invalid API specification")

// Operation is one HTTP method exposed on an endpoint path.
type Operation struct {
	Method  string
	Summary string
}

// Index is a read-only mapping from endpoint path to the operations the
// OpenAPI document declares for it, plus title and version for diagnostics.
type Index struct {
	Title   string
	Version string

	paths map[string][]Operation
}

// Operations returns the operations declared for path, sorted by method
// name, or nil when the path is absent from the document. An absent path is
// not an error; prompt construction simply emits no method sub-lines.
func (i *Index) Operations(path string) []Operation {
	if i == nil || i.paths == nil {
		return nil
	}
	return i.paths[path]
}

// Len reports the number of indexed endpoint paths.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.paths)
}

// Fetch retrieves the OpenAPI document at ref (an http(s) URL or a
// filesystem path), validates it, and builds the endpoint index. An empty
// ref yields an empty index: the content plan may be fully hand-authored
// with no API surface at all.
func Fetch(ctx context.Context, ref string, client *http.Client) (*Index, error) {
	if ref == "" {
		return &Index{}, nil
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	var (
		doc *openapi3.T
		err error
	)
	if isURL(ref) {
		var data []byte
		data, err = fetchURL(ctx, ref, client)
		if err != nil {
			return nil, fmt.Errorf("%w: fetching %s: %v", ErrSpec, ref, err)
		}
		doc, err = loader.LoadFromData(data)
	} else {
		doc, err = loader.LoadFromFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %v", ErrSpec, ref, err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: validating %s: %v", ErrSpec, ref, err)
	}

	return buildIndex(doc), nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// fetchURL downloads the document body, retrying on HTTP 429.
func fetchURL(ctx context.Context, ref string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func buildIndex(doc *openapi3.T) *Index {
	idx := &Index{paths: make(map[string][]Operation)}
	if doc.Info != nil {
		idx.Title = doc.Info.Title
		idx.Version = doc.Info.Version
	}

	if doc.Paths == nil {
		return idx
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		var ops []Operation
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			ops = append(ops, Operation{Method: method, Summary: op.Summary})
		}
		sort.Slice(ops, func(a, b int) bool { return ops[a].Method < ops[b].Method })
		idx.paths[path] = ops
	}
	return idx
}
