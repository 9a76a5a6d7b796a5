package export

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-builder/internal/resume"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(resumeSchema)

// SchemaError lists the problems found in an imported document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidateDocument checks a data export against the resume schema.
func ValidateDocument(body []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &SchemaError{Problems: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return &SchemaError{Problems: problems}
}

// Import validates a data export and makes it the session resume. Export metadata is dropped.
func (s *Service) Import(ctx context.Context, sessionID string, body []byte) (resume.Resume, error) {
	if err := ValidateDocument(body); err != nil {
		return resume.Resume{}, err
	}
	var r resume.Resume
	if err := json.Unmarshal(body, &r); err != nil {
		return resume.Resume{}, &SchemaError{Problems: []string{fmt.Sprintf("decode: %v", err)}}
	}
	return s.Builder.SetResume(ctx, sessionID, r)
}
