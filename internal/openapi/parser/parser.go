// Package parser turns OpenAPI 3 documents into the schema IR using
// kin-openapi.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-roleform/pkg/schema"
)

// Options tunes parsing.
type Options struct {
	// Validate runs the kin-openapi document validator after loading.
	Validate bool
	// AllowPartialDocuments accepts documents without any operations.
	AllowPartialDocuments bool
}

// Parser extracts form operations from OpenAPI documents.
type Parser struct {
	options Options
}

func New(options Options) *Parser {
	return &Parser{options: options}
}

var bodyMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parse loads raw (JSON or YAML) and returns one form per operation that
// declares a request body. Forms are keyed by operationId, falling back to
// "<method>:<path>".
func (p *Parser) Parse(ctx context.Context, raw []byte) (schema.Set, error) {
	if err := ctx.Err(); err != nil {
		return schema.Set{}, err
	}
	if len(raw) == 0 {
		return schema.Set{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Set{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return schema.Set{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	set := schema.NewSet()
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if form, ok := formFromOperation(method, path, op); ok {
					set.Forms[form.ID] = form
				}
			}
		}
	}
	if len(set.Forms) == 0 && !p.options.AllowPartialDocuments {
		return schema.Set{}, errors.New("openapi parser: no operations with a request body")
	}
	return set, nil
}

func formFromOperation(method, path string, op *openapi3.Operation) (schema.Form, bool) {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return schema.Form{}, false
	}
	body, ok := requestSchema(op.RequestBody.Value.Content)
	if !ok {
		return schema.Form{}, false
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	return schema.Form{
		ID:          id,
		Method:      strings.ToUpper(method),
		Endpoint:    path,
		Summary:     op.Summary,
		Description: op.Description,
		Schema:      body,
		Extensions:  formExtensions(op.Extensions),
	}, true
}

func requestSchema(content openapi3.Content) (schema.Schema, bool) {
	for _, mediaType := range bodyMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convert(mt.Schema), true
		}
	}
	return schema.Schema{}, false
}

func convert(ref *openapi3.SchemaRef) schema.Schema {
	if ref == nil {
		return schema.Schema{}
	}
	if ref.Value == nil {
		return schema.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	out := schema.Schema{
		Ref:              ref.Ref,
		Type:             schemaType(src.Type),
		Format:           src.Format,
		Title:            src.Title,
		Description:      src.Description,
		Default:          src.Default,
		ExclusiveMinimum: src.ExclusiveMin,
		ExclusiveMaximum: src.ExclusiveMax,
		Pattern:          src.Pattern,
		Extensions:       formExtensions(src.Extensions),
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]schema.Schema, len(src.Properties))
		for name, prop := range src.Properties {
			out.Properties[name] = convert(prop)
		}
	}
	if src.Items != nil {
		items := convert(src.Items)
		out.Items = &items
	}
	if src.Min != nil {
		v := *src.Min
		out.Minimum = &v
	}
	if src.Max != nil {
		v := *src.Max
		out.Maximum = &v
	}
	if src.MinLength != 0 {
		v := int(src.MinLength)
		out.MinLength = &v
	}
	if src.MaxLength != nil {
		v := int(*src.MaxLength)
		out.MaxLength = &v
	}
	if src.MinItems != 0 {
		v := int(src.MinItems)
		out.MinItems = &v
	}
	for _, part := range src.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		for key, value := range formExtensions(part.Value.Extensions) {
			if out.Extensions == nil {
				out.Extensions = make(map[string]any)
			}
			out.Extensions[key] = value
		}
	}
	return out
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, ",")
}

// ExtensionNamespace prefixes every extension the builder reads.
const ExtensionNamespace = "x-roleform"

// formExtensions keeps "x-roleform" (a map) and "x-roleform-*" keys.
func formExtensions(raw map[string]any) map[string]any {
	var out map[string]any
	for key, value := range raw {
		if key != ExtensionNamespace && !strings.HasPrefix(key, ExtensionNamespace+"-") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		if nested, ok := value.(map[string]any); ok {
			cloned := make(map[string]any, len(nested))
			for k, v := range nested {
				cloned[k] = v
			}
			value = cloned
		}
		out[key] = value
	}
	return out
}
