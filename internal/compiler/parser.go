// Package compiler turns script documents (YAML or JSON) into statements.
package compiler

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/aretw0/tendril/internal/dto"
	"github.com/aretw0/tendril/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Legacy action names.
const (
	legacyDeclare = "gen-decl"
	legacyConnect = "wire-expr"
)

// Parser converts raw script bytes into statements.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a script. JSON is accepted since it is valid YAML.
// An empty document yields an empty statement list. Failures are returned as
// *domain.BuildError: Index -1 for document errors, the entry index otherwise.
func (p *Parser) Parse(data []byte) ([]domain.Statement, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Statement{}, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.BuildError{Index: -1, Err: fmt.Errorf("%w: %v", domain.ErrMalformedStatement, err)}
	}

	entries, err := entriesOf(raw)
	if err != nil {
		return nil, &domain.BuildError{Index: -1, Err: err}
	}

	stmts := make([]domain.Statement, 0, len(entries))
	for i, e := range entries {
		stmt, err := p.statement(e)
		if err != nil {
			return nil, &domain.BuildError{Index: i, Statement: stmt, Err: err}
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func entriesOf(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		var doc dto.ScriptDocument
		if err := decode(v, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedStatement, err)
		}
		out := make([]any, len(doc.Statements))
		for i, s := range doc.Statements {
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: script must be a list of statements, got %T", domain.ErrMalformedStatement, raw)
}

func (p *Parser) statement(raw any) (domain.Statement, error) {
	var e dto.ScriptEntry
	if err := decode(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedStatement, err)
	}

	action := e.Action
	switch action {
	case legacyDeclare:
		action = domain.ActionDeclare
	case legacyConnect:
		action = domain.ActionConnect
	case "":
		action = inferAction(e)
	}

	var stmt domain.Statement
	switch action {
	case domain.ActionDeclare:
		d, err := declaration(e)
		if err != nil {
			return nil, err
		}
		stmt = d
	case domain.ActionConnect:
		stmt = domain.Connection{From: e.From, To: e.To}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrMalformedStatement, e.Action)
	}

	if err := domain.Validate(stmt); err != nil {
		return stmt, err
	}
	return stmt, nil
}

func inferAction(e dto.ScriptEntry) string {
	switch {
	case e.Kind != "" || e.Type != "":
		return domain.ActionDeclare
	case e.From != (domain.Endpoint{}) || e.To != (domain.Endpoint{}):
		return domain.ActionConnect
	}
	return ""
}

func declaration(e dto.ScriptEntry) (domain.Declaration, error) {
	kind := e.Kind
	if kind == "" {
		kind = e.Type
	} else if e.Type != "" && e.Type != e.Kind {
		return domain.Declaration{}, fmt.Errorf("%w: kind %q and type %q disagree", domain.ErrMalformedStatement, e.Kind, e.Type)
	}

	ports := e.Ports
	if len(e.Params) > 0 {
		if len(ports) > 0 {
			return domain.Declaration{}, fmt.Errorf("%w: both ports and params given for %q", domain.ErrMalformedStatement, e.Name)
		}
		ports = e.Params
	}
	return domain.Declaration{Kind: kind, Name: e.Name, Ports: ports}, nil
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  endpointHook,
		ErrorUnused: true,
		Result:      output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var endpointType = reflect.TypeOf(domain.Endpoint{})

// endpointHook accepts the "generator.port" shorthand wherever an Endpoint is expected.
func endpointHook(from, to reflect.Type, data any) (any, error) {
	if to != endpointType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.ParseEndpoint(data.(string))
}
