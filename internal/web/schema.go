// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/authd/authd/internal/auth"
)

// Document names served under /v1/docs/{name}.
const (
	DocSignIn         = "sign_in"
	DocRegister       = "register"
	DocChangePassword = "change_password"
	DocAuthentication = "authentication"
	DocError          = "error"
)

const schemaBaseURL = "https://github.com/authd/authd/schemas/"

var documentTypes = map[string]struct {
	value any
	title string
}{
	DocSignIn:         {&auth.SignInRequest{}, "Sign-in request"},
	DocRegister:       {&auth.RegistrationRequest{}, "Registration request"},
	DocChangePassword: {&auth.ChangePasswordRequest{}, "Password change request"},
	DocAuthentication: {&auth.AuthenticationResult{}, "Authentication result"},
	DocError:          {&ErrorBody{}, "Error response"},
}

var printer = message.NewPrinter(language.English)

// Schemas holds the JSON-schema documents of the API bodies and their
// compiled validators.
type Schemas struct {
	documents map[string][]byte
	compiled  map[string]*jschema.Schema
}

// NewSchemas reflects and compiles every document.
func NewSchemas() (*Schemas, error) {
	s := &Schemas{
		documents: make(map[string][]byte, len(documentTypes)),
		compiled:  make(map[string]*jschema.Schema, len(documentTypes)),
	}

	r := jsonschema.Reflector{DoNotReference: true}
	c := jschema.NewCompiler()

	for name, doc := range documentTypes {
		schema := r.Reflect(doc.value)
		schema.ID = jsonschema.ID(schemaBaseURL + name + ".json")
		schema.Title = doc.title

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return nil, oops.Code("SCHEMA_INVALID").With("document", name).Wrap(err)
		}

		parsed, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, oops.Code("SCHEMA_INVALID").With("document", name).Wrap(err)
		}
		if err := c.AddResource(string(schema.ID), parsed); err != nil {
			return nil, oops.Code("SCHEMA_INVALID").With("document", name).Wrap(err)
		}
		compiled, err := c.Compile(string(schema.ID))
		if err != nil {
			return nil, oops.Code("SCHEMA_INVALID").With("document", name).Wrap(err)
		}

		s.documents[name] = data
		s.compiled[name] = compiled
	}
	return s, nil
}

// Names lists the document names in order.
func (s *Schemas) Names() []string {
	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Document returns the JSON-schema document for name.
func (s *Schemas) Document(name string) ([]byte, bool) {
	doc, ok := s.documents[name]
	return doc, ok
}

// Check verifies that body is JSON matching the named document.
// Failures are InvalidArgument errors.
func (s *Schemas) Check(name string, body []byte) error {
	compiled, ok := s.compiled[name]
	if !ok {
		return auth.Internal("unknown schema " + name)
	}

	inst, err := jschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return auth.InvalidArgument("malformed JSON body")
	}

	if err := compiled.Validate(inst); err != nil {
		return auth.InvalidArgument(describe(err))
	}
	return nil
}

// describe reduces a validation error to its first leaf cause.
func describe(err error) string {
	var ve *jschema.ValidationError
	if !errors.As(err, &ve) {
		return "request body does not match schema"
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return fmt.Sprintf("request body does not match schema at /%s: %s",
		strings.Join(ve.InstanceLocation, "/"), ve.ErrorKind.LocalizedString(printer))
}
