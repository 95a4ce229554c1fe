// Copyright (c) 2026, Timur Khurmatov
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// requestSchema validates the flat key/value argument record a host process
// supplies, replacing the reflection based argument declaration of older hosts
const requestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://filestate.khurmatov.dev/v1/request.json",
  "type": "object",
  "required": ["path", "content"],
  "properties": {
    "path": {"type": "string", "minLength": 1},
    "content": {"type": "string"},
    "owner": {"type": "string"},
    "group": {"type": "string"},
    "mode": {"type": "string", "pattern": "^(0[oO])?[0-7]{3,4}$"},
    "force": {"type": "boolean", "default": true},
    "backup": {"type": "boolean", "default": false},
    "diff": {"type": "boolean", "default": false},
    "check": {"type": "boolean", "default": false},
    "provider": {"type": "string"}
  },
  "additionalProperties": false
}`

var (
	compiledRequestSchema *jsonschema.Schema
	compileSchemaOnce     sync.Once
	compileSchemaErr      error
)

// ValidateRequestDocument validates a decoded host argument record against the
// request schema, the document is what json or yaml unmarshalling produces
func ValidateRequestDocument(doc any) error {
	compileSchemaOnce.Do(func() {
		schema, err := jsonschema.UnmarshalJSON(strings.NewReader(requestSchema))
		if err != nil {
			compileSchemaErr = err
			return
		}

		compiler := jsonschema.NewCompiler()
		err = compiler.AddResource("request.json", schema)
		if err != nil {
			compileSchemaErr = err
			return
		}

		compiledRequestSchema, compileSchemaErr = compiler.Compile("request.json")
	})
	if compileSchemaErr != nil {
		return fmt.Errorf("could not compile request schema: %w", compileSchemaErr)
	}

	err := compiledRequestSchema.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestInvalid, err)
	}

	return nil
}
