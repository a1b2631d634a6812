package chi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 1 << 20

type fieldType int

const (
	stringField fieldType = iota + 1
	numberField
	booleanField
)

// String completes "must be ..." in validation messages
func (t fieldType) String() string {
	switch t {
	case stringField:
		return "a string"
	case numberField:
		return "a number"
	case booleanField:
		return "a boolean"
	}
	return "valid"
}

func (t fieldType) matches(v gjson.Result) bool {
	switch t {
	case stringField:
		return v.Type == gjson.String
	case numberField:
		// 1e400 is valid JSON but overflows to +Inf
		return v.Type == gjson.Number && !math.IsInf(v.Num, 0) && !math.IsNaN(v.Num)
	case booleanField:
		return v.IsBool()
	}
	return false
}

type field struct {
	name     string
	typ      fieldType
	optional bool
}

var (
	bookFields = []field{
		{name: "titulo", typ: stringField},
		{name: "autor", typ: stringField},
		{name: "ano", typ: numberField},
	}
	userFields = []field{
		{name: "nome", typ: stringField},
		{name: "ativo", typ: booleanField},
		{name: "saldo", typ: numberField, optional: true},
	}
)

/* readObject reads the request body as a JSON object.
 * An empty body counts as {}.
 */
func readObject(w http.ResponseWriter, r *http.Request) (gjson.Result, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return gjson.Result{}, apperr.NewValidation("Request body must be a JSON object")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apperr.NewValidation("Request body must be a JSON object")
	}
	obj := gjson.ParseBytes(body)
	if !obj.IsObject() {
		return gjson.Result{}, apperr.NewValidation("Request body must be a JSON object")
	}
	return obj, nil
}

// checkCreate requires every non-optional field and type-checks all of them
func checkCreate(obj gjson.Result, fields []field) error {
	return checkFields(obj, fields, true)
}

// checkUpdate rejects an empty object and type-checks the fields that were sent
func checkUpdate(obj gjson.Result, fields []field) error {
	keys := 0
	obj.ForEach(func(_, _ gjson.Result) bool {
		keys++
		return false
	})
	if keys == 0 {
		return apperr.NewNoDataProvided("No data provided for update")
	}
	return checkFields(obj, fields, false)
}

func checkFields(obj gjson.Result, fields []field, requireAll bool) error {
	var problems []string
	for _, f := range fields {
		v := obj.Get(gjson.Escape(f.name))
		if !v.Exists() {
			if requireAll && !f.optional {
				problems = append(problems, fmt.Sprintf("Field '%s' is required", f.name))
			}
			continue
		}
		if !f.typ.matches(v) {
			problems = append(problems, fmt.Sprintf("Field '%s' must be %s", f.name, f.typ))
		}
	}
	if len(problems) > 0 {
		return apperr.NewValidation(strings.Join(problems, ", "))
	}
	return nil
}

// present returns the value of name when the client sent it
func present(obj gjson.Result, name string) (gjson.Result, bool) {
	v := obj.Get(gjson.Escape(name))
	return v, v.Exists()
}
