package fixtures

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/user"
)

var validate = newValidator()

// newValidator adds the "finite" tag: YAML can spell .inf and .nan, JSON clients cannot
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	if err != nil {
		panic(err)
	}
	return v
}

/* BookFixture is one book entry of a fixtures file.
 * Fields are pointers so a missing key can be told apart from a zero value.
 */
type BookFixture struct {
	Titulo *string  `yaml:"titulo" validate:"required"`
	Autor  *string  `yaml:"autor" validate:"required"`
	Ano    *float64 `yaml:"ano" validate:"required,finite"`
}

// UserFixture is one user entry; saldo is optional like in the API
type UserFixture struct {
	Nome  *string  `yaml:"nome" validate:"required"`
	Ativo *bool    `yaml:"ativo" validate:"required"`
	Saldo *float64 `yaml:"saldo" validate:"omitempty,finite"`
}

// Validate checks that every required field is present and numbers are finite
func (b BookFixture) Validate() error {
	return describe(validate.Struct(b))
}

func (u UserFixture) Validate() error {
	return describe(validate.Struct(u))
}

func (b BookFixture) DTO() book.DTO {
	return book.DTO{
		Titulo: *b.Titulo,
		Autor:  *b.Autor,
		Ano:    *b.Ano,
	}
}

func (u UserFixture) DTO() user.DTO {
	d := user.DTO{
		Nome:  *u.Nome,
		Ativo: *u.Ativo,
	}
	if u.Saldo != nil {
		s := *u.Saldo
		d.Saldo = &s
	}
	return d
}

// describe turns validator errors into "field 'x' is required" style messages
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "finite":
			problems = append(problems, fmt.Sprintf("field '%s' must be a finite number", name))
		default:
			problems = append(problems, fmt.Sprintf("field '%s' is %s", name, fe.Tag()))
		}
	}
	return errors.New(strings.Join(problems, ", "))
}
