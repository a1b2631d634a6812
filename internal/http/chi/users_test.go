package chi

import (
	"context"
	"net/http"
	"testing"

	bookmocks "github.com/marcelsud/bookshelf-api/book/mocks"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/user"
	usermocks "github.com/marcelsud/bookshelf-api/user/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserHandler(t *testing.T, s *usermocks.UseCase) http.Handler {
	t.Helper()
	return Handlers(context.Background(), bookmocks.NewUseCase(t), s, Options{
		Logger: zerolog.Nop(),
		APIKey: testAPIKey,
		Scheme: ident.ObjectID,
	})
}

func TestPostUser(t *testing.T) {
	s := usermocks.NewUseCase(t)
	saldo := 10.0
	s.On("Create", mock.Anything, user.DTO{Nome: "Ana", Ativo: false, Saldo: &saldo}).
		Return(user.DTO{ID: "65f0c0ffee0ddba11ad0beef", Nome: "Ana", Saldo: &saldo}, nil)
	h := newUserHandler(t, s)

	w := do(t, h, http.MethodPost, "/users", `{"nome":"Ana","ativo":false,"saldo":10}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"65f0c0ffee0ddba11ad0beef","nome":"Ana","ativo":false,"saldo":10}`, w.Body.String())
}

func TestPostUser_Validation(t *testing.T) {
	cases := []struct {
		body    string
		message string
	}{
		{`{"nome":"Ana"}`, "Field 'ativo' is required"},
		{`{"nome":"Ana","ativo":"yes"}`, "Field 'ativo' must be a boolean"},
		{`{"nome":"Ana","ativo":true,"saldo":null}`, "Field 'saldo' must be a number"},
		{`{"nome":"Ana","ativo":true,"saldo":"10"}`, "Field 'saldo' must be a number"},
		{`{"nome":"Ana","ativo":true,"saldo":1e400}`, "Field 'saldo' must be a number"},
		{`{"nome":["Ana"],"saldo":1}`, "Field 'nome' must be a string, Field 'ativo' is required"},
		{`"Ana"`, "Request body must be a JSON object"},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			w := do(t, newUserHandler(t, usermocks.NewUseCase(t)), http.MethodPost, "/users", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decodeError(t, w).Error)
		})
	}
}

func TestPatchUser(t *testing.T) {
	s := usermocks.NewUseCase(t)
	const id = "65f0c0ffee0ddba11ad0beef"
	ativo := true
	s.On("Update", mock.Anything, id, user.Patch{Ativo: &ativo}).
		Return(user.DTO{ID: id, Nome: "Ana", Ativo: true}, nil)
	h := newUserHandler(t, s)

	w := do(t, h, http.MethodPatch, "/users/"+id, `{"ativo":true,"_id":"ignored"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"65f0c0ffee0ddba11ad0beef","nome":"Ana","ativo":true}`, w.Body.String())
}

func TestPatchUser_WrongType(t *testing.T) {
	w := do(t, newUserHandler(t, usermocks.NewUseCase(t)), http.MethodPatch, "/users/65f0c0ffee0ddba11ad0beef", `{"saldo":"muito"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Field 'saldo' must be a number", decodeError(t, w).Error)
}

func TestGetUser_MalformedObjectID(t *testing.T) {
	w := do(t, newUserHandler(t, usermocks.NewUseCase(t)), http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID must be a valid ObjectId", decodeError(t, w).Error)
}
