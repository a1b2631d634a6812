package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/tidwall/gjson"
)

/*
* Os handlers só fazem parse, validação e serialização.
* Regras de negócio ficam no book.Service e status de erro no renderError.
 */

func (a *api) getBooks(w http.ResponseWriter, r *http.Request) error {
	all, err := a.books.List(r.Context())
	if err != nil {
		return err
	}
	if all == nil {
		all = []book.DTO{}
	}
	writeJSON(w, http.StatusOK, all)
	return nil
}

func (a *api) getBook(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	b, err := a.books.Get(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, b)
	return nil
}

func (a *api) postBook(w http.ResponseWriter, r *http.Request) error {
	obj, err := readObject(w, r)
	if err != nil {
		return err
	}
	if err := checkCreate(obj, bookFields); err != nil {
		return err
	}
	b, err := a.books.Create(r.Context(), book.DTO{
		Titulo: obj.Get("titulo").String(),
		Autor:  obj.Get("autor").String(),
		Ano:    obj.Get("ano").Float(),
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, b)
	return nil
}

func (a *api) patchBook(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	obj, err := readObject(w, r)
	if err != nil {
		return err
	}
	if err := checkUpdate(obj, bookFields); err != nil {
		return err
	}
	b, err := a.books.Update(r.Context(), id, bookPatch(obj))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, b)
	return nil
}

func (a *api) deleteBook(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	b, err := a.books.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, b)
	return nil
}

func bookPatch(obj gjson.Result) book.Patch {
	var p book.Patch
	if v, ok := present(obj, "titulo"); ok {
		s := v.String()
		p.Titulo = &s
	}
	if v, ok := present(obj, "autor"); ok {
		s := v.String()
		p.Autor = &s
	}
	if v, ok := present(obj, "ano"); ok {
		n := v.Float()
		p.Ano = &n
	}
	return p
}

// pathID returns the {id} URL parameter once it has the shape of the active scheme
func (a *api) pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if err := a.scheme.Validate(id); err != nil {
		return "", apperr.NewValidation(a.scheme.Message())
	}
	return id, nil
}
