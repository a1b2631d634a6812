package chi

import (
	"net/http"

	"github.com/marcelsud/bookshelf-api/user"
	"github.com/tidwall/gjson"
)

func (a *api) getUsers(w http.ResponseWriter, r *http.Request) error {
	all, err := a.users.List(r.Context())
	if err != nil {
		return err
	}
	if all == nil {
		all = []user.DTO{}
	}
	writeJSON(w, http.StatusOK, all)
	return nil
}

func (a *api) getUser(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	u, err := a.users.Get(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, u)
	return nil
}

func (a *api) postUser(w http.ResponseWriter, r *http.Request) error {
	obj, err := readObject(w, r)
	if err != nil {
		return err
	}
	if err := checkCreate(obj, userFields); err != nil {
		return err
	}
	d := user.DTO{
		Nome:  obj.Get("nome").String(),
		Ativo: obj.Get("ativo").Bool(),
	}
	if v, ok := present(obj, "saldo"); ok {
		saldo := v.Float()
		d.Saldo = &saldo
	}
	u, err := a.users.Create(r.Context(), d)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, u)
	return nil
}

func (a *api) patchUser(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	obj, err := readObject(w, r)
	if err != nil {
		return err
	}
	if err := checkUpdate(obj, userFields); err != nil {
		return err
	}
	u, err := a.users.Update(r.Context(), id, userPatch(obj))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, u)
	return nil
}

func (a *api) deleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := a.pathID(r)
	if err != nil {
		return err
	}
	u, err := a.users.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, u)
	return nil
}

func userPatch(obj gjson.Result) user.Patch {
	var p user.Patch
	if v, ok := present(obj, "nome"); ok {
		s := v.String()
		p.Nome = &s
	}
	if v, ok := present(obj, "ativo"); ok {
		b := v.Bool()
		p.Ativo = &b
	}
	if v, ok := present(obj, "saldo"); ok {
		f := v.Float()
		p.Saldo = &f
	}
	return p
}
