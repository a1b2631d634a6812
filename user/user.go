package user

/* User is the domain entity.
 * Saldo is optional: nil means the user never had a balance, which is not the same as 0.
 */
type User struct {
	ID    string
	Nome  string
	Ativo bool
	Saldo *float64
}

// Record is the persisted shape of a user
type Record struct {
	ID    string
	Nome  string
	Ativo bool
	Saldo *float64
}

// DTO is the user as API clients see it
type DTO struct {
	ID    string   `json:"id"`
	Nome  string   `json:"nome"`
	Ativo bool     `json:"ativo"`
	Saldo *float64 `json:"saldo,omitempty"`
}

// Patch carries a partial update; nil fields were not sent
type Patch struct {
	Nome  *string
	Ativo *bool
	Saldo *float64
}

func (p Patch) IsEmpty() bool {
	return p.Nome == nil && p.Ativo == nil && p.Saldo == nil
}

// Apply merges p over r and returns the result
func (p Patch) Apply(r Record) Record {
	if p.Nome != nil {
		r.Nome = *p.Nome
	}
	if p.Ativo != nil {
		r.Ativo = *p.Ativo
	}
	if p.Saldo != nil {
		r.Saldo = copySaldo(p.Saldo)
	}
	return r
}

func copySaldo(s *float64) *float64 {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
