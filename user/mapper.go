package user

func ToDTO(r Record) DTO {
	return DTO{
		ID:    r.ID,
		Nome:  r.Nome,
		Ativo: r.Ativo,
		Saldo: copySaldo(r.Saldo),
	}
}

func ToRecord(u User) Record {
	return Record{
		ID:    u.ID,
		Nome:  u.Nome,
		Ativo: u.Ativo,
		Saldo: copySaldo(u.Saldo),
	}
}

func FromDTO(d DTO) User {
	return User{
		Nome:  d.Nome,
		Ativo: d.Ativo,
		Saldo: copySaldo(d.Saldo),
	}
}
