package book

// ToDTO converts a stored record into its outward representation
func ToDTO(r Record) DTO {
	return DTO{
		ID:     r.ID,
		Titulo: r.Titulo,
		Autor:  r.Autor,
		Ano:    r.Ano,
	}
}

// ToRecord converts an entity into the stored representation
func ToRecord(b Book) Record {
	return Record{
		ID:     b.ID,
		Titulo: b.Titulo,
		Autor:  b.Autor,
		Ano:    b.Ano,
	}
}

// FromDTO builds a new entity from a client payload; the ID is ignored
func FromDTO(d DTO) Book {
	return Book{
		Titulo: d.Titulo,
		Autor:  d.Autor,
		Ano:    d.Ano,
	}
}
