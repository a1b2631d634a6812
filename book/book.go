package book

/* Sobre pacotes
 *
 * Os pacotes devem fornecer algo e não conter algo (ex: modelos, utilitários, auxiliares).
 * O pacote book fornece o recurso "livro": entidade, regras de negócio e o contrato de persistência.
 */

/* Book is the domain entity, without tags.
 * ID stays empty until the repository assigns one.
 */
type Book struct {
	ID     string
	Titulo string
	Autor  string
	Ano    float64
}

/* Record is the persisted shape of a book.
 * Each backend converts it to its own wire format (JSON file entry, BSON document, Redis hash).
 */
type Record struct {
	ID     string
	Titulo string
	Autor  string
	Ano    float64
}

// DTO is the book as API clients see it
type DTO struct {
	ID     string  `json:"id"`
	Titulo string  `json:"titulo"`
	Autor  string  `json:"autor"`
	Ano    float64 `json:"ano"`
}

/* Patch carries a partial update. A nil field was not sent by the client.
 * There is no ID field on purpose: updates never touch the identifier.
 */
type Patch struct {
	Titulo *string
	Autor  *string
	Ano    *float64
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Titulo == nil && p.Autor == nil && p.Ano == nil
}

// Apply merges p over r and returns the result
func (p Patch) Apply(r Record) Record {
	if p.Titulo != nil {
		r.Titulo = *p.Titulo
	}
	if p.Autor != nil {
		r.Autor = *p.Autor
	}
	if p.Ano != nil {
		r.Ano = *p.Ano
	}
	return r
}

