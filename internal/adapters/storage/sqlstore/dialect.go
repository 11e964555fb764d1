package sqlstore

import "strings"

// Dialect describe lo que cambia entre postgres y sqlite.
type Dialect struct {
	// Name es el dialecto de goose ("postgres", "sqlite3").
	Name string

	// Bind devuelve el placeholder n-ésimo (1-based).
	Bind func(n int) string

	// IsDuplicate reconoce la violación de PK/unique del driver.
	IsDuplicate func(err error) bool
}

// rebind reemplaza cada '?' por el placeholder del dialecto.
// Las queries de este paquete no tienen '?' dentro de literales.
func (d Dialect) rebind(query string) string {
	if d.Bind == nil {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Bind(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) isDuplicate(err error) bool {
	return err != nil && d.IsDuplicate != nil && d.IsDuplicate(err)
}
