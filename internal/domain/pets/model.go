package pets

// Species es un conjunto abierto; estas son las que trae el seed.
const (
	SpeciesDog = "Dog"
	SpeciesCat = "Cat"
)

// Campos indexables (mismos nombres que en storage).
const (
	FieldSpecies   = "species"
	FieldOwnerName = "owner_name"
)

// Pet representa una mascota del catálogo.
// El ID lo asigna el seeder (1..7) o el repo (max+1) al crear vía API.
type Pet struct {
	ID        int64
	Name      string
	Species   string
	Age       int
	OwnerName string
}

// FieldValue devuelve el valor de un campo indexable.
func (p Pet) FieldValue(field string) (string, bool) {
	switch field {
	case FieldSpecies:
		return p.Species, true
	case FieldOwnerName:
		return p.OwnerName, true
	default:
		return "", false
	}
}
