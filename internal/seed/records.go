package seed

import "petdb/internal/domain/pets"

// Nombres lógicos fijos del store que se inicializa.
const (
	DatabaseName   = "petdb"
	CollectionName = "pets"
)

// IndexedFields son los dos índices secundarios (ascendentes, no únicos)
// que se crean después del insert, en este orden.
var IndexedFields = []string{pets.FieldSpecies, pets.FieldOwnerName}

var records = []pets.Pet{
	{ID: 1, Name: "Max", Species: pets.SpeciesDog, Age: 3, OwnerName: "John Doe"},
	{ID: 2, Name: "Bella", Species: pets.SpeciesCat, Age: 2, OwnerName: "Jane Smith"},
	{ID: 3, Name: "Charlie", Species: pets.SpeciesDog, Age: 5, OwnerName: "Bob Johnson"},
	{ID: 4, Name: "Luna", Species: pets.SpeciesCat, Age: 1, OwnerName: "Alice Brown"},
	{ID: 5, Name: "Rocky", Species: pets.SpeciesDog, Age: 4, OwnerName: "Mike Wilson"},
	{ID: 6, Name: "Mittens", Species: pets.SpeciesCat, Age: 6, OwnerName: "Sarah Davis"},
	{ID: 7, Name: "Buddy", Species: pets.SpeciesDog, Age: 7, OwnerName: "Tom Anderson"},
}

// Records devuelve una copia de las mascotas de ejemplo, en orden literal.
func Records() []pets.Pet {
	out := make([]pets.Pet, len(records))
	copy(out, records)
	return out
}
