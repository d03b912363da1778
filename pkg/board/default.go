package board

// Example returns the onboarding board shown when no study data is
// available: four parties with their hardness tiers and twelve population
// segments matching the default template.
func Example() *Board {
	b := New()
	b.groups = []string{"Morena", "PVEM", "PAN", "Otros"}
	for _, s := range []Segment{
		{Group: "Morena", Name: "Morena Oportunista", Quantity: "50 K", Color: "#D1A8A6"},
		{Group: "Morena", Name: "Morena Enojado", Quantity: "30 K", Color: "#B7746B"},
		{Group: "Morena", Name: "Morena Crítico", Quantity: "70 K", Color: "#A0443C"},
		{Group: "Morena", Name: "Morena Duro", Quantity: "120 K", Color: "#8D241A"},
		{Group: "PVEM", Name: "PVEM Oportunista", Quantity: "300 K", Color: "#A8D5A8"},
		{Group: "PVEM", Name: "PVEM Crítico", Quantity: "30 K", Color: "#88B588"},
		{Group: "PVEM", Name: "PVEM Duro", Quantity: "60 K", Color: "#689568"},
		{Group: "PAN", Name: "PAN Oportunista", Quantity: "30 K", Color: "#7BA3C9"},
		{Group: "PAN", Name: "PAN Enojado", Quantity: "15 K", Color: "#6B93B9"},
		{Group: "PAN", Name: "PAN Crítico", Quantity: "20 K", Color: "#5B83A9"},
		{Group: "PAN", Name: "PAN Duro", Quantity: "140 K", Color: "#1B4365"},
		{Group: "Otros", Name: "CI", Quantity: "60 K", Color: "#B5B5B5"},
		{Group: "Otros", Name: "MC", Quantity: "100 K", Color: "#E89D5C"},
		{Group: "Otros", Name: "PNAL", Quantity: "10 K", Color: "#5DBCD2"},
		{Group: "Otros", Name: "PRI", Quantity: "120 K", Color: "#E85C5C"},
		{Group: "Otros", Name: "PT", Quantity: "40 K", Color: "#D84C4C"},
	} {
		mustAppend(b, Grouped, s)
	}
	for _, s := range []Segment{
		{Name: "Religiosos", Quantity: "150 K", Color: "#88D588"},
		{Name: "Tercera edad", Quantity: "160 K", Color: "#78C578"},
		{Name: "Centennials", Quantity: "200 K", Color: "#68B568"},
		{Name: "Deportistas / Fitness", Quantity: "80 K", Color: "#A89FD5"},
		{Name: "Amas de casa", Quantity: "100 K", Color: "#988FD5"},
		{Name: "Comerciantes", Quantity: "120 K", Color: "#887FD5"},
		{Name: "Geeks / Techies / Gamers", Quantity: "30 K", Color: "#E8A85C"},
		{Name: "Animalistas / Ambientalistas", Quantity: "30 K", Color: "#D8985C"},
		{Name: "Madres solteras", Quantity: "40 K", Color: "#5CBCD8"},
		{Name: "Estudiantes", Quantity: "60 K", Color: "#4CACC8"},
		{Name: "Empresarios", Quantity: "10 K", Color: "#D89C5C"},
		{Name: "Profesores", Quantity: "20 K", Color: "#C88C4C"},
	} {
		mustAppend(b, Ungrouped, s)
	}
	return b
}

func mustAppend(b *Board, p Pool, s Segment) {
	if _, err := b.Append(p, s); err != nil {
		panic(err)
	}
}
