package study

// Sample returns the demonstration study a fresh store is seeded with.
// Its ID and timestamps are left for the store to assign.
func Sample() *Study {
	return &Study{
		Title:        "Estudio de Inteligencia Política - Monterrey 2027",
		Municipality: "Monterrey",
		State:        "Nuevo León",

		Archetype:            "Impulsor",
		ArchetypeUncertainty: Medium,

		PositivePoints: []string{
			"Buscan un liderazgo firme frente a la inseguridad",
			"Valoran la cercanía en colonias y redes sociales",
			"Esperan resultados visibles en movilidad urbana",
		},
		PositivePointsUncertainty: Low,
		NegativePoints: []string{
			"Rechazan obras sin transparencia en el gasto",
			"Desconfían de perfiles que solo aparecen en campaña",
			"Les molestan las promesas incumplidas",
		},
		NegativePointsUncertainty: Medium,

		Candidates: []Candidate{
			{ID: "cand_1", Name: "Ana Lucía Treviño", Party: "Morena", Adjectives: []string{"Cercana", "Firme", "Honesta"}, DigitalSignal: "Alta conversación positiva en temas de seguridad y movilidad; crecimiento sostenido en seguidores jóvenes."},
			{ID: "cand_2", Name: "Jorge Garza Salinas", Party: "PAN", Adjectives: []string{"Ordenado", "Técnico"}, DigitalSignal: "Menciones estables, concentradas en sectores empresariales y zonas residenciales del poniente."},
			{ID: "cand_3", Name: "Mariana Cantú", Party: "MC", Adjectives: []string{"Joven", "Innovadora", "Digital", "Audaz"}, DigitalSignal: "Mayor alcance orgánico de la contienda; picos asociados a contenido en video corto."},
			{ID: "cand_4", Name: "Ricardo Elizondo", Party: "PRI", Adjectives: []string{"Experimentado"}, DigitalSignal: "Conversación reducida y mayormente negativa, ligada a administraciones anteriores."},
		},
		CandidatesUncertainty: Medium,

		DigitalUniverse:            1180000,
		DigitalUniverseUncertainty: Low,

		BlockA: []BlockARow{
			{ID: "a_1", Party: "Morena", Hard: 120, Angry: 30, Critical: 70, Opportunist: 50},
			{ID: "a_2", Party: "PAN", Hard: 140, Angry: 15, Critical: 20, Opportunist: 30},
			{ID: "a_3", Party: "MC", Hard: 90, Angry: 25, Critical: 40, Opportunist: 110},
			{ID: "a_4", Party: "PRI", Hard: 60, Angry: 45, Critical: 35, Opportunist: 20},
		},
		BlockAUncertainty: High,

		BlockB: []BlockBRow{
			{ID: "b_1", Segment: "Religiosos", Description: "Participan en comunidades de fe y priorizan valores familiares y seguridad en su colonia.", Size: 150},
			{ID: "b_2", Segment: "Tercera edad", Description: "Usuarios mayores de 60 años, activos en grupos de mensajería y noticias locales.", Size: 160},
			{ID: "b_3", Segment: "Centennials", Description: "Jóvenes de 18 a 25 años, consumo intensivo de video corto y temas de empleo.", Size: 200},
			{ID: "b_4", Segment: "Amas de casa", Description: "Interés en precios, servicios públicos y seguridad escolar.", Size: 100},
			{ID: "b_5", Segment: "Comerciantes", Description: "Pequeños negocios preocupados por extorsión, trámites y movilidad.", Size: 120},
			{ID: "b_6", Segment: "Estudiantes", Description: "Universitarios atentos a transporte, becas y espacios culturales.", Size: 60},
		},
		BlockBUncertainty: Medium,
	}
}
