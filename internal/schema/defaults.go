package schema

// Default returns the canonical mapping tables for the five catalog kinds.
// The tables match data/key_mappings.json and double as a fallback when no
// mappings file is configured.
func Default() KeyMappings {
	return KeyMappings{
		KindPlanet: {
			{From: "url", To: "url"},
			{From: "name", To: "name"},
			{From: "region", To: "region"},
			{From: "sector", To: "sector"},
			{From: "suns", To: "suns"},
			{From: "moons", To: "moons"},
			{From: "orbital_period", To: "orbital_period_days"},
			{From: "diameter", To: "diameter_km"},
			{From: "gravity", To: "gravity_std"},
			{From: "climate", To: "climate"},
			{From: "terrain", To: "terrain"},
			{From: "population", To: "population"},
		},
		KindSpecies: {
			{From: "url", To: "url"},
			{From: "name", To: "name"},
			{From: "classification", To: "classification"},
			{From: "designation", To: "designation"},
			{From: "average_lifespan", To: "average_lifespan_yrs"},
			{From: "average_height", To: "average_height_cm"},
			{From: "language", To: "language"},
		},
		KindDroid: {
			{From: "url", To: "url"},
			{From: "name", To: "name"},
			{From: "model", To: "model"},
			{From: "manufacturer", To: "manufacturer"},
			{From: "create_year", To: "create_date"},
			{From: "height", To: "height_cm"},
			{From: "mass", To: "mass_kg"},
			{From: "equipment", To: "equipment"},
			{From: "instructions", To: "instructions"},
		},
		KindPerson: {
			{From: "url", To: "url"},
			{From: "name", To: "name"},
			{From: "birth_year", To: "birth_date"},
			{From: "height", To: "height_cm"},
			{From: "mass", To: "mass_kg"},
			{From: "homeworld", To: "homeworld"},
			{From: "species", To: "species"},
			{From: "force_sensitive", To: "force_sensitive"},
		},
		KindStarship: {
			{From: "url", To: "url"},
			{From: "name", To: "name"},
			{From: "model", To: "model"},
			{From: "starship_class", To: "starship_class"},
			{From: "manufacturer", To: "manufacturer"},
			{From: "length", To: "length_m"},
			{From: "hyperdrive_rating", To: "hyperdrive_rating"},
			{From: "MGLT", To: "max_megalight_hr"},
			{From: "max_atmosphering_speed", To: "max_atmosphering_speed_kph"},
			{From: "crew", To: "crew_size"},
			{From: "crew_members", To: "crew_members"},
			{From: "passengers", To: "max_passengers"},
			{From: "passengers_on_board", To: "passengers_on_board"},
			{From: "cargo_capacity", To: "cargo_capacity_kg"},
			{From: "consumables", To: "consumables"},
			{From: "armament", To: "armament"},
		},
	}
}
