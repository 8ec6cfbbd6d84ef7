package menu

import "github.com/shopspring/decimal"

// Catalog is the seed data the bar ships with. It is never mutated; the
// store layers customizations on top of copies of it.
type Catalog struct {
	Menu       []Item
	Drinks     []Item
	MoreDrinks []Item
	Categories []string
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultCatalog returns a fresh copy of the built-in carta.
func DefaultCatalog() Catalog {
	return Catalog{
		Menu:       defaultMenu(),
		Drinks:     defaultDrinks(),
		MoreDrinks: defaultMoreDrinks(),
		Categories: []string{CategoryAll, "Ensaladas", "Bocadillos", "Pescaito Frito", "Carnes", "Postres"},
	}
}

func (c Catalog) clone() Catalog {
	return Catalog{
		Menu:       cloneItems(c.Menu),
		Drinks:     cloneItems(c.Drinks),
		MoreDrinks: cloneItems(c.MoreDrinks),
		Categories: append([]string(nil), c.Categories...),
	}
}

func defaultMenu() []Item {
	return []Item{
		{
			ID:          1,
			Type:        ItemTypeMenu,
			Name:        "Bocadillo de Calamares",
			Description: "Un delicioso bocadillo de calamares fritos con pan crujiente, un clásico madrileño.",
			Price:       price("6.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/bocadillo-calamares-blanco.jpg?v=1720104938923",
			Category:    "Bocadillos",
			ModelURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/sandwich.glb?v=1719586327633",
			Allergens:   []Allergy{AllergyGluten, AllergyShellfish, AllergyEggs},
			Ingredients: []Ingredient{
				{Name: "Pan", Default: true},
				{Name: "Calamares Fritos", Default: true},
				{Name: "Mayonesa", Default: true},
			},
			Extras: []Extra{
				{Name: "Queso", Price: price("1.00")},
				{Name: "Jamón", Price: price("1.50")},
				{Name: "Huevo Frito", Price: price("1.20")},
			},
		},
		{
			ID:          4,
			Type:        ItemTypeMenu,
			Name:        "Bocadillo de Tortilla Española",
			Description: "Primer plano de un bocadillo de tortilla de patatas jugosa en pan de barra, con un fondo de bar español.",
			Price:       price("4.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/bocadillo-tortilla.jpg?v=1720188358488",
			Category:    "Bocadillos",
			Allergens:   []Allergy{AllergyEggs, AllergyGluten},
			Ingredients: []Ingredient{
				{Name: "Pan", Default: true},
				{Name: "Tortilla Española", Default: true},
			},
			Extras: []Extra{
				{Name: "Alioli", Price: price("0.50")},
				{Name: "Pimiento Verde Frito", Price: price("1.00")},
			},
		},
		{
			ID:          11,
			Type:        ItemTypeMenu,
			Name:        "Bocadillo de Jamón con Tomate",
			Description: "Un delicioso bocadillo de jamón serrano con tomate fresco rallado sobre pan de pueblo, luz natural.",
			Price:       price("5.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/bocadillo-jamon.jpg?v=1720188355644",
			Category:    "Bocadillos",
			Allergens:   []Allergy{AllergyGluten},
		},
		{
			ID:          12,
			Type:        ItemTypeMenu,
			Name:        "Ensalada Mixta Clásica",
			Description: "Bol de cristal con una ensalada fresca de lechuga, tomate, atún, cebolla y aceitunas, aderezada con aceite de oliva.",
			Price:       price("7.00"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/ensalada-mixta.jpg?v=1720188365113",
			Category:    "Ensaladas",
			ModelURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/salad.glb?v=1719586618171",
		},
		{
			ID:          13,
			Type:        ItemTypeMenu,
			Name:        "Ensalada César con Pollo",
			Description: "Plato hondo blanco con ensalada César, trozos de pollo a la parrilla, picatostes dorados y lascas de parmesano.",
			Price:       price("8.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/ensalada-cesar.jpg?v=1720188362247",
			Category:    "Ensaladas",
			Allergens:   []Allergy{AllergyGluten, AllergyDairy, AllergyEggs},
		},
		{
			ID:          14,
			Type:        ItemTypeMenu,
			Name:        "Ración de Boquerones Fritos",
			Description: "Plato de boquerones fritos al estilo andaluz, crujientes y dorados, con un trozo de limón para exprimir.",
			Price:       price("9.00"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/boquerones.jpg?v=1720188352696",
			Category:    "Pescaito Frito",
			Allergens:   []Allergy{AllergyGluten},
		},
		{
			ID:          2,
			Type:        ItemTypeMenu,
			Name:        "Ración de Calamares a la Romana",
			Description: "Una ración generosa de calamares a la romana, tiernos por dentro y crujientes por fuera, listos para dipear.",
			Price:       price("10.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/calamares-romana.jpg?v=1720188360124",
			Category:    "Pescaito Frito",
			Allergens:   []Allergy{AllergyGluten, AllergyShellfish},
		},
		{
			ID:          3,
			Type:        ItemTypeMenu,
			Name:        "Croquetas Caseras de Jamón",
			Description: "Fotografía de producto de unas croquetas de jamón recién hechas, cremosas y doradas, sobre una pizarra.",
			Price:       price("5.00"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/croquetas.jpg?v=1720188360938",
			Category:    "Carnes",
			Allergens:   []Allergy{AllergyGluten, AllergyDairy},
		},
		{
			ID:          15,
			Type:        ItemTypeMenu,
			Name:        "Solomillo al Whisky con Patatas",
			Description: "Cazuela de barro con tacos de solomillo de cerdo en salsa al whisky con ajo y patatas fritas.",
			Price:       price("12.00"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/solomillo-whisky.jpg?v=1720188372666",
			Category:    "Carnes",
		},
		{
			ID:          16,
			Type:        ItemTypeMenu,
			Name:        "Tarta de Queso Cremosa",
			Description: "Porción de tarta de queso al horno, estilo La Viña, con un interior cremoso y un exterior tostado.",
			Price:       price("5.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/tarta-queso.jpg?v=1720188375836",
			Category:    "Postres",
			Allergens:   []Allergy{AllergyGluten, AllergyDairy, AllergyEggs},
		},
		{
			ID:          17,
			Type:        ItemTypeMenu,
			Name:        "Flan Casero de Huevo",
			Description: "Un flan de huevo casero clásico, tembloroso, bañado en caramelo dorado, en un plato blanco.",
			Price:       price("4.00"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/flan.jpg?v=1720188367298",
			Category:    "Postres",
			Allergens:   []Allergy{AllergyDairy, AllergyEggs},
		},
		{
			ID:          18,
			Type:        ItemTypeMenu,
			Name:        "Batido Natural de Plátano",
			Description: "Vaso alto de batido de plátano cremoso, con una pajita y una rodaja de plátano en el borde.",
			Price:       price("4.50"),
			ImageURL:    "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/batido-platano.jpg?v=1720188349887",
			Category:    "Postres",
			Allergens:   []Allergy{AllergyDairy},
		},
	}
}

func defaultDrinks() []Item {
	return []Item{
		{
			ID:        1,
			Type:      ItemTypeDrink,
			Name:      "Caña de Cerveza Bien Fría",
			Price:     price("2.00"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cana-cerveza.jpg?v=1720188603607",
			Allergens: []Allergy{AllergyGluten},
		},
		{
			ID:       2,
			Type:     ItemTypeDrink,
			Name:     "Copa de Vino Tinto",
			Price:    price("3.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/copa-vino.jpg?v=1720188605487",
		},
		{
			ID:       3,
			Type:     ItemTypeDrink,
			Name:     "Refresco de Cola con Hielo y Limón",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/refresco-cola.jpg?v=1720188612141",
		},
		{
			ID:       4,
			Type:     ItemTypeDrink,
			Name:     "Agua Mineral con Gas",
			Price:    price("1.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/agua-gas.jpg?v=1720188600151",
		},
		{
			ID:       5,
			Type:     ItemTypeDrink,
			Name:     "Tinto de Verano Refrescante",
			Price:    price("2.75"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/tinto-verano.jpg?v=1720188614601",
		},
		{
			ID:       6,
			Type:     ItemTypeDrink,
			Name:     "Zumo de Naranja Natural",
			Price:    price("3.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/zumo-naranja.jpg?v=1720188617581",
		},
		{
			ID:        7,
			Type:      ItemTypeDrink,
			Name:      "Café con Leche y Arte Latte",
			Price:     price("1.80"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cafe-leche.jpg?v=1720188601878",
			Allergens: []Allergy{AllergyDairy},
		},
	}
}

func defaultMoreDrinks() []Item {
	return []Item{
		{
			ID:        101,
			Type:      ItemTypeDrink,
			Name:      "Tercio Mahou",
			Price:     price("2.50"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/tercio-mahou.jpg?v=1720191830508",
			Allergens: []Allergy{AllergyGluten},
		},
		{
			ID:        102,
			Type:      ItemTypeDrink,
			Name:      "Alhambra 1925",
			Price:     price("3.50"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/alhambra-1925.jpg?v=1720191811813",
			Allergens: []Allergy{AllergyGluten},
		},
		{
			ID:        103,
			Type:      ItemTypeDrink,
			Name:      "Estrella Galicia",
			Price:     price("2.80"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/estrella-galicia.jpg?v=1720191817441",
			Allergens: []Allergy{AllergyGluten},
		},
		{
			ID:       104,
			Type:     ItemTypeDrink,
			Name:     "Cerveza Sin Gluten",
			Price:    price("3.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cerveza-sin-gluten.jpg?v=1720191814675",
		},
		{
			ID:        105,
			Type:      ItemTypeDrink,
			Name:      "Radler Limón",
			Price:     price("2.50"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/radler.jpg?v=1720191828135",
			Allergens: []Allergy{AllergyGluten},
		},
		{
			ID:       106,
			Type:     ItemTypeDrink,
			Name:     "Copa Rioja",
			Price:    price("3.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/copa-rioja.jpg?v=1720191816434",
		},
		{
			ID:       107,
			Type:     ItemTypeDrink,
			Name:     "Copa Ribera",
			Price:    price("3.80"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/copa-ribera.jpg?v=1720191815598",
		},
		{
			ID:       108,
			Type:     ItemTypeDrink,
			Name:     "Copa Verdejo",
			Price:    price("3.20"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/copa-verdejo.jpg?v=1720191816911",
		},
		{
			ID:       109,
			Type:     ItemTypeDrink,
			Name:     "Copa Rosado",
			Price:    price("3.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/copa-rosado.jpg?v=1720191816027",
		},
		{
			ID:       110,
			Type:     ItemTypeDrink,
			Name:     "Botella Rioja",
			Price:    price("18.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/botella-rioja.jpg?v=1720191812836",
		},
		{
			ID:       111,
			Type:     ItemTypeDrink,
			Name:     "Fanta Naranja",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/fanta.jpg?v=1720191818049",
		},
		{
			ID:       112,
			Type:     ItemTypeDrink,
			Name:     "Nestea Limón",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/nestea.jpg?v=1720191825838",
		},
		{
			ID:       113,
			Type:     ItemTypeDrink,
			Name:     "Aquarius Naranja",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/aquarius.jpg?v=1720191812328",
		},
		{
			ID:       114,
			Type:     ItemTypeDrink,
			Name:     "Zumo Melocotón",
			Price:    price("2.80"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/zumo-melocoton.jpg?v=1720191832049",
		},
		{
			ID:       115,
			Type:     ItemTypeDrink,
			Name:     "Zumo Piña",
			Price:    price("2.80"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/zumo-pina.jpg?v=1720191832598",
		},
		{
			ID:       116,
			Type:     ItemTypeDrink,
			Name:     "Café Solo",
			Price:    price("1.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cafe-solo.jpg?v=1720191814144",
		},
		{
			ID:        117,
			Type:      ItemTypeDrink,
			Name:      "Café Cortado",
			Price:     price("1.60"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cafe-cortado.jpg?v=1720191813680",
			Allergens: []Allergy{AllergyDairy},
		},
		{
			ID:       118,
			Type:     ItemTypeDrink,
			Name:     "Té (varios)",
			Price:    price("1.80"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/te.jpg?v=1720191829983",
		},
		{
			ID:       119,
			Type:     ItemTypeDrink,
			Name:     "Carajillo",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/carajillo.jpg?v=1720191813264",
		},
		{
			ID:        120,
			Type:      ItemTypeDrink,
			Name:      "ColaCao",
			Price:     price("2.00"),
			ImageURL:  "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/colacao.jpg?v=1720191815147",
			Allergens: []Allergy{AllergyDairy},
		},
		{
			ID:       121,
			Type:     ItemTypeDrink,
			Name:     "Chupito de Hierbas",
			Price:    price("2.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/chupito-hierbas.jpg?v=1720191814324",
		},
		{
			ID:       122,
			Type:     ItemTypeDrink,
			Name:     "Whisky-Cola",
			Price:    price("7.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/whisky-cola.jpg?v=1720191831498",
		},
		{
			ID:       123,
			Type:     ItemTypeDrink,
			Name:     "Gin Tonic",
			Price:    price("8.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/gin-tonic.jpg?v=1720191818610",
		},
		{
			ID:       124,
			Type:     ItemTypeDrink,
			Name:     "Ron-Cola",
			Price:    price("7.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/ron-cola.jpg?v=1720191829035",
		},
		{
			ID:       125,
			Type:     ItemTypeDrink,
			Name:     "Mojito",
			Price:    price("8.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/mojito.jpg?v=1720191825134",
		},
		{
			ID:       126,
			Type:     ItemTypeDrink,
			Name:     "Vermut",
			Price:    price("3.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/vermut.jpg?v=1720191831008",
		},
		{
			ID:       127,
			Type:     ItemTypeDrink,
			Name:     "Mosto",
			Price:    price("2.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/mosto.jpg?v=1720191825501",
		},
		{
			ID:       128,
			Type:     ItemTypeDrink,
			Name:     "Cava (Copa)",
			Price:    price("4.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/cava.jpg?v=1720191821034",
		},
		{
			ID:       129,
			Type:     ItemTypeDrink,
			Name:     "Sidra (Vaso)",
			Price:    price("2.50"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/sidra.jpg?v=1720191829497",
		},
		{
			ID:       130,
			Type:     ItemTypeDrink,
			Name:     "Sangría (Jarra 1L)",
			Price:    price("12.00"),
			ImageURL: "https://cdn.glitch-global.net/6822488d-9a67-4bab-9fa7-66c3c859d012/sangria.jpg?v=1720191829285",
		},
	}
}
