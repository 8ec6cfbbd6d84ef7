package voice

import (
	"encoding/json"

	"bocateria/internal/menu"

	"github.com/shopspring/decimal"
)

type promptItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Allergens   []menu.Allergy  `json:"allergens"`
}

// SystemInstruction builds the waiter persona with the live menu embedded.
func SystemInstruction(items []menu.Item) string {
	entries := make([]promptItem, 0, len(items))
	for _, it := range items {
		category := it.Category
		if it.Type == menu.ItemTypeDrink || category == "" {
			category = "Bebida"
		}
		allergens := it.Allergens
		if allergens == nil {
			allergens = []menu.Allergy{}
		}
		entries = append(entries, promptItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    category,
			Allergens:   allergens,
		})
	}

	carta, _ := json.MarshalIndent(entries, "", "  ")

	return "Eres un camarero simpático y servicial en la 'Bocateria Er'caliente'. " +
		"Tu objetivo es tener una conversación natural con los clientes, responder sus preguntas sobre el menú y ayudarles a hacer su pedido. " +
		"Eres un experto en la carta. Sé conciso y amigable. No menciones que eres un modelo de IA. Responde siempre en español. " +
		"La carta es la siguiente:\n" + string(carta) +
		"\n\nCuando un cliente pida explícitamente uno o más artículos, utiliza la herramienta 'addToCart'. " +
		"Asegúrate de usar los IDs correctos de la carta. Si no especifican para quién es el pedido, no incluyas el campo 'customerName'."
}
