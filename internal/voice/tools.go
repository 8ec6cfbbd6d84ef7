package voice

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"bocateria/internal/menu"
	"bocateria/internal/order"
)

const ToolAddToCart = "addToCart"

const (
	msgAskCustomer  = "Error: Pregunta para quién es el pedido."
	msgMissingItems = "Error: Faltan los artículos."
)

// Cart is the slice of the order manager the voice assistant may touch.
type Cart interface {
	CustomersOnBill() []string
	AddToCart(item menu.Item, customerName string, quantity int, customizations *order.Customizations) order.CartItem
}

type ItemLookup interface {
	LookupByID(id int) (menu.Item, error)
}

type ToolItem struct {
	ItemID   int     `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

type AddToCartArgs struct {
	Items        *[]ToolItem `json:"items"`
	CustomerName string      `json:"customerName"`
}

type FunctionCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

type FunctionResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Response map[string]string `json:"response"`
}

// ToolHandler executes the function calls the live model makes.
type ToolHandler struct {
	cart  Cart
	items ItemLookup
}

func NewToolHandler(cart Cart, items ItemLookup) *ToolHandler {
	return &ToolHandler{cart: cart, items: items}
}

// Handle answers every call; unknown tools get an error result so the
// model is never left waiting.
func (h *ToolHandler) Handle(calls []FunctionCall) []FunctionResponse {
	out := make([]FunctionResponse, 0, len(calls))
	for _, fc := range calls {
		var result string
		switch fc.Name {
		case ToolAddToCart:
			var args AddToCartArgs
			if len(fc.Args) > 0 {
				if err := json.Unmarshal(fc.Args, &args); err != nil {
					log.Printf("[VOICE] bad addToCart args: %v", err)
				}
			}
			result = h.AddToCart(args)
		default:
			result = "Error: Herramienta desconocida " + fc.Name + "."
		}

		out = append(out, FunctionResponse{
			ID:       fc.ID,
			Name:     fc.Name,
			Response: map[string]string{"result": result},
		})
	}
	return out
}

// AddToCart returns the text result the model reads back to the diner.
func (h *ToolHandler) AddToCart(args AddToCartArgs) string {
	if args.Items == nil {
		return msgMissingItems
	}

	customer := args.CustomerName
	if customer == "" {
		if customers := h.cart.CustomersOnBill(); len(customers) > 0 {
			customer = customers[0]
		}
	}
	if customer == "" {
		return msgAskCustomer
	}

	var b strings.Builder
	for _, it := range *args.Items {
		item, err := h.items.LookupByID(it.ItemID)
		if err != nil {
			fmt.Fprintf(&b, "Error: No se encontró el artículo ID %d. ", it.ItemID)
			continue
		}

		line := h.cart.AddToCart(item, customer, int(it.Quantity), nil)
		fmt.Fprintf(&b, "Añadido %d %s para %s. ", line.Quantity, item.Name, customer)
	}

	log.Printf("[VOICE] addToCart customer=%s items=%d", customer, len(*args.Items))
	return b.String()
}

// ToolDeclaration is the addToCart function declaration sent at setup.
func ToolDeclaration() map[string]any {
	return map[string]any{
		"name": ToolAddToCart,
		"parameters": map[string]any{
			"type":        "OBJECT",
			"description": "Añade uno o más artículos a la comanda del cliente. Utiliza esto cuando el cliente pida comida o bebida.",
			"properties": map[string]any{
				"items": map[string]any{
					"type":        "ARRAY",
					"description": "Una lista de artículos para añadir.",
					"items": map[string]any{
						"type": "OBJECT",
						"properties": map[string]any{
							"itemId":   map[string]any{"type": "NUMBER", "description": "El ID del producto."},
							"quantity": map[string]any{"type": "NUMBER", "description": "La cantidad del artículo. Por defecto 1."},
						},
						"required": []string{"itemId", "quantity"},
					},
				},
				"customerName": map[string]any{
					"type":        "STRING",
					"description": "El nombre del cliente para quien es el pedido. Si no se especifica, se preguntará o asignará al cliente por defecto.",
				},
			},
			"required": []string{"items"},
		},
	}
}
