package assistant

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"bocateria/internal/llm"
	"bocateria/internal/menu"
	"bocateria/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyBill    = errors.New("bill is empty")
	ErrEmptyPrompt  = errors.New("prompt is empty")
	ErrNoUploader   = errors.New("image storage is not configured")
	ErrInvalidPrice = errors.New("price must be positive")
	ErrNoMedia      = errors.New("media is empty")
	ErrNoMatch      = errors.New("no clear match on the menu")
)

const (
	popularCount   = 3
	dishNameLength = 30
	// SpeechSampleRate is the rate of the PCM returned by ReadBillAloud.
	SpeechSampleRate = 24000
)

// Menu is the subset of the menu store the assistant reads and updates.
type Menu interface {
	AllItems() []menu.Item
	Lookup(itemType menu.ItemType, id int) (menu.Item, error)
	LookupByIDAndName(id int, name string) (menu.Item, error)
	UpdateItemImage(ctx context.Context, itemID int, imageURL string, itemType menu.ItemType) error
	AddGeneratedItem(ctx context.Context, name, description string, price decimal.Decimal, imageURL string) (menu.Item, error)
}

// Bill is what ReadBillAloud needs from an order manager.
type Bill interface {
	CartItems() []order.CartItem
	BillSummary() string
}

type Service struct {
	client   llm.Client
	menu     Menu
	uploader menu.ImageUploader
}

func NewService(client llm.Client, m Menu, uploader menu.ImageUploader) *Service {
	return &Service{client: client, menu: m, uploader: uploader}
}

// PopularItem is a catalog-checked recommendation.
type PopularItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	ItemType menu.ItemType   `json:"itemType"`
}

// --------------------------------------------------
// Customer-facing
// --------------------------------------------------

func (s *Service) Recommend(ctx context.Context, diningOption, request string) (string, error) {
	if strings.TrimSpace(request) == "" {
		return "", ErrEmptyPrompt
	}

	prompt := llm.BuildRecommendPrompt(diningOption, request, menuText(s.menu.AllItems()))
	out, err := s.client.GenerateText(ctx, llm.UserPrompt(prompt))
	if err != nil {
		log.Printf("[AI] recommendation failed: %v", err)
		return "", fmt.Errorf("recommend: %w", err)
	}
	return out, nil
}

// Popular asks for three items and keeps only the ones that exist, with
// catalog data replacing whatever the model returned.
func (s *Service) Popular(ctx context.Context, diningOption string) ([]PopularItem, error) {
	catalogJSON, err := popularContext(s.menu.AllItems())
	if err != nil {
		return nil, err
	}

	suggestions, err := llm.ParseSuggestions(ctx, s.client, llm.UserPrompt(llm.BuildPopularPrompt(diningOption, catalogJSON)))
	if err != nil {
		log.Printf("[AI] popular items failed: %v", err)
		return nil, fmt.Errorf("popular items: %w", err)
	}

	all := s.menu.AllItems()
	items := []PopularItem{}
	seen := map[menu.ImageKey]bool{}
	for _, sug := range suggestions {
		it, ok := s.resolveSuggestion(sug, all)
		key := menu.ImageKey{Type: it.Type, ID: it.ID}
		if !ok || seen[key] {
			log.Printf("[AI] dropping unknown suggestion id=%d name=%q", sug.ID, sug.Name)
			continue
		}
		seen[key] = true
		items = append(items, PopularItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			ImageURL: it.ImageURL,
			ItemType: it.Type,
		})
		if len(items) == popularCount {
			break
		}
	}
	return items, nil
}

// resolveSuggestion finds the catalog item behind a model suggestion. Ids
// repeat across dishes and drinks, so the name decides: exact id+name first,
// then a case-insensitive name match anywhere in the catalog.
func (s *Service) resolveSuggestion(sug llm.Suggestion, all []menu.Item) (menu.Item, bool) {
	name := strings.TrimSpace(sug.Name)
	if name == "" {
		return menu.Item{}, false
	}
	if it, err := s.menu.LookupByIDAndName(sug.ID, name); err == nil {
		return it, true
	}
	return findByName(all, name)
}

func findByName(items []menu.Item, name string) (menu.Item, bool) {
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return menu.Item{}, false
}

// IdentifyDish shows the photo to the model with the dish list and resolves
// the answer by name. Anything that is not a dish on the menu is ErrNoMatch.
func (s *Service) IdentifyDish(ctx context.Context, photo llm.Media) (menu.Item, error) {
	if len(photo.Data) == 0 {
		return menu.Item{}, ErrNoMedia
	}

	dishes := make([]menu.Item, 0)
	for _, it := range s.menu.AllItems() {
		if it.Type == menu.ItemTypeMenu {
			dishes = append(dishes, it)
		}
	}

	answer, err := s.client.AnalyzeMedia(ctx, llm.BuildIdentifyDishPrompt(dishList(dishes)), photo)
	if err != nil {
		log.Printf("[AI] identify dish failed: %v", err)
		return menu.Item{}, fmt.Errorf("identify dish: %w", err)
	}

	name := strings.Trim(strings.TrimSpace(answer), `"'.`)
	it, ok := findByName(dishes, name)
	if !ok {
		log.Printf("[AI] identify dish: no match for %q", truncate(name, 80))
		return menu.Item{}, ErrNoMatch
	}
	return it, nil
}

// AnalyzeVideo answers a customer question about an uploaded clip.
func (s *Service) AnalyzeVideo(ctx context.Context, clip llm.Media, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyPrompt
	}
	if len(clip.Data) == 0 {
		return "", ErrNoMedia
	}

	out, err := s.client.AnalyzeMedia(ctx, question, clip)
	if err != nil {
		log.Printf("[AI] video analysis failed: %v", err)
		return "", fmt.Errorf("analyze video: %w", err)
	}
	return out, nil
}

func (s *Service) Chat(ctx context.Context, history []llm.Message, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyPrompt
	}

	msgs := append(append([]llm.Message{}, history...), llm.Message{Role: llm.RoleUser, Text: message})
	out, err := s.client.GenerateText(ctx, llm.Prompt{
		System:   llm.BuildChatSystemPrompt(menuText(s.menu.AllItems())),
		Messages: msgs,
	})
	if err != nil {
		log.Printf("[AI] chat failed: %v", err)
		return "", fmt.Errorf("chat: %w", err)
	}
	return out, nil
}

// ReadBillAloud returns base64 16-bit PCM at SpeechSampleRate.
func (s *Service) ReadBillAloud(ctx context.Context, bill Bill) (string, error) {
	if len(bill.CartItems()) == 0 {
		return "", ErrEmptyBill
	}

	pcm, err := s.client.GenerateSpeech(ctx, bill.BillSummary())
	if err != nil {
		log.Printf("[AI] speech generation failed: %v", err)
		return "", fmt.Errorf("read bill: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pcm), nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

// GenerateDishImage renders a new photo for an existing item and stores it
// as the item's image override.
func (s *Service) GenerateDishImage(ctx context.Context, itemType menu.ItemType, itemID int, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyPrompt
	}

	item, err := s.menu.Lookup(itemType, itemID)
	if err != nil {
		return "", err
	}

	url, err := s.renderAndUpload(ctx, llm.BuildDishImagePrompt(item.Name, description), fmt.Sprintf("generated/%s/%d", itemType, itemID))
	if err != nil {
		return "", err
	}

	if err := s.menu.UpdateItemImage(ctx, itemID, url, itemType); err != nil {
		return "", err
	}
	return url, nil
}

// CreateDish adds a brand new dish under the generated category.
func (s *Service) CreateDish(ctx context.Context, prompt string, price decimal.Decimal) (menu.Item, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return menu.Item{}, ErrEmptyPrompt
	}
	if !price.IsPositive() {
		return menu.Item{}, ErrInvalidPrice
	}

	url, err := s.renderAndUpload(ctx, llm.BuildNewDishImagePrompt(prompt), "generated/new")
	if err != nil {
		return menu.Item{}, err
	}

	return s.menu.AddGeneratedItem(ctx, truncate(prompt, dishNameLength), "Creación de IA: "+prompt, price, url)
}

func (s *Service) renderAndUpload(ctx context.Context, prompt, keyPrefix string) (string, error) {
	if s.uploader == nil {
		return "", ErrNoUploader
	}

	img, err := s.client.GenerateImage(ctx, prompt)
	if err != nil {
		log.Printf("[AI] image generation failed: %v", err)
		return "", fmt.Errorf("generate image: %w", err)
	}

	contentType := img.MIMEType
	if contentType == "" {
		contentType = "image/png"
	}
	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New().String(), extensionFor(contentType))

	url, err := s.uploader.Upload(ctx, key, bytes.NewReader(img.Data), contentType)
	if err != nil {
		log.Printf("[AI] image upload failed key=%s: %v", key, err)
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// menuText renders one "name - description" line per item.
func menuText(items []menu.Item) string {
	var b strings.Builder
	for _, it := range items {
		desc := it.Description
		if desc == "" {
			desc = "Bebida"
		}
		fmt.Fprintf(&b, "%s - %s\n", it.Name, desc)
	}
	return b.String()
}

func dishList(items []menu.Item) string {
	entries := make([]string, 0, len(items))
	for _, it := range items {
		entries = append(entries, fmt.Sprintf("%s (ID: %d)", it.Name, it.ID))
	}
	return strings.Join(entries, ", ")
}

func popularContext(items []menu.Item) (string, error) {
	type entry struct {
		ID       int             `json:"id"`
		ItemType menu.ItemType   `json:"itemType"`
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		ImageURL string          `json:"imageUrl"`
	}

	entries := make([]entry, 0, len(items))
	for _, it := range items {
		url := it.ImageURL
		// inline images would blow up the prompt
		if strings.HasPrefix(url, "data:") {
			url = ""
		}
		entries = append(entries, entry{ID: it.ID, ItemType: it.Type, Name: it.Name, Price: it.Price, ImageURL: url})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
