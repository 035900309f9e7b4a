package models

import (
	"fmt"
	"sort"

	"gorm.io/datatypes"
)

// BlockType перечисляет виды секций конструктора приглашений.
type BlockType string

const (
	BlockTypeHero         BlockType = "hero"
	BlockTypeEventDetails BlockType = "eventDetails"
	BlockTypeVenue        BlockType = "venue"
	BlockTypeGallery      BlockType = "gallery"
	BlockTypeRSVP         BlockType = "rsvp"
	BlockTypeMessage      BlockType = "message"
	BlockTypeFooter       BlockType = "footer"
	BlockTypeDivider      BlockType = "divider"
	BlockTypeCountdown    BlockType = "countdown"
	BlockTypeCustom       BlockType = "custom"
	BlockTypeYoutube      BlockType = "youtube"
	BlockTypeFullImage    BlockType = "fullImage"
	BlockTypePDF          BlockType = "pdf"
	BlockTypeSocialShare  BlockType = "socialShare"
	BlockTypeQRCode       BlockType = "qrCode"
)

// ValidBlockType reports whether t is one of the 15 supported block kinds.
func ValidBlockType(t BlockType) bool {
	switch t {
	case BlockTypeHero, BlockTypeEventDetails, BlockTypeVenue, BlockTypeGallery,
		BlockTypeRSVP, BlockTypeMessage, BlockTypeFooter, BlockTypeDivider,
		BlockTypeCountdown, BlockTypeCustom, BlockTypeYoutube, BlockTypeFullImage,
		BlockTypePDF, BlockTypeSocialShare, BlockTypeQRCode:
		return true
	}
	return false
}

// BlockSettings — оформление секции (layout, фон, оверлей, анимация).
type BlockSettings struct {
	Height string `json:"height"` // auto, 100vh, 50vh, ...
	Padding string `json:"padding"`
	Margin  string `json:"margin"`

	BackgroundType     string `json:"backgroundType"` // solid, gradient, image, pattern
	BackgroundColor    string `json:"backgroundColor"`
	BackgroundGradient string `json:"backgroundGradient"`
	BackgroundImage    string `json:"backgroundImage"`
	BackgroundPattern  string `json:"backgroundPattern"`
	BackgroundSize     string `json:"backgroundSize"`
	BackgroundPosition string `json:"backgroundPosition"`

	OverlayEnabled bool    `json:"overlayEnabled"`
	OverlayColor   string  `json:"overlayColor"`
	OverlayOpacity float64 `json:"overlayOpacity"`

	TextAlign string `json:"textAlign"` // left, center, right

	Animation      string `json:"animation"` // none, fade-up, fade-in, slide-left, slide-right, zoom
	AnimationDelay int    `json:"animationDelay"`
}

// DefaultBlockSettings возвращает настройки секции по умолчанию.
func DefaultBlockSettings() BlockSettings {
	return BlockSettings{
		Height:             "auto",
		Padding:            "4rem",
		Margin:             "0",
		BackgroundType:     "solid",
		BackgroundColor:    "#ffffff",
		BackgroundSize:     "cover",
		BackgroundPosition: "center",
		OverlayColor:       "#000000",
		OverlayOpacity:     0.3,
		TextAlign:          "center",
		Animation:          "fade-up",
	}
}

// Block — одна упорядоченная секция дизайна. Content зависит от Type
// (валидируется в ValidateBlockContent), Styles — произвольные CSS-переопределения.
type Block struct {
	ID       string            `json:"id"`
	Type     BlockType         `json:"type"`
	Order    int               `json:"order"`
	Settings BlockSettings     `json:"settings"`
	Content  datatypes.JSONMap `json:"content"`
	Styles   datatypes.JSONMap `json:"styles"`
}

// ThemeColors — 8 именованных цветовых ролей темы.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	TextLight  string `json:"textLight"`
	Border     string `json:"border"`
}

// ThemeFonts — 3 шрифтовые роли темы.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Accent  string `json:"accent"`
}

type Theme struct {
	Colors       ThemeColors `json:"colors"`
	Fonts        ThemeFonts  `json:"fonts"`
	BorderRadius string      `json:"borderRadius"`
	Shadow       string      `json:"shadow"`
}

// DefaultTheme возвращает тему с дефолтной палитрой и шрифтами.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			Primary:    "#6366f1",
			Secondary:  "#8b5cf6",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Surface:    "#f9fafb",
			Text:       "#1f2937",
			TextLight:  "#6b7280",
			Border:     "#e5e7eb",
		},
		Fonts: ThemeFonts{
			Heading: "Playfair Display",
			Body:    "Inter",
			Accent:  "Dancing Script",
		},
		BorderRadius: "0.75rem",
		Shadow:       "0 4px 6px -1px rgb(0 0 0 / 0.1)",
	}
}

type GlobalSettings struct {
	MaxWidth          string  `json:"maxWidth"`
	FontScale         float64 `json:"fontScale"`
	AnimationsEnabled bool    `json:"animationsEnabled"`
}

func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		MaxWidth:          "800px",
		FontScale:         1,
		AnimationsEnabled: true,
	}
}

// Design — полная визуальная спецификация приглашения или шаблона.
// Хранится как JSON-колонка (serializer:json) внутри Template/Invitation.
type Design struct {
	Blocks         []Block        `json:"blocks"`
	Theme          Theme          `json:"theme"`
	GlobalSettings GlobalSettings `json:"globalSettings"`
}

// NewDesign возвращает пустой дизайн с дефолтной темой и глобальными настройками.
func NewDesign() Design {
	return Design{
		Blocks:         []Block{},
		Theme:          DefaultTheme(),
		GlobalSettings: DefaultGlobalSettings(),
	}
}

// BlocksInRenderOrder возвращает секции в порядке отрисовки: по возрастанию
// Order; при равных Order сохраняется позиция в массиве (stable sort).
// Значения Order не обязаны быть уникальными или непрерывными.
func (d Design) BlocksInRenderOrder() []Block {
	out := make([]Block, len(d.Blocks))
	copy(out, d.Blocks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Validate проверяет дизайн: уникальные id секций, известные типы,
// корректный content для каждого типа.
func (d Design) Validate() error {
	seen := make(map[string]bool, len(d.Blocks))
	for i, b := range d.Blocks {
		if b.ID == "" {
			return fmt.Errorf("block %d: id is required", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("block %d: duplicate id %q", i, b.ID)
		}
		seen[b.ID] = true
		if !ValidBlockType(b.Type) {
			return fmt.Errorf("block %q: unknown type %q", b.ID, b.Type)
		}
		if err := ValidateBlockContent(b.Type, b.Content); err != nil {
			return fmt.Errorf("block %q: %w", b.ID, err)
		}
	}
	return nil
}

// blockContentKeys — обязательные ключи content для типов секций, у которых
// без этих данных секция не имеет смысла. Типы вне карты принимают любой content.
var blockContentKeys = map[BlockType][]string{
	BlockTypeYoutube:   {"videoUrl"},
	BlockTypeFullImage: {"imageUrl"},
	BlockTypePDF:       {"fileUrl"},
	BlockTypeGallery:   {"images"},
	BlockTypeMessage:   {"text"},
}

// ValidateBlockContent проверяет, что content секции содержит обязательные
// для данного типа ключи. Лишние ключи допускаются: фронтовый конструктор
// хранит в content свои презентационные флаги.
func ValidateBlockContent(t BlockType, content datatypes.JSONMap) error {
	required, ok := blockContentKeys[t]
	if !ok {
		return nil
	}
	for _, key := range required {
		if _, present := content[key]; !present {
			return fmt.Errorf("content key %q is required for %q blocks", key, t)
		}
	}
	return nil
}
