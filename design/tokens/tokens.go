// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tokens is the registry of style tokens used by every component on the site.

Tokens are grouped first by semantic category (color, spacing, typography, ...)
and second by visual intent (text-primary vs. text-secondary). The typed
variables below are the source of truth; the dotted-path registry in registry.go
is derived from them at package initialization.
*/
package tokens

// Token is one concrete presentation rule, rendered as one or more utility classes.
type Token string

// String returns the class list held by the token.
func (t Token) String() string {
	return string(t)
}

// TextColors are foreground colors.
type TextColors struct {
	Primary   Token
	Secondary Token
	Tertiary  Token
	Muted     Token
	Inverse   Token
	Black     Token
}

// BackgroundColors are surface colors.
type BackgroundColors struct {
	Primary Token
	Brand   Token
	White   Token
	Gray    Token
	Muted   Token
	Dark    Token
}

// InteractiveColors are state-dependent colors for links and controls.
type InteractiveColors struct {
	Default      Token
	Hover        Token
	Active       Token
	Focus        Token
	HoverBrand   Token
	HoverSurface Token
	HoverSubtle  Token
}

// TintColors are the soft project background tints.
type TintColors struct {
	Red     Token
	Gold    Token
	Green   Token
	Bronze  Token
	Neutral Token
}

// BorderColors are outline styles.
type BorderColors struct {
	Default Token
	Brand   Token
}

// ColorTokens groups every color category.
type ColorTokens struct {
	Text        TextColors
	Bg          BackgroundColors
	Interactive InteractiveColors
	Tint        TintColors
	Border      BorderColors
}

// Scale is a small/medium/large step.
type Scale struct {
	Small  Token
	Medium Token
	Large  Token
}

// ResponsiveScale is a step that grows at wider breakpoints.
type ResponsiveScale struct {
	Small  Token
	Medium Token
	Large  Token
}

// MarginBottom holds bottom margins.
type MarginBottom struct {
	Small      Token
	Medium     Token
	Large      Token
	Responsive ResponsiveScale
}

// SectionSpacing holds vertical rhythm for page sections.
type SectionSpacing struct {
	Y      Token
	YSmall Token
	YLarge Token
}

// ControlSpacing holds padding for interactive controls.
type ControlSpacing struct {
	Small  Token
	Medium Token
	Large  Token
}

// Gap holds flex and grid gaps.
type Gap struct {
	Small      Token
	Medium     Token
	Large      Token
	Responsive ResponsiveScale
}

// SpacingTokens groups every spacing category.
type SpacingTokens struct {
	Mb      MarginBottom
	P       Scale
	Section SectionSpacing
	Control ControlSpacing
	Gap     Gap
	Gutter  Token
}

// FontWeights holds font weights.
type FontWeights struct {
	Normal Token
	Medium Token
	Bold   Token
}

// TextAlign holds text alignment.
type TextAlign struct {
	Left   Token
	Center Token
	Right  Token
}

// FontFamilies holds font stacks.
type FontFamilies struct {
	Sans    Token
	Cursive Token
}

// Decoration holds text decoration.
type Decoration struct {
	None      Token
	Underline Token
	OnHover   Token
}

// TypographyTokens groups font sizes and styling.
type TypographyTokens struct {
	Hero         Token
	Display      Token
	SectionTitle Token
	BodyLarge    Token
	Body         Token
	Small        Token
	Large        Token
	ResponsiveLg Token
	Weight       FontWeights
	Align        TextAlign
	Family       FontFamilies
	Decoration   Decoration
}

// TransitionTokens are standard transitions.
type TransitionTokens struct {
	Colors    Token
	All       Token
	Transform Token
	Opacity   Token
	Slow      Token
}

// ShadowTokens are box shadows.
type ShadowTokens struct {
	Sm Token
	Md Token
	Lg Token
	Xl Token
}

// RadiusTokens are corner radii.
type RadiusTokens struct {
	Sm   Token
	Md   Token
	Lg   Token
	Xl   Token
	Full Token
}

// ContainerWidths are maximum content widths.
type ContainerWidths struct {
	Sm Token
	Md Token
	Lg Token
	Xl Token
}

// FlexLayouts are flexbox presets.
type FlexLayouts struct {
	Center       Token
	InlineCenter Token
	Between      Token
	End          Token
	Column       Token
	Row          Token
}

// SquareSizes are fixed width and height pairs.
type SquareSizes struct {
	Sm Token
	Md Token
	Lg Token
}

// LayoutTokens groups container, flex and box utilities.
type LayoutTokens struct {
	Container ContainerWidths
	Center    Token
	Block     Token
	Clip      Token
	Cover     Token
	BareList  Token
	Flex      FlexLayouts
	Square    SquareSizes
}

// FocusTokens are keyboard focus indicators.
type FocusTokens struct {
	Default Token
	Ring    Token
}

// StateTokens are element states that are not tied to a color.
type StateTokens struct {
	Disabled Token
	Loading  Token
	Visible  Token
	Hidden   Token
}

// Color tokens.
var Color = ColorTokens{
	Text: TextColors{
		Primary:   "text-gray-900",
		Secondary: "text-gray-800",
		Tertiary:  "text-gray-600",
		Muted:     "text-gray-500",
		Inverse:   "text-white",
		Black:     "text-black",
	},
	Bg: BackgroundColors{
		Primary: "bg-primary-light",
		Brand:   "bg-primary",
		White:   "bg-white",
		Gray:    "bg-gray-50",
		Muted:   "bg-gray-100",
		Dark:    "bg-gray-900",
	},
	Interactive: InteractiveColors{
		Default:      "text-gray-800",
		Hover:        "hover:text-gray-600",
		Active:       "active:text-gray-900",
		Focus:        "focus-visible:outline-gray-900",
		HoverBrand:   "hover:bg-primary-dark",
		HoverSurface: "hover:bg-gray-50",
		HoverSubtle:  "hover:bg-gray-200/50",
	},
	Tint: TintColors{
		Red:     "bg-bg-tint-red",
		Gold:    "bg-bg-tint-gold",
		Green:   "bg-bg-tint-green",
		Bronze:  "bg-bg-tint-bronze",
		Neutral: "bg-bg-tint-neutral",
	},
	Border: BorderColors{
		Default: "border-2 border-gray-300",
		Brand:   "border-b-2 border-primary",
	},
}

// Spacing tokens.
var Spacing = SpacingTokens{
	Mb: MarginBottom{
		Small:  "mb-4",
		Medium: "mb-6",
		Large:  "mb-8",
		Responsive: ResponsiveScale{
			Small:  "mb-4 md:mb-6",
			Medium: "mb-6 md:mb-8",
			Large:  "mb-8 md:mb-12",
		},
	},
	P: Scale{
		Small:  "p-4",
		Medium: "p-6",
		Large:  "p-8",
	},
	Section: SectionSpacing{
		Y:      "py-section-y",
		YSmall: "py-4",
		YLarge: "py-section-y-lg",
	},
	Control: ControlSpacing{
		Small:  "px-4 py-2",
		Medium: "px-6 py-3",
		Large:  "px-8 py-4",
	},
	Gap: Gap{
		Small:  "gap-4",
		Medium: "gap-6",
		Large:  "gap-8",
		Responsive: ResponsiveScale{
			Small:  "gap-4 sm:gap-6",
			Medium: "gap-6 sm:gap-8",
			Large:  "gap-8 sm:gap-12",
		},
	},
	Gutter: "px-4 sm:px-6 lg:px-8",
}

// Typography tokens.
var Typography = TypographyTokens{
	Hero:         "text-hero",
	Display:      "text-display",
	SectionTitle: "text-section-title",
	BodyLarge:    "text-body-lg",
	Body:         "text-base",
	Small:        "text-sm",
	Large:        "text-lg",
	ResponsiveLg: "md:text-lg",
	Weight: FontWeights{
		Normal: "font-normal",
		Medium: "font-medium",
		Bold:   "font-bold",
	},
	Align: TextAlign{
		Left:   "text-left",
		Center: "text-center",
		Right:  "text-right",
	},
	Family: FontFamilies{
		Sans:    "font-sans",
		Cursive: "font-cursive",
	},
	Decoration: Decoration{
		None:      "no-underline",
		Underline: "underline underline-offset-4",
		OnHover:   "hover:underline",
	},
}

// Transition tokens.
var Transition = TransitionTokens{
	Colors:    "transition-colors duration-200",
	All:       "transition-all duration-200",
	Transform: "transition-transform duration-200",
	Opacity:   "transition-opacity duration-200",
	Slow:      "transition-opacity duration-300",
}

// Shadow tokens.
var Shadow = ShadowTokens{
	Sm: "shadow-sm",
	Md: "shadow-md",
	Lg: "shadow-lg",
	Xl: "shadow-xl",
}

// Radius tokens.
var Radius = RadiusTokens{
	Sm:   "rounded-sm",
	Md:   "rounded-md",
	Lg:   "rounded-lg",
	Xl:   "rounded-xl",
	Full: "rounded-full",
}

// Layout tokens.
var Layout = LayoutTokens{
	Container: ContainerWidths{
		Sm: "max-w-2xl",
		Md: "max-w-4xl",
		Lg: "max-w-6xl",
		Xl: "max-w-7xl",
	},
	Center:   "mx-auto",
	Block:    "block",
	Clip:     "relative overflow-hidden",
	Cover:    "absolute inset-0",
	BareList: "list-none m-0 p-0",
	Flex: FlexLayouts{
		Center:       "flex items-center justify-center",
		InlineCenter: "inline-flex items-center justify-center",
		Between:      "flex items-center justify-between",
		End:          "flex justify-end",
		Column:       "flex flex-col",
		Row:          "flex flex-row",
	},
	Square: SquareSizes{
		Sm: "w-10 h-10",
		Md: "w-12 h-12",
		Lg: "w-14 h-14",
	},
}

// Focus tokens.
var Focus = FocusTokens{
	Default: "focus-visible:outline-2 focus-visible:outline-offset-2 focus-visible:outline-gray-900",
	Ring:    "focus-visible:ring-2 focus-visible:ring-offset-2 focus-visible:ring-gray-900",
}

// State tokens.
var State = StateTokens{
	Disabled: "disabled:opacity-50 disabled:pointer-events-none",
	Loading:  "bg-gray-200 animate-pulse",
	Visible:  "opacity-100",
	Hidden:   "opacity-0",
}
