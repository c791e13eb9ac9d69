// Copyright 2025, the portfolio contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant

import "codeberg.org/portfolio/site/design/tokens"

// Button keys.
type (
	ButtonVariant string
	ButtonSize    string
)

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonText      ButtonVariant = "text"
	ButtonIcon      ButtonVariant = "icon"

	ButtonSM ButtonSize = "sm"
	ButtonMD ButtonSize = "md"
	ButtonLG ButtonSize = "lg"
)

// Button styles buttons and button-like links.
var Button = &Table[ButtonVariant, ButtonSize]{
	Kind: KindButton,
	Base: Bucket{
		tokens.Layout.Flex.InlineCenter,
		tokens.Typography.Weight.Medium,
		tokens.Transition.Colors,
		tokens.Focus.Default,
		tokens.State.Disabled,
	},
	VariantDomain:  []ButtonVariant{ButtonPrimary, ButtonSecondary, ButtonText, ButtonIcon},
	DefaultVariant: ButtonPrimary,
	Variants: map[ButtonVariant]Bucket{
		ButtonPrimary: {
			tokens.Color.Bg.Brand,
			tokens.Color.Text.Inverse,
			tokens.Color.Interactive.HoverBrand,
			tokens.Radius.Lg,
		},
		ButtonSecondary: {
			tokens.Color.Bg.White,
			tokens.Color.Text.Secondary,
			tokens.Color.Border.Default,
			tokens.Color.Interactive.HoverSurface,
			tokens.Radius.Lg,
		},
		ButtonText: {
			tokens.Color.Interactive.Default,
			tokens.Color.Interactive.Hover,
			tokens.Typography.Decoration.None,
		},
		ButtonIcon: {
			tokens.Radius.Full,
			tokens.Color.Interactive.HoverSubtle,
		},
	},
	SizeDomain:  []ButtonSize{ButtonSM, ButtonMD, ButtonLG},
	DefaultSize: ButtonMD,
	Sizes: map[ButtonSize]Bucket{
		ButtonSM: {tokens.Spacing.Control.Small, tokens.Typography.Small},
		ButtonMD: {tokens.Spacing.Control.Medium, tokens.Typography.Body},
		ButtonLG: {tokens.Spacing.Control.Large, tokens.Typography.Large},
	},
	VariantSizes: map[ButtonVariant]map[ButtonSize]Bucket{
		ButtonIcon: {
			ButtonSM: {tokens.Layout.Square.Sm},
			ButtonMD: {tokens.Layout.Square.Md},
			ButtonLG: {tokens.Layout.Square.Lg},
		},
	},
}

// Heading keys. The level picks the h1..h6 tag and carries no tokens of its own.
type (
	HeadingVariant string
	HeadingLevel   string
)

const (
	HeadingDefault HeadingVariant = "default"
	HeadingHero    HeadingVariant = "hero"
	HeadingDisplay HeadingVariant = "display"
	HeadingSection HeadingVariant = "section"

	H1 HeadingLevel = "h1"
	H2 HeadingLevel = "h2"
	H3 HeadingLevel = "h3"
	H4 HeadingLevel = "h4"
	H5 HeadingLevel = "h5"
	H6 HeadingLevel = "h6"
)

// Heading styles h1..h6 elements.
var Heading = &Table[HeadingVariant, HeadingLevel]{
	Kind:           KindHeading,
	VariantDomain:  []HeadingVariant{HeadingDefault, HeadingHero, HeadingDisplay, HeadingSection},
	DefaultVariant: HeadingDefault,
	Variants: map[HeadingVariant]Bucket{
		HeadingDefault: {},
		HeadingHero:    {tokens.Typography.Hero, tokens.Typography.Family.Cursive},
		HeadingDisplay: {tokens.Typography.Display, tokens.Typography.Family.Cursive},
		HeadingSection: {tokens.Typography.SectionTitle, tokens.Typography.Weight.Medium},
	},
	SizeDomain:  []HeadingLevel{H1, H2, H3, H4, H5, H6},
	DefaultSize: H1,
	Sizes: map[HeadingLevel]Bucket{
		H1: {}, H2: {}, H3: {}, H4: {}, H5: {}, H6: {},
	},
}

// Section keys: the variant is the background, the size is the vertical padding.
type (
	SectionBackground string
	SectionPadding    string
)

const (
	SectionWhite   SectionBackground = "white"
	SectionPrimary SectionBackground = "primary"

	PaddingDefault SectionPadding = "default"
	PaddingSmall   SectionPadding = "small"
	PaddingLarge   SectionPadding = "large"
)

// Section styles page sections.
var Section = &Table[SectionBackground, SectionPadding]{
	Kind:           KindSection,
	VariantDomain:  []SectionBackground{SectionWhite, SectionPrimary},
	DefaultVariant: SectionWhite,
	Variants: map[SectionBackground]Bucket{
		SectionWhite:   {tokens.Color.Bg.White},
		SectionPrimary: {tokens.Color.Bg.Primary},
	},
	SizeDomain:  []SectionPadding{PaddingDefault, PaddingSmall, PaddingLarge},
	DefaultSize: PaddingDefault,
	Sizes: map[SectionPadding]Bucket{
		PaddingDefault: {tokens.Spacing.Section.Y},
		PaddingSmall:   {tokens.Spacing.Section.YSmall},
		PaddingLarge:   {tokens.Spacing.Section.YLarge},
	},
}

// Container keys: a single variant, and the size is the maximum width.
type (
	ContainerVariant string
	ContainerWidth   string
)

const (
	ContainerDefault ContainerVariant = "default"

	WidthDefault ContainerWidth = "default"
	WidthSmall   ContainerWidth = "small"
	WidthMedium  ContainerWidth = "medium"
	WidthLarge   ContainerWidth = "large"
)

// Container centers content with a maximum width and responsive gutters.
var Container = &Table[ContainerVariant, ContainerWidth]{
	Kind:           KindContainer,
	Base:           Bucket{tokens.Layout.Center, tokens.Spacing.Gutter},
	VariantDomain:  []ContainerVariant{ContainerDefault},
	DefaultVariant: ContainerDefault,
	Variants: map[ContainerVariant]Bucket{
		ContainerDefault: {},
	},
	SizeDomain:  []ContainerWidth{WidthDefault, WidthSmall, WidthMedium, WidthLarge},
	DefaultSize: WidthDefault,
	Sizes: map[ContainerWidth]Bucket{
		WidthDefault: {tokens.Layout.Container.Xl},
		WidthSmall:   {tokens.Layout.Container.Sm},
		WidthMedium:  {tokens.Layout.Container.Md},
		WidthLarge:   {tokens.Layout.Container.Lg},
	},
}

// Navigation link keys.
type (
	NavLinkVariant string
	NavLinkSize    string
)

const (
	NavLinkDefault NavLinkVariant = "default"
	NavLinkActive  NavLinkVariant = "active"

	NavLinkSM NavLinkSize = "sm"
	NavLinkMD NavLinkSize = "md"
)

// NavLink styles header navigation links.
var NavLink = &Table[NavLinkVariant, NavLinkSize]{
	Kind: KindNavLink,
	Base: Bucket{
		tokens.Color.Interactive.Hover,
		tokens.Transition.Colors,
		tokens.Typography.Weight.Medium,
		tokens.Focus.Default,
	},
	VariantDomain:  []NavLinkVariant{NavLinkDefault, NavLinkActive},
	DefaultVariant: NavLinkDefault,
	Variants: map[NavLinkVariant]Bucket{
		NavLinkDefault: {tokens.Color.Text.Secondary, tokens.Typography.Decoration.None},
		NavLinkActive:  {tokens.Color.Text.Primary, tokens.Typography.Decoration.Underline},
	},
	SizeDomain:  []NavLinkSize{NavLinkSM, NavLinkMD},
	DefaultSize: NavLinkMD,
	Sizes: map[NavLinkSize]Bucket{
		NavLinkSM: {tokens.Typography.Small},
		NavLinkMD: {tokens.Typography.Body, tokens.Typography.ResponsiveLg},
	},
}

// Image keys: the variant is the load state, the size is the frame.
type (
	ImageState string
	ImageFrame string
)

const (
	ImageLoading ImageState = "loading"
	ImageLoaded  ImageState = "loaded"
	ImageError   ImageState = "error"

	FramePlain   ImageFrame = "default"
	FrameRounded ImageFrame = "rounded"
)

// Image styles the wrapper around an img element.
var Image = &Table[ImageState, ImageFrame]{
	Kind:           KindImage,
	Base:           Bucket{tokens.Layout.Clip},
	VariantDomain:  []ImageState{ImageLoading, ImageLoaded, ImageError},
	DefaultVariant: ImageLoading,
	Variants: map[ImageState]Bucket{
		ImageLoading: {tokens.State.Loading},
		ImageLoaded:  {},
		ImageError:   {tokens.Color.Bg.Muted},
	},
	SizeDomain:  []ImageFrame{FramePlain, FrameRounded},
	DefaultSize: FramePlain,
	Sizes: map[ImageFrame]Bucket{
		FramePlain:   {},
		FrameRounded: {tokens.Radius.Lg, tokens.Shadow.Lg},
	},
}
