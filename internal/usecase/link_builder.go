package usecase

import "strings"

// BuildBuyURL turns a storefront permalink into a purchase URL. Absolute
// permalinks are returned verbatim; relative ones are joined to base with
// exactly one slash. A blank permalink has no URL.
func BuildBuyURL(permalink, base string) *string {
	p := strings.TrimSpace(permalink)
	if p == "" {
		return nil
	}
	if strings.HasPrefix(p, "http") {
		return &p
	}

	base = strings.TrimRight(base, "/")
	if base == "" {
		return &p
	}

	url := base + "/" + strings.TrimLeft(p, "/")
	return &url
}

// LinkBuilder builds buy links for one storefront.
type LinkBuilder struct {
	base        string
	productPath string
}

// NewLinkBuilder creates a builder for the storefront at base. productPath is
// the storefront's product route segment, used only when an item has no
// permalink at all.
func NewLinkBuilder(base, productPath string) LinkBuilder {
	return LinkBuilder{base: base, productPath: productPath}
}

// ForItem prefers the item's permalink and only composes base/productPath/handle
// when there is no permalink.
func (b LinkBuilder) ForItem(permalink, handle string) *string {
	if strings.TrimSpace(permalink) != "" {
		return BuildBuyURL(permalink, b.base)
	}
	return b.fromHandle(handle)
}

func (b LinkBuilder) fromHandle(handle string) *string {
	base := strings.TrimRight(b.base, "/")
	handle = strings.Trim(strings.TrimSpace(handle), "/")
	if base == "" || handle == "" {
		return nil
	}

	url := base + "/"
	if segment := strings.Trim(b.productPath, "/"); segment != "" {
		url += segment + "/"
	}
	url += handle + "/"
	return &url
}
