package catalogapi

// Wire models for the catalog service. name is the default name; name_en
// carries the localized variant when the storefront locale differs.

type Product struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	Slug   string `json:"slug"`
	SKU    string `json:"sku"`
}

type Brand struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	Slug   string `json:"slug"`
}

type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	Slug   string `json:"slug"`
}
