package domain

// Product is the catalog product representation returned by the backend API.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// InStock reports whether the product has stock available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Category is a product category as returned by the backend API.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
