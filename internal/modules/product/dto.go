package product

// Image bytes arrive base64-encoded in JSON, which is how encoding/json
// treats []byte. ImageExt is optional and defaults to .jpg.

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	ProductCode  string  `json:"product_code"`
	Category     string  `json:"category"`
	Image        []byte  `json:"image"`
	ImageExt     string  `json:"image_ext"`
	Price        float64 `json:"price" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	DiscountRate float64 `json:"discount_rate" binding:"min=0,max=1"`
}

type UpdateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	ProductCode  string  `json:"product_code"`
	Category     string  `json:"category"`
	Image        []byte  `json:"image"`
	ImageExt     string  `json:"image_ext"`
	Price        float64 `json:"price" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	DiscountRate float64 `json:"discount_rate" binding:"min=0,max=1"`
}
