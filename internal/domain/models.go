package domain

type Review struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
	ReviewerName  string  `json:"reviewerName"`
	ReviewerEmail string  `json:"reviewerEmail"`
}

type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	Reviews            []Review `json:"reviews"`
}

// ProductsResponse is one page of the remote catalog.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

const DefaultLimit = 20

type ProductsParams struct {
	Limit  int
	Skip   int
	Select string // comma separated field list
}

// ProductCreationRequest is the body of POST /products/add. Optional fields are
// pointers so that "not entered" stays absent on the wire.
type ProductCreationRequest struct {
	Title              string   `json:"title"`
	Description        *string  `json:"description,omitempty"`
	Price              float64  `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	Brand              Brand    `json:"brand"`
}

// CreatedProduct is the creation request echoed back by the API with its id.
type CreatedProduct struct {
	ID int `json:"id"`
	ProductCreationRequest
}
